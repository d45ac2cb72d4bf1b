package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guestlink/newsletter-backend/internal/dto"
	"github.com/guestlink/newsletter-backend/internal/errs"
	"github.com/guestlink/newsletter-backend/internal/models"
	"github.com/guestlink/newsletter-backend/pkg/logger"
)

// widgetEngine is the sync engine surface the widget scheduler needs.
type widgetEngine interface {
	Current() models.NewsletterDocument
	Subscribe(fn func(models.NewsletterDocument)) func()
}

const (
	// widgetTickInterval rolls cards in and out of their time windows without
	// requiring a document change.
	widgetTickInterval = time.Minute

	// sessionTTL bounds abandoned widget sessions.
	sessionTTL = 30 * time.Minute
)

// ActiveCards returns the cards currently eligible for display: manually
// enabled and inside their [startTime, endTime] window. Pure function of its
// inputs.
func ActiveCards(cards []models.WidgetCard, now time.Time) []models.WidgetCard {
	active := make([]models.WidgetCard, 0, len(cards))
	for _, c := range cards {
		if !c.IsActive {
			continue
		}
		if now.Before(c.StartTime) || now.After(c.EndTime) {
			continue
		}
		active = append(active, c)
	}
	return active
}

// session is the per-opening presentation state: an index walking the active
// cards plus one synthetic "all caught up" position after the last card, and
// a flip flag valid only on a real card. Nothing survives a close.
type session struct {
	index     int
	flipped   bool
	lastTouch time.Time
}

// widgetService recomputes the active card set on document changes and on a
// coarse periodic tick, and owns the open widget sessions.
type widgetService struct {
	engine widgetEngine

	mu       sync.Mutex
	active   []models.WidgetCard
	sessions map[string]*session

	now func() time.Time
}

func NewWidgetService(engine widgetEngine) *widgetService {
	s := &widgetService{
		engine:   engine,
		sessions: make(map[string]*session),
		now:      time.Now,
	}
	s.recompute(engine.Current())
	return s
}

// Start subscribes to document changes and launches the periodic tick. The
// returned func stops both.
func (s *widgetService) Start(ctx context.Context) func() {
	unsubscribe := s.engine.Subscribe(func(doc models.NewsletterDocument) {
		s.recompute(doc)
	})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(widgetTickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.recompute(s.engine.Current())
				s.pruneSessions()
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	logger.FromContext(ctx).Info("widget scheduler started", "tick", widgetTickInterval.String())
	return func() {
		unsubscribe()
		close(done)
	}
}

func (s *widgetService) recompute(doc models.NewsletterDocument) {
	active := ActiveCards(doc.WidgetCards, s.now())
	s.mu.Lock()
	s.active = active
	// Clamp open sessions so an index never points past the synthetic card
	// after the active set shrinks. A session that lands on the synthetic
	// position must also land face-up; that card has no back.
	for _, sess := range s.sessions {
		if sess.index > len(active) {
			sess.index = len(active)
		}
		if sess.index >= len(active) {
			sess.flipped = false
		}
	}
	s.mu.Unlock()
}

func (s *widgetService) pruneSessions() {
	cutoff := s.now().Add(-sessionTTL)
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.lastTouch.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()
}

// View returns the guest-facing widget state: the toggle, the button config
// (built-in default when the document has none), and the active cards.
func (s *widgetService) View(ctx context.Context) dto.WidgetView {
	doc := s.engine.Current()
	cfg := models.DefaultWidgetConfig()
	if doc.WidgetConfig != nil {
		cfg = *doc.WidgetConfig
	}

	s.mu.Lock()
	active := make([]models.WidgetCard, len(s.active))
	copy(active, s.active)
	s.mu.Unlock()

	return dto.WidgetView{
		Enabled: doc.WidgetEnabled,
		Config:  cfg,
		Cards:   active,
	}
}

// OpenSession starts a fresh browsing session at the first active card.
func (s *widgetService) OpenSession(ctx context.Context) dto.WidgetSessionView {
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = &session{lastTouch: s.now()}
	view := s.sessionViewLocked(id)
	s.mu.Unlock()

	return view
}

func (s *widgetService) Session(sessionID string) (dto.WidgetSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return dto.WidgetSessionView{}, errs.NewNotFoundError("widget session not found")
	}
	return s.sessionViewLocked(sessionID), nil
}

// Next advances toward the synthetic "all caught up" card and clamps there;
// there is no wraparound. Moving always lands face-up.
func (s *widgetService) Next(sessionID string) (dto.WidgetSessionView, error) {
	return s.transition(sessionID, func(sess *session, total int) {
		if sess.index < total {
			sess.index++
			sess.flipped = false
		}
	})
}

// Prev steps back toward the first card and clamps at zero.
func (s *widgetService) Prev(sessionID string) (dto.WidgetSessionView, error) {
	return s.transition(sessionID, func(sess *session, total int) {
		if sess.index > 0 {
			sess.index--
			sess.flipped = false
		}
	})
}

// Flip toggles the card face. The synthetic card has no back, so flipping
// there is a no-op.
func (s *widgetService) Flip(sessionID string) (dto.WidgetSessionView, error) {
	return s.transition(sessionID, func(sess *session, total int) {
		if sess.index < total {
			sess.flipped = !sess.flipped
		}
	})
}

// CloseSession discards all session state; reopening starts over.
func (s *widgetService) CloseSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return errs.NewNotFoundError("widget session not found")
	}
	delete(s.sessions, sessionID)
	return nil
}

func (s *widgetService) transition(sessionID string, fn func(sess *session, total int)) (dto.WidgetSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return dto.WidgetSessionView{}, errs.NewNotFoundError("widget session not found")
	}
	fn(sess, len(s.active))
	sess.lastTouch = s.now()
	return s.sessionViewLocked(sessionID), nil
}

func (s *widgetService) sessionViewLocked(sessionID string) dto.WidgetSessionView {
	sess := s.sessions[sessionID]
	view := dto.WidgetSessionView{
		SessionID: sessionID,
		Index:     sess.index,
		Flipped:   sess.flipped,
		Total:     len(s.active),
		CaughtUp:  sess.index == len(s.active),
	}
	if !view.CaughtUp {
		card := s.active[sess.index]
		view.Card = &card
	}
	return view
}
