package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guestlink/newsletter-backend/internal/errs"
	"github.com/guestlink/newsletter-backend/internal/models"
	"github.com/guestlink/newsletter-backend/pkg/logger"
)

// editorEngine is the sync engine surface the editor needs.
type editorEngine interface {
	Current() models.NewsletterDocument
	Commit(ctx context.Context, doc models.NewsletterDocument) error
}

// editorService holds one draft per admin edit session. Edits mutate only the
// draft; nothing reaches the authoritative document until Save commits the
// whole draft through the engine.
type editorService struct {
	engine editorEngine

	mu     sync.Mutex
	drafts map[string]*models.NewsletterDocument

	now func() time.Time
}

func NewEditorService(engine editorEngine) *editorService {
	return &editorService{
		engine: engine,
		drafts: make(map[string]*models.NewsletterDocument),
		now:    time.Now,
	}
}

// OpenDraft copies the committed document into a new draft.
func (s *editorService) OpenDraft(ctx context.Context) (string, models.NewsletterDocument) {
	doc := s.engine.Current()
	id := uuid.New().String()

	s.mu.Lock()
	s.drafts[id] = &doc
	s.mu.Unlock()

	logger.FromContext(ctx).Info("draft opened", "draft_id", id)
	return id, doc.Clone()
}

func (s *editorService) Draft(draftID string) (models.NewsletterDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[draftID]
	if !ok {
		return models.NewsletterDocument{}, errs.NewNotFoundError("draft not found")
	}
	return d.Clone(), nil
}

func (s *editorService) Discard(draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[draftID]; !ok {
		return errs.NewNotFoundError("draft not found")
	}
	delete(s.drafts, draftID)
	return nil
}

// Save commits the whole draft. The draft is kept either way so a failed
// remote write can be retried without redoing the edits.
func (s *editorService) Save(ctx context.Context, draftID string) (models.NewsletterDocument, error) {
	s.mu.Lock()
	d, ok := s.drafts[draftID]
	if !ok {
		s.mu.Unlock()
		return models.NewsletterDocument{}, errs.NewNotFoundError("draft not found")
	}
	doc := d.Clone()
	s.mu.Unlock()

	if err := s.engine.Commit(ctx, doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// withDraft runs fn against the live draft under the lock.
func (s *editorService) withDraft(draftID string, fn func(d *models.NewsletterDocument) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[draftID]
	if !ok {
		return errs.NewNotFoundError("draft not found")
	}
	return fn(d)
}

// UpdateSectionContent replaces one section's content wholesale. The payload
// must decode for the section's declared type; a legacy entertainmentKit
// shape is normalized by the decode/encode round trip. An unknown section id
// is a silent no-op.
func (s *editorService) UpdateSectionContent(draftID, sectionID string, raw json.RawMessage) error {
	return s.withDraft(draftID, func(d *models.NewsletterDocument) error {
		for i := range d.Sections {
			if d.Sections[i].ID != sectionID {
				continue
			}
			c, err := models.DecodeSectionContent(d.Sections[i].Type, raw)
			if err != nil {
				return err
			}
			enc, err := models.EncodeSectionContent(c)
			if err != nil {
				return err
			}
			d.Sections[i].Content = enc
			return nil
		}
		return nil
	})
}

// MoveSection swaps the section at index with its neighbor. Out-of-range
// targets (first section up, last section down) are no-ops.
func (s *editorService) MoveSection(draftID string, index int, direction string) error {
	if direction != "up" && direction != "down" {
		return errs.NewValidationError(`direction must be "up" or "down"`)
	}
	return s.withDraft(draftID, func(d *models.NewsletterDocument) error {
		if index < 0 || index >= len(d.Sections) {
			return nil
		}
		target := index + 1
		if direction == "up" {
			target = index - 1
		}
		if target < 0 || target >= len(d.Sections) {
			return nil
		}
		d.Sections[index], d.Sections[target] = d.Sections[target], d.Sections[index]
		return nil
	})
}

// RemoveSection filters out the section by id; absent id is a no-op.
func (s *editorService) RemoveSection(draftID, sectionID string) error {
	return s.withDraft(draftID, func(d *models.NewsletterDocument) error {
		kept := d.Sections[:0]
		for _, sec := range d.Sections {
			if sec.ID != sectionID {
				kept = append(kept, sec)
			}
		}
		d.Sections = kept
		return nil
	})
}

// AddSection appends a new section with the type's template content.
func (s *editorService) AddSection(draftID string, t models.SectionType) (models.SectionInstance, error) {
	if !t.Valid() {
		return models.SectionInstance{}, errs.NewValidationError("unknown section type: " + string(t))
	}
	var added models.SectionInstance
	err := s.withDraft(draftID, func(d *models.NewsletterDocument) error {
		content, err := models.TemplateContent(t)
		if err != nil {
			return err
		}
		enc, err := models.EncodeSectionContent(content)
		if err != nil {
			return err
		}
		added = models.SectionInstance{ID: uuid.New().String(), Type: t, Content: enc}
		d.Sections = append(d.Sections, added)
		return nil
	})
	return added, err
}

// AddItem appends a fresh template item to a list-valued section.
func (s *editorService) AddItem(draftID, sectionID string) error {
	return s.mutateItems(draftID, sectionID, func(t models.SectionType, c models.SectionContent) (models.SectionContent, error) {
		switch v := c.(type) {
		case models.QuickLinksContent:
			return append(v, models.TemplateQuickLink()), nil
		case models.FeatureCardsContent:
			return append(v, models.TemplateFeatureCard()), nil
		case models.SportsScheduleContent:
			return append(v, models.TemplateSportMatch()), nil
		case models.EntertainmentKitContent:
			v.Items = append(v.Items, models.TemplateEntertainmentKitItem())
			return v, nil
		}
		return nil, errs.NewValidationError("section type has no items: " + string(t))
	})
}

// RemoveItem filters the item by id from a list-valued section.
func (s *editorService) RemoveItem(draftID, sectionID, itemID string) error {
	return s.mutateItems(draftID, sectionID, func(t models.SectionType, c models.SectionContent) (models.SectionContent, error) {
		switch v := c.(type) {
		case models.QuickLinksContent:
			out := v[:0]
			for _, it := range v {
				if it.ID != itemID {
					out = append(out, it)
				}
			}
			return out, nil
		case models.FeatureCardsContent:
			out := v[:0]
			for _, it := range v {
				if it.ID != itemID {
					out = append(out, it)
				}
			}
			return out, nil
		case models.SportsScheduleContent:
			out := v[:0]
			for _, it := range v {
				if it.ID != itemID {
					out = append(out, it)
				}
			}
			return out, nil
		case models.EntertainmentKitContent:
			out := v.Items[:0]
			for _, it := range v.Items {
				if it.ID != itemID {
					out = append(out, it)
				}
			}
			v.Items = out
			return v, nil
		}
		return nil, errs.NewValidationError("section type has no items: " + string(t))
	})
}

// UpdateItem replaces the item at the given position. Items are addressed by
// their current index, not re-resolved by id; callers supply the index as of
// the edit.
func (s *editorService) UpdateItem(draftID, sectionID string, index int, raw json.RawMessage) error {
	return s.mutateItems(draftID, sectionID, func(t models.SectionType, c models.SectionContent) (models.SectionContent, error) {
		switch v := c.(type) {
		case models.QuickLinksContent:
			if index < 0 || index >= len(v) {
				return nil, errs.NewValidationError("item index out of range")
			}
			var it models.QuickLink
			if err := json.Unmarshal(raw, &it); err != nil {
				return nil, errs.NewValidationError("malformed quick link")
			}
			v[index] = it
			return v, nil
		case models.FeatureCardsContent:
			if index < 0 || index >= len(v) {
				return nil, errs.NewValidationError("item index out of range")
			}
			var it models.FeatureCard
			if err := json.Unmarshal(raw, &it); err != nil {
				return nil, errs.NewValidationError("malformed feature card")
			}
			v[index] = it
			return v, nil
		case models.SportsScheduleContent:
			if index < 0 || index >= len(v) {
				return nil, errs.NewValidationError("item index out of range")
			}
			var it models.SportMatch
			if err := json.Unmarshal(raw, &it); err != nil {
				return nil, errs.NewValidationError("malformed sport match")
			}
			v[index] = it
			return v, nil
		case models.EntertainmentKitContent:
			if index < 0 || index >= len(v.Items) {
				return nil, errs.NewValidationError("item index out of range")
			}
			var it models.EntertainmentKitItem
			if err := json.Unmarshal(raw, &it); err != nil {
				return nil, errs.NewValidationError("malformed entertainment kit item")
			}
			v.Items[index] = it
			return v, nil
		}
		return nil, errs.NewValidationError("section type has no items: " + string(t))
	})
}

// mutateItems decodes a section's content, applies fn, and re-encodes. Going
// through decode/encode means any legacy-shaped entertainmentKit content
// leaves in the normalized object shape after the first mutation.
func (s *editorService) mutateItems(draftID, sectionID string, fn func(models.SectionType, models.SectionContent) (models.SectionContent, error)) error {
	return s.withDraft(draftID, func(d *models.NewsletterDocument) error {
		for i := range d.Sections {
			if d.Sections[i].ID != sectionID {
				continue
			}
			c, err := models.DecodeSectionContent(d.Sections[i].Type, d.Sections[i].Content)
			if err != nil {
				return err
			}
			mutated, err := fn(d.Sections[i].Type, c)
			if err != nil {
				return err
			}
			enc, err := models.EncodeSectionContent(mutated)
			if err != nil {
				return err
			}
			d.Sections[i].Content = enc
			return nil
		}
		return errs.NewNotFoundError("section not found")
	})
}

// UpdateWidget sets the widget toggle and optional config on the draft.
func (s *editorService) UpdateWidget(draftID string, enabled bool, config *models.WidgetConfig) error {
	return s.withDraft(draftID, func(d *models.NewsletterDocument) error {
		d.WidgetEnabled = enabled
		if config != nil {
			d.WidgetConfig = config
		}
		return nil
	})
}

// AddWidgetCard appends a card with the default 30-day active window.
func (s *editorService) AddWidgetCard(draftID string) (models.WidgetCard, error) {
	var card models.WidgetCard
	err := s.withDraft(draftID, func(d *models.NewsletterDocument) error {
		card = models.NewWidgetCard(s.now())
		d.WidgetCards = append(d.WidgetCards, card)
		return nil
	})
	return card, err
}

// UpdateWidgetCard replaces the card at the given position, keeping its id.
func (s *editorService) UpdateWidgetCard(draftID string, index int, card models.WidgetCard) error {
	return s.withDraft(draftID, func(d *models.NewsletterDocument) error {
		if index < 0 || index >= len(d.WidgetCards) {
			return errs.NewValidationError("card index out of range")
		}
		card.ID = d.WidgetCards[index].ID
		d.WidgetCards[index] = card
		return nil
	})
}

// RemoveWidgetCard filters the card by id; absent id is a no-op.
func (s *editorService) RemoveWidgetCard(draftID, cardID string) error {
	return s.withDraft(draftID, func(d *models.NewsletterDocument) error {
		kept := d.WidgetCards[:0]
		for _, c := range d.WidgetCards {
			if c.ID != cardID {
				kept = append(kept, c)
			}
		}
		d.WidgetCards = kept
		return nil
	})
}
