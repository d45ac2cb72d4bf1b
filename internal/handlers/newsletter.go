package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guestlink/newsletter-backend/internal/dto"
	"github.com/guestlink/newsletter-backend/internal/models"
	"github.com/guestlink/newsletter-backend/internal/response"
)

// NewsletterService serves the authoritative document for guest views.
type NewsletterService interface {
	Current() models.NewsletterDocument
	Syncing() bool
}

// WidgetService serves the floating widget view and its browsing sessions.
type WidgetService interface {
	View(ctx context.Context) dto.WidgetView
	OpenSession(ctx context.Context) dto.WidgetSessionView
	Session(sessionID string) (dto.WidgetSessionView, error)
	Next(sessionID string) (dto.WidgetSessionView, error)
	Prev(sessionID string) (dto.WidgetSessionView, error)
	Flip(sessionID string) (dto.WidgetSessionView, error)
	CloseSession(sessionID string) error
}

type newsletterHandlers struct {
	ResponseHandler response.ResponseHandler
	NewsletterSvc   NewsletterService
	WidgetSvc       WidgetService
}

func NewNewsletterHandlers(deps *Deps) *newsletterHandlers {
	return &newsletterHandlers{
		ResponseHandler: deps.ResponseHandler,
		NewsletterSvc:   deps.NewsletterSvc,
		WidgetSvc:       deps.WidgetSvc,
	}
}

func (h *newsletterHandlers) NewsletterRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetNewsletter)
	r.Get("/widget", h.GetWidget)
	r.Post("/widget/sessions", h.OpenWidgetSession)
	r.Get("/widget/sessions/{sessionId}", h.GetWidgetSession)
	r.Post("/widget/sessions/{sessionId}/next", h.NextCard)
	r.Post("/widget/sessions/{sessionId}/prev", h.PrevCard)
	r.Post("/widget/sessions/{sessionId}/flip", h.FlipCard)
	r.Delete("/widget/sessions/{sessionId}", h.CloseWidgetSession)
	return r
}

// GetNewsletter returns the full rendered document state.
func (h *newsletterHandlers) GetNewsletter(w http.ResponseWriter, r *http.Request) {
	doc := h.NewsletterSvc.Current()
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, doc)
}

func (h *newsletterHandlers) GetWidget(w http.ResponseWriter, r *http.Request) {
	view := h.WidgetSvc.View(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *newsletterHandlers) OpenWidgetSession(w http.ResponseWriter, r *http.Request) {
	view := h.WidgetSvc.OpenSession(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, view)
}

func (h *newsletterHandlers) GetWidgetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.WidgetSvc.Session(chi.URLParam(r, "sessionId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *newsletterHandlers) NextCard(w http.ResponseWriter, r *http.Request) {
	view, err := h.WidgetSvc.Next(chi.URLParam(r, "sessionId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *newsletterHandlers) PrevCard(w http.ResponseWriter, r *http.Request) {
	view, err := h.WidgetSvc.Prev(chi.URLParam(r, "sessionId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *newsletterHandlers) FlipCard(w http.ResponseWriter, r *http.Request) {
	view, err := h.WidgetSvc.Flip(chi.URLParam(r, "sessionId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *newsletterHandlers) CloseWidgetSession(w http.ResponseWriter, r *http.Request) {
	if err := h.WidgetSvc.CloseSession(chi.URLParam(r, "sessionId")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
