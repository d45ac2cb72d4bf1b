package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/guestlink/newsletter-backend/internal/dto"
	"github.com/guestlink/newsletter-backend/internal/errs"
	"github.com/guestlink/newsletter-backend/internal/models"
	"github.com/guestlink/newsletter-backend/internal/response"
)

// EditorService is the draft-based admin editing surface.
type EditorService interface {
	OpenDraft(ctx context.Context) (string, models.NewsletterDocument)
	Draft(draftID string) (models.NewsletterDocument, error)
	Discard(draftID string) error
	Save(ctx context.Context, draftID string) (models.NewsletterDocument, error)

	AddSection(draftID string, t models.SectionType) (models.SectionInstance, error)
	UpdateSectionContent(draftID, sectionID string, raw json.RawMessage) error
	MoveSection(draftID string, index int, direction string) error
	RemoveSection(draftID, sectionID string) error

	AddItem(draftID, sectionID string) error
	UpdateItem(draftID, sectionID string, index int, raw json.RawMessage) error
	RemoveItem(draftID, sectionID, itemID string) error

	UpdateWidget(draftID string, enabled bool, config *models.WidgetConfig) error
	AddWidgetCard(draftID string) (models.WidgetCard, error)
	UpdateWidgetCard(draftID string, index int, card models.WidgetCard) error
	RemoveWidgetCard(draftID, cardID string) error
}

type editorHandlers struct {
	ResponseHandler response.ResponseHandler
	EditorSvc       EditorService
	NewsletterSvc   NewsletterService
}

func NewEditorHandlers(deps *Deps) *editorHandlers {
	return &editorHandlers{
		ResponseHandler: deps.ResponseHandler,
		EditorSvc:       deps.EditorSvc,
		NewsletterSvc:   deps.NewsletterSvc,
	}
}

func (h *editorHandlers) EditorRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/drafts", h.OpenDraft)
	r.Get("/drafts/{draftId}", h.GetDraft)
	r.Delete("/drafts/{draftId}", h.DiscardDraft)
	r.Post("/drafts/{draftId}/save", h.SaveDraft)

	r.Post("/drafts/{draftId}/sections", h.AddSection)
	r.Post("/drafts/{draftId}/sections/move", h.MoveSection) // must be before /{sectionId}
	r.Put("/drafts/{draftId}/sections/{sectionId}", h.UpdateSectionContent)
	r.Delete("/drafts/{draftId}/sections/{sectionId}", h.RemoveSection)

	r.Post("/drafts/{draftId}/sections/{sectionId}/items", h.AddItem)
	r.Put("/drafts/{draftId}/sections/{sectionId}/items/{index}", h.UpdateItem)
	r.Delete("/drafts/{draftId}/sections/{sectionId}/items/{itemId}", h.RemoveItem)

	r.Put("/drafts/{draftId}/widget", h.UpdateWidget)
	r.Post("/drafts/{draftId}/widget/cards", h.AddWidgetCard)
	r.Put("/drafts/{draftId}/widget/cards/{index}", h.UpdateWidgetCard)
	r.Delete("/drafts/{draftId}/widget/cards/{cardId}", h.RemoveWidgetCard)

	r.Get("/sync", h.GetSyncStatus)
	return r
}

func (h *editorHandlers) OpenDraft(w http.ResponseWriter, r *http.Request) {
	id, doc := h.EditorSvc.OpenDraft(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, dto.DraftView{DraftID: id, Document: doc})
}

func (h *editorHandlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftId")
	doc, err := h.EditorSvc.Draft(draftID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.DraftView{DraftID: draftID, Document: doc})
}

func (h *editorHandlers) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.EditorSvc.Discard(chi.URLParam(r, "draftId")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *editorHandlers) SaveDraft(w http.ResponseWriter, r *http.Request) {
	doc, err := h.EditorSvc.Save(r.Context(), chi.URLParam(r, "draftId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.SaveResponse{Document: doc})
}

func (h *editorHandlers) AddSection(w http.ResponseWriter, r *http.Request) {
	var req dto.AddSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("malformed request body"))
		return
	}
	section, err := h.EditorSvc.AddSection(chi.URLParam(r, "draftId"), req.Type)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, section)
}

func (h *editorHandlers) UpdateSectionContent(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSectionContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("malformed request body"))
		return
	}
	err := h.EditorSvc.UpdateSectionContent(chi.URLParam(r, "draftId"), chi.URLParam(r, "sectionId"), req.Content)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *editorHandlers) MoveSection(w http.ResponseWriter, r *http.Request) {
	var req dto.MoveSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("malformed request body"))
		return
	}
	if err := h.EditorSvc.MoveSection(chi.URLParam(r, "draftId"), req.Index, req.Direction); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *editorHandlers) RemoveSection(w http.ResponseWriter, r *http.Request) {
	err := h.EditorSvc.RemoveSection(chi.URLParam(r, "draftId"), chi.URLParam(r, "sectionId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *editorHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	err := h.EditorSvc.AddItem(chi.URLParam(r, "draftId"), chi.URLParam(r, "sectionId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *editorHandlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("item index must be an integer"))
		return
	}
	var req dto.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("malformed request body"))
		return
	}
	err = h.EditorSvc.UpdateItem(chi.URLParam(r, "draftId"), chi.URLParam(r, "sectionId"), index, req.Item)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *editorHandlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	err := h.EditorSvc.RemoveItem(chi.URLParam(r, "draftId"), chi.URLParam(r, "sectionId"), chi.URLParam(r, "itemId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *editorHandlers) UpdateWidget(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("malformed request body"))
		return
	}
	if err := h.EditorSvc.UpdateWidget(chi.URLParam(r, "draftId"), req.Enabled, req.Config); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *editorHandlers) AddWidgetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.EditorSvc.AddWidgetCard(chi.URLParam(r, "draftId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, card)
}

func (h *editorHandlers) UpdateWidgetCard(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("card index must be an integer"))
		return
	}
	var card models.WidgetCard
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("malformed request body"))
		return
	}
	if err := h.EditorSvc.UpdateWidgetCard(chi.URLParam(r, "draftId"), index, card); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *editorHandlers) RemoveWidgetCard(w http.ResponseWriter, r *http.Request) {
	err := h.EditorSvc.RemoveWidgetCard(chi.URLParam(r, "draftId"), chi.URLParam(r, "cardId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

// GetSyncStatus reports whether a publish is still settling against the
// remote store.
func (h *editorHandlers) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.SyncStatus{Syncing: h.NewsletterSvc.Syncing()})
}
