package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/guestlink/newsletter-backend/internal/dto"
	"github.com/guestlink/newsletter-backend/internal/errs"
	"github.com/guestlink/newsletter-backend/internal/models"
)

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"success":true}`))
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, _, _ string) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

type stubAuthService struct {
	token    string
	loginErr error
	password string

	verifyErr error
	verified  string
}

func (s *stubAuthService) Login(_ context.Context, password string) (string, error) {
	s.password = password
	return s.token, s.loginErr
}

func (s *stubAuthService) VerifyToken(tokenStr string) error {
	s.verified = tokenStr
	return s.verifyErr
}

type stubNewsletterService struct {
	doc     models.NewsletterDocument
	syncing bool
}

func (s *stubNewsletterService) Current() models.NewsletterDocument { return s.doc }
func (s *stubNewsletterService) Syncing() bool                      { return s.syncing }

type stubWidgetService struct {
	view    dto.WidgetView
	session dto.WidgetSessionView
	err     error

	lastOp string
	lastID string
}

func (s *stubWidgetService) View(_ context.Context) dto.WidgetView { return s.view }

func (s *stubWidgetService) OpenSession(_ context.Context) dto.WidgetSessionView {
	s.lastOp = "open"
	return s.session
}

func (s *stubWidgetService) Session(id string) (dto.WidgetSessionView, error) {
	s.lastOp, s.lastID = "get", id
	return s.session, s.err
}

func (s *stubWidgetService) Next(id string) (dto.WidgetSessionView, error) {
	s.lastOp, s.lastID = "next", id
	return s.session, s.err
}

func (s *stubWidgetService) Prev(id string) (dto.WidgetSessionView, error) {
	s.lastOp, s.lastID = "prev", id
	return s.session, s.err
}

func (s *stubWidgetService) Flip(id string) (dto.WidgetSessionView, error) {
	s.lastOp, s.lastID = "flip", id
	return s.session, s.err
}

func (s *stubWidgetService) CloseSession(id string) error {
	s.lastOp, s.lastID = "close", id
	return s.err
}

type stubEditorService struct {
	draftID string
	doc     models.NewsletterDocument
	err     error

	lastOp        string
	lastDraftID   string
	lastSectionID string
	lastItemID    string
	lastIndex     int
	lastDirection string
	lastRaw       json.RawMessage
	lastType      models.SectionType
	lastEnabled   bool
}

func (s *stubEditorService) OpenDraft(_ context.Context) (string, models.NewsletterDocument) {
	s.lastOp = "open"
	return s.draftID, s.doc
}

func (s *stubEditorService) Draft(draftID string) (models.NewsletterDocument, error) {
	s.lastOp, s.lastDraftID = "get", draftID
	if s.err != nil {
		return models.NewsletterDocument{}, s.err
	}
	return s.doc, nil
}

func (s *stubEditorService) Discard(draftID string) error {
	s.lastOp, s.lastDraftID = "discard", draftID
	return s.err
}

func (s *stubEditorService) Save(_ context.Context, draftID string) (models.NewsletterDocument, error) {
	s.lastOp, s.lastDraftID = "save", draftID
	return s.doc, s.err
}

func (s *stubEditorService) AddSection(draftID string, t models.SectionType) (models.SectionInstance, error) {
	s.lastOp, s.lastDraftID, s.lastType = "addSection", draftID, t
	if !t.Valid() {
		return models.SectionInstance{}, errs.NewValidationError("unknown section type")
	}
	return models.SectionInstance{ID: "new-section", Type: t}, s.err
}

func (s *stubEditorService) UpdateSectionContent(draftID, sectionID string, raw json.RawMessage) error {
	s.lastOp, s.lastDraftID, s.lastSectionID, s.lastRaw = "updateSection", draftID, sectionID, raw
	return s.err
}

func (s *stubEditorService) MoveSection(draftID string, index int, direction string) error {
	s.lastOp, s.lastDraftID, s.lastIndex, s.lastDirection = "moveSection", draftID, index, direction
	return s.err
}

func (s *stubEditorService) RemoveSection(draftID, sectionID string) error {
	s.lastOp, s.lastDraftID, s.lastSectionID = "removeSection", draftID, sectionID
	return s.err
}

func (s *stubEditorService) AddItem(draftID, sectionID string) error {
	s.lastOp, s.lastDraftID, s.lastSectionID = "addItem", draftID, sectionID
	return s.err
}

func (s *stubEditorService) UpdateItem(draftID, sectionID string, index int, raw json.RawMessage) error {
	s.lastOp, s.lastDraftID, s.lastSectionID, s.lastIndex, s.lastRaw = "updateItem", draftID, sectionID, index, raw
	return s.err
}

func (s *stubEditorService) RemoveItem(draftID, sectionID, itemID string) error {
	s.lastOp, s.lastDraftID, s.lastSectionID, s.lastItemID = "removeItem", draftID, sectionID, itemID
	return s.err
}

func (s *stubEditorService) UpdateWidget(draftID string, enabled bool, _ *models.WidgetConfig) error {
	s.lastOp, s.lastDraftID, s.lastEnabled = "updateWidget", draftID, enabled
	return s.err
}

func (s *stubEditorService) AddWidgetCard(draftID string) (models.WidgetCard, error) {
	s.lastOp, s.lastDraftID = "addCard", draftID
	return models.WidgetCard{ID: "new-card"}, s.err
}

func (s *stubEditorService) UpdateWidgetCard(draftID string, index int, _ models.WidgetCard) error {
	s.lastOp, s.lastDraftID, s.lastIndex = "updateCard", draftID, index
	return s.err
}

func (s *stubEditorService) RemoveWidgetCard(draftID, cardID string) error {
	s.lastOp, s.lastDraftID, s.lastItemID = "removeCard", draftID, cardID
	return s.err
}
