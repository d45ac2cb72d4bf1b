package dto

import (
	"encoding/json"

	"github.com/guestlink/newsletter-backend/internal/models"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// DraftView pairs a draft id with its current document state.
type DraftView struct {
	DraftID  string                    `json:"draftId"`
	Document models.NewsletterDocument `json:"document"`
}

type AddSectionRequest struct {
	Type models.SectionType `json:"type"`
}

type UpdateSectionContentRequest struct {
	Content json.RawMessage `json:"content"`
}

type MoveSectionRequest struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"` // "up" | "down"
}

type UpdateItemRequest struct {
	Item json.RawMessage `json:"item"`
}

type UpdateWidgetRequest struct {
	Enabled bool                 `json:"enabled"`
	Config  *models.WidgetConfig `json:"config,omitempty"`
}

type SaveResponse struct {
	Document models.NewsletterDocument `json:"document"`
}

type SyncStatus struct {
	Syncing bool `json:"syncing"`
}
