package dto

import "github.com/guestlink/newsletter-backend/internal/models"

// WidgetView is the guest-facing state of the floating widget.
type WidgetView struct {
	Enabled bool                `json:"enabled"`
	Config  models.WidgetConfig `json:"config"`
	Cards   []models.WidgetCard `json:"cards"`
}

// WidgetSessionView is one step of a widget browsing session. Card is nil on
// the synthetic "all caught up" position (Index == Total).
type WidgetSessionView struct {
	SessionID string             `json:"sessionId"`
	Index     int                `json:"index"`
	Flipped   bool               `json:"flipped"`
	Total     int                `json:"total"`
	CaughtUp  bool               `json:"caughtUp"`
	Card      *models.WidgetCard `json:"card,omitempty"`
}
