package handlers

import (
	"log/slog"

	"github.com/guestlink/newsletter-backend/internal/response"
	"github.com/guestlink/newsletter-backend/internal/ws"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	AuthSvc         AuthService
	NewsletterSvc   NewsletterService
	WidgetSvc       WidgetService
	EditorSvc       EditorService
	Hub             *ws.Hub
}
