package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/guestlink/newsletter-backend/internal/handlers"
	"github.com/guestlink/newsletter-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)

	ah := handlers.NewAuthHandlers(deps)
	nh := handlers.NewNewsletterHandlers(deps)
	eh := handlers.NewEditorHandlers(deps)
	wh := handlers.NewWSHandlers(deps)

	r.Mount("/auth", ah.AuthRoutes())
	r.Mount("/newsletter", nh.NewsletterRoutes())
	r.Get("/newsletter/ws", wh.Serve)

	adminAuth := middleware.NewMiddleware(deps.AuthSvc)
	r.Route("/admin", func(r chi.Router) {
		r.Use(adminAuth.AdminAuth)
		r.Mount("/", eh.EditorRoutes())
	})

	return r
}
