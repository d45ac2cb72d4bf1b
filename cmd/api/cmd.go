package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/guestlink/newsletter-backend/internal/bootstrap"
	"github.com/guestlink/newsletter-backend/internal/config"
	"github.com/guestlink/newsletter-backend/internal/handlers"
	"github.com/guestlink/newsletter-backend/internal/response"
	"github.com/guestlink/newsletter-backend/internal/router"
	"github.com/guestlink/newsletter-backend/internal/services"
	"github.com/guestlink/newsletter-backend/internal/store"
	"github.com/guestlink/newsletter-backend/internal/sync"
	"github.com/guestlink/newsletter-backend/internal/ws"
	"github.com/guestlink/newsletter-backend/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	ctx := logger.ToContext(context.Background(), bs.Log)

	// admin credentials: env first, secret manager otherwise
	passwordHash := cfg.AdminPasswordHash
	jwtSecret := cfg.JWTSecret
	if passwordHash == "" || jwtSecret == "" {
		sstore := store.NewAdminSecretsStore(bs.Secrets, cfg.ProjectID)
		if passwordHash == "" {
			passwordHash, err = sstore.AdminPasswordHash(ctx)
			exitOnError("failed to load admin password hash", err, bs.Log)
		}
		if jwtSecret == "" {
			jwtSecret, err = sstore.JWTSigningSecret(ctx)
			exitOnError("failed to load jwt signing secret", err, bs.Log)
		}
	}
	if passwordHash == "" || jwtSecret == "" {
		exitOnError("admin credentials missing", errors.New("empty password hash or jwt secret"), bs.Log)
	}

	// stores
	dstore := store.NewDocumentStore(bs.Firestore)
	cstore := store.NewCacheStore(bs.Badger)

	// sync engine
	engine := sync.NewEngine(ctx, dstore, cstore)
	engine.Start(ctx)
	defer engine.Stop()

	// websocket hub
	hub := ws.NewHub()
	go hub.Run(ctx)
	unsubscribeHub := engine.Subscribe(hub.BroadcastDocument)
	defer unsubscribeHub()

	// services
	aserv := services.NewAuthService(passwordHash, jwtSecret)
	eserv := services.NewEditorService(engine)
	wserv := services.NewWidgetService(engine)
	stopWidget := wserv.Start(ctx)
	defer stopWidget()

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.AuthSvc = aserv
	deps.NewsletterSvc = engine
	deps.WidgetSvc = wserv
	deps.EditorSvc = eserv
	deps.Hub = hub

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("server listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
