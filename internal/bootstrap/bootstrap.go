package bootstrap

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	badger "github.com/dgraph-io/badger/v4"

	"github.com/guestlink/newsletter-backend/internal/config"
	"github.com/guestlink/newsletter-backend/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Badger    *badger.DB
	Secrets   *secretmanager.Client
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.Badger, err = InitBadger(cfg.CacheDir)
	if err != nil {
		return bs, err
	}
	bs.Secrets, err = InitSecretManager(applicationCtx)
	if err != nil {
		return bs, err
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Secrets != nil {
		_ = bs.Secrets.Close()
	}
	if bs.Badger != nil {
		_ = bs.Badger.Close()
	}
	if bs.Firestore != nil {
		_ = bs.Firestore.Close()
	}
}
