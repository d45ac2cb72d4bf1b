package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/guestlink/newsletter-backend/internal/errs"
	"github.com/guestlink/newsletter-backend/internal/models"
	"github.com/guestlink/newsletter-backend/pkg/logger"
)

const cacheKey = "newsletter:current"

// cacheStore mirrors the last seen document into an embedded Badger DB so a
// restart renders instantly and keeps working with the remote store down.
type cacheStore struct {
	db *badger.DB
}

func NewCacheStore(db *badger.DB) *cacheStore {
	return &cacheStore{db: db}
}

// Save overwrites the cached document under the fixed key.
func (s *cacheStore) Save(ctx context.Context, doc models.NewsletterDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errs.NewDatabaseError("write", "failed to encode cached document", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(cacheKey), data)
	})
	if err != nil {
		return errs.NewDatabaseError("write", "failed to save cached document", err)
	}
	return nil
}

// Load returns the last saved document, or ok=false when nothing usable is
// cached. A corrupt stored value is logged and treated exactly like a miss.
func (s *cacheStore) Load(ctx context.Context) (models.NewsletterDocument, bool) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cacheKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logger.FromContext(ctx).Warn("failed to read cached document", "error", err)
		}
		return models.NewsletterDocument{}, false
	}

	var doc models.NewsletterDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.FromContext(ctx).Warn("discarding corrupt cached document", "error", err)
		return models.NewsletterDocument{}, false
	}
	return doc, true
}
