package store

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/guestlink/newsletter-backend/internal/errs"
	"github.com/guestlink/newsletter-backend/internal/models"
	"github.com/guestlink/newsletter-backend/pkg/logger"
)

const (
	newsletterCollection = "newsletters"
	newsletterDocID      = "current"
)

// documentStore holds the one newsletter document as the sole row of the
// newsletters collection, as {data: <document>, updatedAt}. The document
// JSON shape is preserved verbatim by round-tripping through a native map.
type documentStore struct {
	client *firestore.Client
	doc    *firestore.DocumentRef
}

func NewDocumentStore(client *firestore.Client) *documentStore {
	return &documentStore{
		client: client,
		doc:    client.Collection(newsletterCollection).Doc(newsletterDocID),
	}
}

// Fetch reads the current document row. The payload comes back as a lenient
// patch so the sync engine can merge it field by field; a row that was
// written with missing fields never clobbers what a client already has.
func (s *documentStore) Fetch(ctx context.Context) (models.DocumentPatch, error) {
	snap, err := s.doc.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.DocumentPatch{}, errs.NewNotFoundError("newsletter document not found")
		}
		return models.DocumentPatch{}, errs.NewDatabaseError("read", "failed to fetch newsletter document", err)
	}
	return snapshotToPatch(snap)
}

// Upsert is a create-or-replace write of the full document.
func (s *documentStore) Upsert(ctx context.Context, doc models.NewsletterDocument) error {
	data, err := documentToMap(doc)
	if err != nil {
		return errs.NewDatabaseError("write", "failed to encode newsletter document", err)
	}
	_, err = s.doc.Set(ctx, map[string]any{
		"data":      data,
		"updatedAt": time.Now(),
	})
	if err != nil {
		return errs.NewDatabaseError("write", "failed to upsert newsletter document", err)
	}
	return nil
}

// Watch subscribes to the document row's snapshot stream and hands every
// event to onEvent as a patch. Delivery is at-least-once from the caller's
// point of view; the initial snapshot is replayed on (re)connect. The
// returned func cancels the subscription.
func (s *documentStore) Watch(ctx context.Context, onEvent func(models.DocumentPatch)) func() {
	ctx, cancel := context.WithCancel(ctx)
	log := logger.FromContext(ctx)

	go func() {
		it := s.doc.Snapshots(ctx)
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if err != iterator.Done && status.Code(err) != codes.Canceled {
					log.Error("newsletter snapshot stream ended", "error", err)
				}
				return
			}
			if !snap.Exists() {
				continue
			}
			patch, err := snapshotToPatch(snap)
			if err != nil {
				log.Warn("ignoring malformed newsletter snapshot", "error", err)
				continue
			}
			onEvent(patch)
		}
	}()

	return cancel
}

func snapshotToPatch(snap *firestore.DocumentSnapshot) (models.DocumentPatch, error) {
	var row struct {
		Data map[string]any `firestore:"data"`
	}
	if err := snap.DataTo(&row); err != nil {
		return models.DocumentPatch{}, errs.NewDatabaseError("read", "failed to parse newsletter row", err)
	}
	raw, err := json.Marshal(row.Data)
	if err != nil {
		return models.DocumentPatch{}, errs.NewDatabaseError("read", "failed to re-encode newsletter row", err)
	}
	patch, err := models.ParsePatch(raw)
	if err != nil {
		return models.DocumentPatch{}, errs.NewDatabaseError("read", "newsletter row is not a document", err)
	}
	return patch, nil
}

func documentToMap(doc models.NewsletterDocument) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
