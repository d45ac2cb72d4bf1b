// Package sync reconciles the local cache, the remote document store, and the
// live change feed into one authoritative in-memory newsletter document.
package sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guestlink/newsletter-backend/internal/errs"
	"github.com/guestlink/newsletter-backend/internal/models"
	"github.com/guestlink/newsletter-backend/pkg/logger"
)

// RemoteStore is the hosted single-row document store.
type RemoteStore interface {
	Fetch(ctx context.Context) (models.DocumentPatch, error)
	Upsert(ctx context.Context, doc models.NewsletterDocument) error
	Watch(ctx context.Context, onEvent func(models.DocumentPatch)) func()
}

// CacheStore is the on-device mirror read eagerly at startup.
type CacheStore interface {
	Save(ctx context.Context, doc models.NewsletterDocument) error
	Load(ctx context.Context) (models.NewsletterDocument, bool)
}

const (
	defaultBackoffBase = 500 * time.Millisecond
	defaultMaxAttempts = 5

	// minSyncDuration keeps the syncing indicator visible long enough to be
	// perceptible even when the remote write returns immediately.
	minSyncDuration = 750 * time.Millisecond
)

// Engine owns the single authoritative copy of the document. Readers get
// copies via Current/Subscribe; writers go through Commit. Remote
// unavailability never blocks either path — it only degrades freshness.
type Engine struct {
	remote RemoteStore
	cache  CacheStore

	mu      sync.RWMutex
	current models.NewsletterDocument
	subs    map[int]func(models.NewsletterDocument)
	nextSub int
	syncing int

	backoffBase time.Duration
	maxAttempts int
	minSync     time.Duration
	sleep       func(time.Duration)

	unwatch func()
}

// NewEngine seeds synchronously from the cache (or the built-in default) so
// callers can render immediately, without waiting on the network.
func NewEngine(ctx context.Context, remote RemoteStore, cache CacheStore) *Engine {
	e := &Engine{
		remote:      remote,
		cache:       cache,
		subs:        make(map[int]func(models.NewsletterDocument)),
		backoffBase: defaultBackoffBase,
		maxAttempts: defaultMaxAttempts,
		minSync:     minSyncDuration,
		sleep:       time.Sleep,
	}
	if doc, ok := cache.Load(ctx); ok {
		e.current = models.Repair(doc)
	} else {
		e.current = models.DefaultDocument()
	}
	return e
}

// Start launches the initial remote fetch (with retries) and the change-feed
// subscription. Stop cancels the subscription; in-flight fetches complete and
// are discarded harmlessly.
func (e *Engine) Start(ctx context.Context) {
	go e.initialFetch(ctx)
	e.unwatch = e.remote.Watch(ctx, func(p models.DocumentPatch) {
		e.apply(ctx, p)
	})
}

func (e *Engine) Stop() {
	if e.unwatch != nil {
		e.unwatch()
	}
}

// Current returns a deep copy of the authoritative document.
func (e *Engine) Current() models.NewsletterDocument {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current.Clone()
}

// Syncing reports whether a commit's remote write is (still) being surfaced.
func (e *Engine) Syncing() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.syncing > 0
}

// Subscribe registers a listener for every new document state. The returned
// func unsubscribes; a departing consumer must call it so a no-longer-
// displayed view stops receiving updates.
func (e *Engine) Subscribe(fn func(models.NewsletterDocument)) func() {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

// Commit applies doc locally first — in-memory state and cache are updated
// unconditionally so the editor's own next read is consistent — then upserts
// to the remote store. A remote failure is returned to the caller for retry;
// local state is never rolled back.
func (e *Engine) Commit(ctx context.Context, doc models.NewsletterDocument) error {
	log := logger.FromContext(ctx)
	doc = models.Repair(doc.Clone())

	e.mu.Lock()
	e.current = doc
	e.syncing++
	e.mu.Unlock()

	if err := e.cache.Save(ctx, doc); err != nil {
		log.Warn("failed to mirror committed document to cache", "error", err)
	}
	e.notify(doc)

	started := time.Now()
	err := e.remote.Upsert(ctx, doc)
	e.settleSyncing(time.Since(started))

	if err != nil {
		log.Error("remote publish failed, local state kept", "error", err)
		return errs.NewExternalServiceError("documentstore", "failed to publish newsletter", true, err)
	}
	log.Info("newsletter published")
	return nil
}

// settleSyncing clears the syncing indicator, but never before minSync has
// elapsed since the write began.
func (e *Engine) settleSyncing(elapsed time.Duration) {
	clear := func() {
		e.mu.Lock()
		e.syncing--
		e.mu.Unlock()
	}
	if remaining := e.minSync - elapsed; remaining > 0 {
		time.AfterFunc(remaining, clear)
		return
	}
	clear()
}

// initialFetch pulls the remote document with bounded exponential backoff.
// Exhausting the attempts is a degraded-freshness condition, not an error:
// the engine keeps serving the seed document.
func (e *Engine) initialFetch(ctx context.Context) {
	log := logger.FromContext(ctx)
	delay := e.backoffBase

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		patch, err := e.remote.Fetch(ctx)
		if err == nil {
			if !patch.Valid() {
				log.Warn("remote payload has no sections sequence, merging partially")
			}
			e.apply(ctx, patch)
			return
		}

		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			// Empty remote store: nothing to merge, first commit creates it.
			log.Info("no remote newsletter document yet")
			return
		}
		if ctx.Err() != nil {
			return
		}

		log.Warn("remote fetch failed", "attempt", attempt, "error", err)
		if attempt < e.maxAttempts {
			e.sleep(delay)
			delay *= 2
		}
	}
	log.Warn("giving up on remote fetch, serving local document")
}

// apply merges a fetched or pushed payload over the current document,
// field-wholesale, and mirrors the result to the cache. Absent or malformed
// fields keep their previous values, which makes re-deliveries idempotent
// and protects the sections sequence from corrupt payloads.
func (e *Engine) apply(ctx context.Context, p models.DocumentPatch) {
	e.mu.Lock()
	merged := models.Repair(models.Merge(e.current, p))
	e.current = merged
	e.mu.Unlock()

	if err := e.cache.Save(ctx, merged); err != nil {
		logger.FromContext(ctx).Warn("failed to mirror remote update to cache", "error", err)
	}
	e.notify(merged)
}

func (e *Engine) notify(doc models.NewsletterDocument) {
	e.mu.RLock()
	fns := make([]func(models.NewsletterDocument), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.RUnlock()

	for _, fn := range fns {
		fn(doc.Clone())
	}
}
