// Package syncengine keeps exactly one authoritative profile across three
// representations: the in-memory store, the local cache entry and the
// remote profile service.
package syncengine

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/matchbook-app/matchbook-client/internal/cache"
	"github.com/matchbook-app/matchbook-client/internal/domain"
	"github.com/matchbook-app/matchbook-client/internal/gateway"
	"github.com/matchbook-app/matchbook-client/internal/store"
)

const defaultUpdateTimeout = 10 * time.Second

// Engine mediates optimistic local edits against the remote service.
//
// Mutating operations are serialized: a second update issued while the
// first is in flight waits until the first's reconciliation or rollback has
// completed. Background hydration results are applied through a revision
// check so a fetch that raced with a local edit is discarded.
type Engine struct {
	store         *store.Store
	cache         cache.Store
	gateway       gateway.ProfileGateway
	logger        *zap.Logger
	updateTimeout time.Duration

	// mu serializes every writer of the store and the cache entry.
	mu sync.Mutex

	errMu       sync.RWMutex
	lastSyncErr error
}

// New creates an engine. updateTimeout bounds the remote round-trip of a
// mutating operation; zero selects the default.
func New(st *store.Store, ca cache.Store, gw gateway.ProfileGateway, logger *zap.Logger, updateTimeout time.Duration) *Engine {
	if updateTimeout <= 0 {
		updateTimeout = defaultUpdateTimeout
	}
	return &Engine{
		store:         st,
		cache:         ca,
		gateway:       gw,
		logger:        logger,
		updateTimeout: updateTimeout,
	}
}

// Hydrate loads the cached profile into memory immediately, then refreshes
// from the remote service in the background so the UI never waits on the
// network. The returned channel reports the background refresh outcome;
// callers may ignore it.
//
// A refresh result older than a local edit applied in the meantime is
// discarded. Refresh failure keeps the locally hydrated profile.
func (e *Engine) Hydrate(ctx context.Context) <-chan error {
	e.mu.Lock()
	cached, err := e.cache.Load(ctx)
	if err != nil {
		e.logger.Warn("failed to load cached profile", zap.Error(err))
	}
	if cached != nil {
		e.store.Replace(cached)
		e.logger.Info("hydrated profile from local cache", zap.String("email", cached.Email))
	}
	rev := e.store.Revision()
	e.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- e.refresh(ctx, rev)
	}()
	return done
}

// Refresh synchronously replaces the local profile with the remote one.
// The presentation layer calls it for an explicit re-sync; the stale-result
// guard still applies, so a local edit racing the fetch wins.
func (e *Engine) Refresh(ctx context.Context) error {
	return e.refresh(ctx, e.store.Revision())
}

func (e *Engine) refresh(ctx context.Context, sinceRev uint64) error {
	remote, err := e.gateway.FetchCurrent(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			// Not a failure: the account has no profile yet.
			remote = e.emptyProfile()
		} else {
			e.setSyncError(err)
			e.logger.Warn("profile refresh failed, keeping local copy", zap.Error(err))
			return err
		}
	}
	if remote.Status == "" {
		remote.Status = domain.StatusIncomplete
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.store.ReplaceIf(sinceRev, remote) {
		e.logger.Debug("discarding stale hydration result",
			zap.Uint64("fetched_at_revision", sinceRev),
			zap.Uint64("current_revision", e.store.Revision()))
		return nil
	}
	if err := e.cache.Save(ctx, remote); err != nil {
		e.logger.Warn("failed to mirror refreshed profile", zap.Error(err))
	}
	e.setSyncError(nil)
	return nil
}

// Update applies the patch optimistically to memory and cache, then issues
// the remote write. On success the server's representation replaces the
// optimistic one (the server is authoritative on every field it returns).
// On failure the pre-update snapshot is restored everywhere and the typed
// error is returned; retrying is the caller's decision.
func (e *Engine) Update(ctx context.Context, patch *domain.ProfilePatch) (*domain.Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot, _ := e.store.Get()
	if snapshot == nil {
		return nil, domain.ErrNoProfile
	}
	if patch.IsEmpty() {
		return snapshot, nil
	}

	working := snapshot.Clone()
	working.ApplyPatch(patch)

	e.store.Replace(working)
	if err := e.cache.Save(ctx, working); err != nil {
		e.logger.Warn("failed to mirror optimistic update", zap.Error(err))
	}

	rctx, cancel := context.WithTimeout(ctx, e.updateTimeout)
	defer cancel()

	var stored *domain.Profile
	var err error
	if working.ID == "" {
		stored, err = e.gateway.CreateProfile(rctx, working)
	} else {
		stored, err = e.gateway.UpdateProfile(rctx, working)
	}
	if err != nil {
		e.rollback(ctx, snapshot)
		if errors.Is(err, domain.ErrConflict) {
			// Local copy is stale. Pull the server's version before the
			// user edits again.
			if rerr := e.refreshLocked(ctx); rerr != nil {
				e.logger.Warn("re-hydration after conflict failed", zap.Error(rerr))
			}
		}
		return nil, err
	}

	reconciled := e.reconcile(working, stored)
	e.store.Replace(reconciled)
	if err := e.cache.Save(ctx, reconciled); err != nil {
		e.logger.Warn("failed to mirror reconciled profile", zap.Error(err))
	}
	return reconciled.Clone(), nil
}

// Adopt installs a server-provided snapshot (e.g. the one returned by
// sign-in) as the current profile and mirrors it to the cache.
func (e *Engine) Adopt(ctx context.Context, profile *domain.Profile) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if profile.Status == "" {
		profile.Status = domain.StatusIncomplete
	}
	e.store.Replace(profile)
	if err := e.cache.Save(ctx, profile); err != nil {
		e.logger.Warn("failed to mirror adopted profile", zap.Error(err))
		return err
	}
	return nil
}

// Logout clears all three representations. The store revision advances, so
// an in-flight hydration from before the logout cannot resurrect the
// profile.
func (e *Engine) Logout(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.Clear()
	e.setSyncError(nil)
	if err := e.cache.Delete(ctx); err != nil {
		return err
	}
	return nil
}

// LastSyncError returns the most recent background refresh failure, if any.
// It is cleared by the next successful refresh.
func (e *Engine) LastSyncError() error {
	e.errMu.RLock()
	defer e.errMu.RUnlock()
	return e.lastSyncErr
}

// refreshLocked is refresh for callers already holding e.mu.
func (e *Engine) refreshLocked(ctx context.Context) error {
	remote, err := e.gateway.FetchCurrent(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			remote = e.emptyProfile()
		} else {
			e.setSyncError(err)
			return err
		}
	}
	if remote.Status == "" {
		remote.Status = domain.StatusIncomplete
	}
	e.store.Replace(remote)
	if err := e.cache.Save(ctx, remote); err != nil {
		e.logger.Warn("failed to mirror refreshed profile", zap.Error(err))
	}
	e.setSyncError(nil)
	return nil
}

func (e *Engine) rollback(ctx context.Context, snapshot *domain.Profile) {
	e.store.Replace(snapshot)
	if err := e.cache.Save(ctx, snapshot); err != nil {
		e.logger.Warn("failed to restore cache entry after rollback", zap.Error(err))
	}
}

// reconcile merges the server's echoed representation over the optimistic
// one. The canonical contract returns the full profile, so the server copy
// wins outright; identity fields the server left blank are kept from the
// optimistic copy.
func (e *Engine) reconcile(working, stored *domain.Profile) *domain.Profile {
	merged := stored.Clone()
	if merged.ID == "" {
		merged.ID = working.ID
	}
	if merged.Email == "" {
		merged.Email = working.Email
	}
	if merged.Status == "" {
		merged.Status = working.Status
	}
	return merged
}

// emptyProfile builds the "no profile yet" value keyed by whatever email the
// store currently knows about.
func (e *Engine) emptyProfile() *domain.Profile {
	current, _ := e.store.Get()
	email := ""
	if current != nil {
		email = current.Email
	}
	return domain.NewProfile(email)
}

func (e *Engine) setSyncError(err error) {
	e.errMu.Lock()
	e.lastSyncErr = err
	e.errMu.Unlock()
}
