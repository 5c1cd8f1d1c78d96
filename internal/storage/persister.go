package storage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"groupscope/internal/groups"
)

// Persister writes the index to storage at most once per rolling window,
// so rapid successive small updates (keystroke-driven rescans) do not
// amplify into a write per mutation. Flush bypasses the throttle for
// shutdown-time persistence.
type Persister struct {
	index     *groups.Index
	snapshots SnapshotStore
	favorites FavoriteStore
	window    time.Duration
	logger    *slog.Logger

	mu        sync.Mutex
	lastSaved uint64
}

// NewPersister creates a persister for the given index and stores.
func NewPersister(index *groups.Index, snapshots SnapshotStore, favorites FavoriteStore, window time.Duration) *Persister {
	if window <= 0 {
		window = 30 * time.Second
	}
	return &Persister{
		index:     index,
		snapshots: snapshots,
		favorites: favorites,
		window:    window,
		logger:    slog.Default(),
	}
}

// Run persists the index whenever its version changed since the last write,
// checking once per window, until the context is cancelled. A final flush
// is the caller's responsibility (see Flush).
func (p *Persister) Run(ctx context.Context) {
	ticker := time.NewTicker(p.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.saveIfChanged(ctx)
		}
	}
}

// Flush writes the current index state immediately, bypassing the throttle.
// Used for shutdown-time persistence.
func (p *Persister) Flush(ctx context.Context) error {
	return p.save(ctx, p.index.Version())
}

func (p *Persister) saveIfChanged(ctx context.Context) {
	version := p.index.Version()
	p.mu.Lock()
	changed := version != p.lastSaved
	p.mu.Unlock()
	if !changed {
		return
	}
	// Write failure is soft: the version stays unsaved, so the next window
	// retries.
	if err := p.save(ctx, version); err != nil {
		p.logger.Warn("save skipped, will retry on next window", "error", err)
	}
}

func (p *Persister) save(ctx context.Context, version uint64) error {
	if err := p.snapshots.Save(ctx, p.index.Snapshot()); err != nil {
		return err
	}
	if err := p.favorites.Save(ctx, p.index.FavoriteKeys()); err != nil {
		return err
	}
	p.mu.Lock()
	p.lastSaved = version
	p.mu.Unlock()
	p.logger.Debug("index persisted", "version", version)
	return nil
}
