package discovery

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithLogger sets the feed logger.
func WithLogger(logger *slog.Logger) FeedOption {
	return func(f *Feed) { f.logger = logger }
}

// WithFetchHook registers a callback invoked after every completed fetch,
// whether or not its snapshot was applied.
func WithFetchHook(hook func(snap Snapshot, elapsed time.Duration, applied bool)) FeedOption {
	return func(f *Feed) { f.onFetch = hook }
}

// Feed holds the current snapshot of a record source. Fetches happen only on
// Refresh; reads never touch the source. A fetch that is superseded by a
// newer Refresh, whose context is cancelled, or that completes after Close
// is discarded.
type Feed struct {
	src     Source
	logger  *slog.Logger
	onFetch func(Snapshot, time.Duration, bool)

	mu     sync.RWMutex
	snap   Snapshot
	gen    uint64
	closed bool
}

// NewFeed creates a feed over src. No fetch is made until Refresh.
func NewFeed(src Source, opts ...FeedOption) *Feed {
	f := &Feed{
		src:  src,
		snap: Snapshot{Err: ErrNotLoaded},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Snapshot returns the current snapshot.
func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snap
}

// Refresh fetches the source once and installs the result unless it was
// superseded. It returns the snapshot that is current afterwards and whether
// this call's fetch was applied.
func (f *Feed) Refresh(ctx context.Context) (Snapshot, bool) {
	f.mu.Lock()
	if f.closed {
		snap := f.snap
		f.mu.Unlock()
		return snap, false
	}
	f.gen++
	gen := f.gen
	f.mu.Unlock()

	start := time.Now()
	snap := Load(ctx, f.src)
	elapsed := time.Since(start)

	f.mu.Lock()
	applied := !f.closed && gen == f.gen && ctx.Err() == nil
	if applied {
		f.snap = snap
	}
	current := f.snap
	f.mu.Unlock()

	if f.onFetch != nil {
		f.onFetch(snap, elapsed, applied)
	}
	if f.logger != nil {
		switch {
		case !applied:
			f.logger.Debug("discarded superseded fetch", "generation", gen)
		case snap.Err != nil:
			f.logger.Warn("record source fetch failed", "error", snap.Err, "duration", elapsed)
		default:
			f.logger.Info("record source refreshed", "projects", len(snap.Projects), "duration", elapsed)
		}
	}

	return current, applied
}

// Run refreshes on every tick of interval until ctx is done, then closes the
// feed. A non-positive interval only waits for ctx.
func (f *Feed) Run(ctx context.Context, interval time.Duration) {
	defer f.Close()
	if interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.Refresh(ctx)
		}
	}
}

// Close stops the feed from accepting further snapshots.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
