package discovery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func staticSource(records ...project.Project) Source {
	return SourceFunc(func(context.Context) ([]project.Project, error) {
		return records, nil
	})
}

func TestFeed_NotLoadedUntilRefresh(t *testing.T) {
	calls := 0
	feed := NewFeed(SourceFunc(func(context.Context) ([]project.Project, error) {
		calls++
		return numbered(2), nil
	}))

	snap := feed.Snapshot()
	require.ErrorIs(t, snap.Err, ErrNotLoaded)
	require.Zero(t, calls)

	snap, applied := feed.Refresh(context.Background())
	require.True(t, applied)
	require.NoError(t, snap.Err)
	require.Len(t, snap.Projects, 2)
	require.Equal(t, 1, calls)

	feed.Snapshot()
	require.Equal(t, 1, calls)
}

func TestFeed_FailureReplacesSnapshotWithEmpty(t *testing.T) {
	fail := false
	feed := NewFeed(SourceFunc(func(context.Context) ([]project.Project, error) {
		if fail {
			return nil, errors.New("timeout")
		}
		return numbered(4), nil
	}))

	snap, _ := feed.Refresh(context.Background())
	require.Len(t, snap.Projects, 4)

	fail = true
	snap, applied := feed.Refresh(context.Background())
	require.True(t, applied)
	require.ErrorIs(t, snap.Err, ErrSourceUnavailable)
	require.Empty(t, snap.Projects)

	res := Run(feed.Snapshot(), NewQuery())
	require.True(t, res.SourceUnavailable)
	require.Zero(t, res.Total)
}

func TestFeed_DiscardsSupersededFetch(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var mu sync.Mutex
	call := 0

	feed := NewFeed(SourceFunc(func(context.Context) ([]project.Project, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		if n == 1 {
			close(started)
			<-release
			return []project.Project{rec("stale")}, nil
		}
		return []project.Project{rec("fresh")}, nil
	}))

	type outcome struct {
		snap    Snapshot
		applied bool
	}
	first := make(chan outcome, 1)
	go func() {
		snap, applied := feed.Refresh(context.Background())
		first <- outcome{snap, applied}
	}()

	<-started
	snap, applied := feed.Refresh(context.Background())
	require.True(t, applied)
	require.Equal(t, []string{"fresh"}, ids(snap.Projects))

	close(release)
	out := <-first
	require.False(t, out.applied)
	require.Equal(t, []string{"fresh"}, ids(out.snap.Projects))
	require.Equal(t, []string{"fresh"}, ids(feed.Snapshot().Projects))
}

func TestFeed_DiscardsCancelledFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	feed := NewFeed(SourceFunc(func(context.Context) ([]project.Project, error) {
		cancel()
		return numbered(1), nil
	}))

	snap, applied := feed.Refresh(ctx)
	require.False(t, applied)
	require.ErrorIs(t, snap.Err, ErrNotLoaded)
}

func TestFeed_ClosedFeedIgnoresRefresh(t *testing.T) {
	feed := NewFeed(staticSource(rec("a")))
	_, applied := feed.Refresh(context.Background())
	require.True(t, applied)

	feed.Close()
	snap, applied := feed.Refresh(context.Background())
	require.False(t, applied)
	require.Equal(t, []string{"a"}, ids(snap.Projects))
}

func TestFeed_FetchHook(t *testing.T) {
	var hooked []bool
	feed := NewFeed(staticSource(rec("a")), WithFetchHook(func(_ Snapshot, elapsed time.Duration, applied bool) {
		require.GreaterOrEqual(t, elapsed, time.Duration(0))
		hooked = append(hooked, applied)
	}))

	feed.Refresh(context.Background())
	feed.Refresh(context.Background())
	require.Equal(t, []bool{true, true}, hooked)
}

func TestFeed_RunRefreshesUntilCancelled(t *testing.T) {
	refreshed := make(chan struct{}, 8)
	feed := NewFeed(staticSource(rec("a")), WithFetchHook(func(Snapshot, time.Duration, bool) {
		select {
		case refreshed <- struct{}{}:
		default:
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		feed.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("feed did not refresh")
	}
	cancel()
	<-done

	_, applied := feed.Refresh(context.Background())
	require.False(t, applied)
}
