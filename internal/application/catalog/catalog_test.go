package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"porvenir-web/internal/domain"
	"porvenir-web/internal/infrastructure/contentapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	calls    int
	listings []domain.Listing
	err      error
	// block, when set, makes the next call wait for ctx cancellation.
	block chan struct{}
	// entered is closed by the first call; release, when set, holds calls until closed.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeSource) Listings(ctx context.Context, q *contentapi.Query) (contentapi.ListingPage, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.block = nil
	entered := f.entered
	f.entered = nil
	release := f.release
	listings, err := f.listings, f.err
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return contentapi.ListingPage{}, ctx.Err()
		}
	}
	if block != nil {
		close(block)
		<-ctx.Done()
		return contentapi.ListingPage{}, ctx.Err()
	}
	if err != nil {
		return contentapi.ListingPage{}, err
	}
	return contentapi.ListingPage{Listings: listings, Total: len(listings)}, nil
}

type fakeMirror struct {
	mu       sync.Mutex
	saved    []domain.Listing
	syncedAt time.Time
	err      error
}

func (m *fakeMirror) Replace(_ context.Context, listings []domain.Listing, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append([]domain.Listing(nil), listings...)
	m.syncedAt = at
	return nil
}

func (m *fakeMirror) Active(context.Context) ([]domain.Listing, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, time.Time{}, m.err
	}
	if len(m.saved) == 0 {
		return nil, time.Time{}, errors.New("empty")
	}
	return m.saved, m.syncedAt, nil
}

func active(ids ...int) []domain.Listing {
	out := make([]domain.Listing, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Listing{ID: id, Active: true})
	}
	return out
}

func TestRefresh_CommitsAndMirrors(t *testing.T) {
	src := &fakeSource{listings: active(1, 2, 3)}
	mirror := &fakeMirror{}
	c := New(src, mirror, time.Minute)

	v, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, v.Listings, 3)
	assert.False(t, v.Stale)
	assert.False(t, v.Failed)
	assert.Equal(t, uint64(1), v.Generation)
	assert.Len(t, mirror.saved, 3)
	assert.Equal(t, v, c.Current())
}

func TestListings_UsesFreshViewWithinTTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{listings: active(1)}
	c := New(src, nil, time.Minute)
	c.Now = func() time.Time { return now }

	_, err := c.Listings(context.Background())
	require.NoError(t, err)
	_, err = c.Listings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	now = now.Add(2 * time.Minute)
	_, err = c.Listings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestRefresh_FallsBackToMirrorAsStale(t *testing.T) {
	mirror := &fakeMirror{saved: active(7, 8), syncedAt: time.Unix(100, 0)}
	src := &fakeSource{err: errors.New("boom")}
	c := New(src, mirror, time.Minute)

	v, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, v.Stale)
	assert.False(t, v.Failed)
	assert.Len(t, v.Listings, 2)
	assert.True(t, v.SyncedAt.Equal(time.Unix(100, 0)))
}

func TestRefresh_KeepsPreviousViewWhenNoMirror(t *testing.T) {
	src := &fakeSource{listings: active(1, 2)}
	c := New(src, nil, time.Minute)
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	src.err = errors.New("boom")
	v, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, v.Stale)
	assert.Len(t, v.Listings, 2)
}

func TestRefresh_FailedWhenNothingToServe(t *testing.T) {
	c := New(&fakeSource{err: errors.New("boom")}, &fakeMirror{err: errors.New("db down")}, time.Minute)
	v, err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, v.Failed)
	assert.NotNil(t, v.Listings)
	assert.Empty(t, v.Listings)
}

func TestRefresh_OverlappingCallersShareOneFetch(t *testing.T) {
	entered, release := make(chan struct{}), make(chan struct{})
	src := &fakeSource{listings: active(1, 2), entered: entered, release: release}
	c := New(src, nil, time.Minute)

	results := make(chan View, 2)
	go func() {
		v, err := c.Listings(context.Background())
		assert.NoError(t, err)
		results <- v
	}()
	<-entered
	go func() {
		v, err := c.Listings(context.Background())
		assert.NoError(t, err)
		results <- v
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)

	for i := 0; i < 2; i++ {
		v := <-results
		assert.Len(t, v.Listings, 2)
		assert.False(t, v.Failed)
		assert.Equal(t, uint64(1), v.Generation)
	}
	assert.Equal(t, 1, src.calls)
}

func TestRefresh_CallerLeavingDoesNotCancelSharedFetch(t *testing.T) {
	entered, release := make(chan struct{}), make(chan struct{})
	src := &fakeSource{listings: active(3), entered: entered, release: release}
	c := New(src, nil, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	gone := make(chan View, 1)
	go func() {
		v, err := c.Refresh(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		gone <- v
	}()
	<-entered
	cancel()

	v := <-gone
	assert.True(t, v.Failed, "an unloaded catalog must not read as empty")

	close(release)
	require.Eventually(t, func() bool {
		return len(c.Current().Listings) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestStop_DiscardsInFlightRefresh(t *testing.T) {
	started := make(chan struct{})
	src := &fakeSource{listings: active(5), block: started}
	c := New(src, nil, time.Minute)

	done := make(chan error, 1)
	var v View
	go func() {
		var err error
		v, err = c.Refresh(context.Background())
		done <- err
	}()
	<-started
	c.Stop()

	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.True(t, v.Failed)
	assert.Empty(t, v.Listings)

	got, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Listings, 1)
}

func TestNewWarmer_ValidatesSchedule(t *testing.T) {
	c := New(&fakeSource{}, nil, time.Minute)
	_, err := NewWarmer(c, "not a schedule")
	assert.Error(t, err)

	w, err := NewWarmer(c, "")
	require.NoError(t, err)
	w.run()
	assert.Equal(t, uint64(1), c.Current().Generation)
	w.Stop()
}
