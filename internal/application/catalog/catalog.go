// Package catalog keeps the active listing collection in memory for the
// search page and its map. Concurrent refreshes share one fetch, so every
// waiting caller gets the same committed view. Refreshes are still
// generation-stamped: Stop cancels the one in flight and late results are dropped.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"porvenir-web/internal/domain"
	"porvenir-web/internal/infrastructure/contentapi"
	"porvenir-web/internal/pkg/fetchgen"
)

const (
	fetchPageSize  = 100
	maxFetchPages  = 20
	refreshTimeout = 30 * time.Second
	flightKey      = "refresh"
)

// ErrSuperseded is returned by a refresh that lost to a newer one.
var ErrSuperseded = errors.New("catalog: refresh superseded")

// Source is the content API as seen by the catalog.
type Source interface {
	Listings(ctx context.Context, q *contentapi.Query) (contentapi.ListingPage, error)
}

// Mirror persists the last good collection.
type Mirror interface {
	Replace(ctx context.Context, listings []domain.Listing, syncedAt time.Time) error
	Active(ctx context.Context) ([]domain.Listing, time.Time, error)
}

// View is one immutable state of the catalog.
type View struct {
	Listings   []domain.Listing
	SyncedAt   time.Time
	Generation uint64
	// Stale is set when the listings come from the mirror or an older refresh
	// because the API could not be reached.
	Stale bool
	// Failed is set when no listings could be produced at all.
	Failed bool
}

type Catalog struct {
	Source Source
	Mirror Mirror
	TTL    time.Duration
	Now    func() time.Time

	tracker fetchgen.Tracker
	flight  singleflight.Group
	mu      sync.RWMutex
	view    View
	loaded  bool
}

func New(src Source, mirror Mirror, ttl time.Duration) *Catalog {
	return &Catalog{Source: src, Mirror: mirror, TTL: ttl, Now: time.Now}
}

// ActiveQuery selects active listings with everything the search page and map need.
func ActiveQuery() *contentapi.Query {
	return contentapi.NewQuery().
		Eq("active", "true").
		Populate("imagenes", "categoria", "ubicacion").
		Sort("createdAt:desc")
}

// Current returns the last committed view without fetching.
func (c *Catalog) Current() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

// Listings returns the current view, refreshing it first when it is older than TTL.
func (c *Catalog) Listings(ctx context.Context) (View, error) {
	c.mu.RLock()
	v, loaded := c.view, c.loaded
	c.mu.RUnlock()
	if loaded && !v.Failed && !v.Stale && c.now().Sub(v.SyncedAt) < c.TTL {
		return v, nil
	}
	return c.Refresh(ctx)
}

// Refresh fetches the whole active collection. When the API fails it falls
// back to the mirror, then to the previous view, each marked stale.
// Callers arriving while a refresh is running wait for it and share its
// result; one caller giving up does not cancel the fetch for the others.
func (c *Catalog) Refresh(ctx context.Context) (View, error) {
	ch := c.flight.DoChan(flightKey, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return c.refresh(fctx)
	})
	select {
	case r := <-ch:
		return r.Val.(View), r.Err
	case <-ctx.Done():
		return c.settled(), ctx.Err()
	}
}

// Stop cancels the refresh in flight; its result is discarded.
func (c *Catalog) Stop() {
	c.tracker.Stop()
}

func (c *Catalog) refresh(ctx context.Context) (View, error) {
	ctx, gen := c.tracker.Begin(ctx)
	defer c.tracker.Finish(gen)

	listings, err := c.fetchAll(ctx)
	if err != nil {
		if c.tracker.Current() != gen {
			return c.settled(), ErrSuperseded
		}
		log.Error().Err(err).Uint64("generation", gen).Msg("catalog refresh failed")
		return c.fallback(ctx, gen, err)
	}

	next := View{Listings: listings, SyncedAt: c.now(), Generation: gen}
	if !c.commit(gen, next) {
		return c.settled(), ErrSuperseded
	}
	if c.Mirror != nil {
		if err := c.Mirror.Replace(ctx, listings, next.SyncedAt); err != nil {
			log.Warn().Err(err).Msg("catalog mirror write failed")
		}
	}
	log.Info().Int("listings", len(listings)).Uint64("generation", gen).Msg("catalog refreshed")
	return next, nil
}

// settled is the last committed view, or a failed one when nothing was ever
// committed, so an abandoned refresh never reads as an empty catalog.
func (c *Catalog) settled() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return View{Listings: []domain.Listing{}, Failed: true}
	}
	return c.view
}

func (c *Catalog) fetchAll(ctx context.Context) ([]domain.Listing, error) {
	var out []domain.Listing
	for page := 1; page <= maxFetchPages; page++ {
		res, err := c.Source.Listings(ctx, ActiveQuery().Paginate(page, fetchPageSize))
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		out = append(out, res.Listings...)
		if len(res.Listings) < fetchPageSize || len(out) >= res.Total {
			break
		}
	}
	if out == nil {
		out = []domain.Listing{}
	}
	return out, nil
}

func (c *Catalog) fallback(ctx context.Context, gen uint64, cause error) (View, error) {
	if c.Mirror != nil {
		listings, syncedAt, err := c.Mirror.Active(ctx)
		if err == nil {
			v := View{Listings: listings, SyncedAt: syncedAt, Generation: gen, Stale: true}
			if c.commit(gen, v) {
				return v, nil
			}
			return c.settled(), ErrSuperseded
		}
		log.Warn().Err(err).Msg("catalog mirror unavailable")
	}

	prev := c.Current()
	v := prev
	v.Generation = gen
	if len(prev.Listings) > 0 {
		v.Stale = true
	} else {
		v = View{Listings: []domain.Listing{}, Generation: gen, Failed: true}
	}
	if !c.commit(gen, v) {
		return c.settled(), ErrSuperseded
	}
	if v.Failed {
		return v, fmt.Errorf("catalog: %w", cause)
	}
	return v, nil
}

func (c *Catalog) commit(gen uint64, v View) bool {
	return c.tracker.Commit(gen, func() {
		c.mu.Lock()
		c.view = v
		c.loaded = true
		c.mu.Unlock()
	})
}

func (c *Catalog) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
