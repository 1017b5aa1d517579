// Package contentapi reads listings and blog posts from the headless content API.
package contentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"porvenir-web/internal/domain"
)

const (
	listingsPath = "/api/inmuebles"
	blogsPath    = "/api/blogs"
	maxBodyBytes = 8 << 20
)

// Cache stores raw response bodies by request URL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("contentapi: unexpected status %d: %s", e.Code, body)
}

// Client is an HTTP client to the content API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Cache      Cache
	CacheTTL   time.Duration
}

// New returns a Client with a bounded request timeout.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type ListingPage struct {
	Listings []domain.Listing
	Total    int
}

type BlogPage struct {
	Blogs []domain.Blog
	Total int
}

// Listings fetches one page of the listing collection.
func (c *Client) Listings(ctx context.Context, q *Query) (ListingPage, error) {
	body, err := c.get(ctx, listingsPath, q, true)
	if err != nil {
		return ListingPage{}, err
	}
	var env envelope[listingAttrs]
	if err := json.Unmarshal(body, &env); err != nil {
		return ListingPage{}, fmt.Errorf("contentapi: decode listings: %w", err)
	}
	d := decoder{origin: c.origin()}
	page := ListingPage{Listings: make([]domain.Listing, 0, len(env.Data)), Total: env.Meta.Pagination.Total}
	for _, e := range env.Data {
		page.Listings = append(page.Listings, d.listing(e))
	}
	if page.Total < len(page.Listings) {
		page.Total = len(page.Listings)
	}
	return page, nil
}

// Blogs fetches one page of the blog collection.
func (c *Client) Blogs(ctx context.Context, q *Query) (BlogPage, error) {
	body, err := c.get(ctx, blogsPath, q, true)
	if err != nil {
		return BlogPage{}, err
	}
	var env envelope[blogAttrs]
	if err := json.Unmarshal(body, &env); err != nil {
		return BlogPage{}, fmt.Errorf("contentapi: decode blogs: %w", err)
	}
	d := decoder{origin: c.origin()}
	page := BlogPage{Blogs: make([]domain.Blog, 0, len(env.Data)), Total: env.Meta.Pagination.Total}
	for _, e := range env.Data {
		page.Blogs = append(page.Blogs, d.blog(e))
	}
	if page.Total < len(page.Blogs) {
		page.Total = len(page.Blogs)
	}
	return page, nil
}

// Ping checks the API answers, bypassing the cache.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, listingsPath, NewQuery().Limit(1), false)
	return err
}

func (c *Client) origin() string {
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *Client) get(ctx context.Context, path string, q *Query, cached bool) ([]byte, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("contentapi: CONTENT_API_URL is not set")
	}
	u := c.origin() + path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}

	useCache := cached && c.Cache != nil && c.CacheTTL > 0
	if useCache {
		body, ok, err := c.Cache.Get(ctx, u)
		if err != nil {
			log.Warn().Err(err).Str("url", u).Msg("content cache read failed")
		} else if ok {
			return body, nil
		}
	}

	body, err := c.do(ctx, u)
	if err != nil {
		return nil, err
	}

	if useCache {
		if err := c.Cache.Set(ctx, u, body, c.CacheTTL); err != nil {
			log.Warn().Err(err).Str("url", u).Msg("content cache write failed")
		}
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("contentapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contentapi: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("contentapi: read body: %w", err)
	}
	log.Debug().
		Str("url", u).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("content api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
