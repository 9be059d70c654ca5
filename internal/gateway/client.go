// Package gateway wraps the three list endpoints of the upstream tutoring API.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/model"
)

// Upstream list paths.
const (
	PathTutors   = "/tutors"
	PathUsers    = "/users"
	PathBookings = "/booking"
)

// maxBodyBytes caps a single list response.
const maxBodyBytes = 32 << 20

// ErrUpstream wraps every failure to obtain a list: transport errors, non-2xx
// statuses and undecodable bodies.
var ErrUpstream = errors.New("upstream request failed")

// Cache stores raw upstream bodies. Implementations must treat their own
// faults as misses.
type Cache interface {
	Get(ctx context.Context, path string) ([]byte, bool)
	Set(ctx context.Context, path string, body []byte)
}

// Client issues unparameterized GETs against the API base URL.
type Client struct {
	baseURL string
	http    *http.Client
	cache   Cache
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache enables the read-through response cache.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// NewClient creates a Client. A zero timeout means no client-side deadline.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "gateway").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured upstream root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetTutors fetches GET {base}/tutors.
func (c *Client) GetTutors(ctx context.Context) ([]model.Tutor, error) {
	return getList[model.Tutor](ctx, c, PathTutors)
}

// GetUsers fetches GET {base}/users, the student list.
func (c *Client) GetUsers(ctx context.Context) ([]model.Student, error) {
	return getList[model.Student](ctx, c, PathUsers)
}

// GetBookings fetches GET {base}/booking, the class list.
func (c *Client) GetBookings(ctx context.Context) ([]model.Class, error) {
	return getList[model.Class](ctx, c, PathBookings)
}

// GetRaw returns the untyped JSON array served at path.
func (c *Client) GetRaw(ctx context.Context, path string) ([]json.RawMessage, error) {
	return getList[json.RawMessage](ctx, c, path)
}

func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, path); ok {
			var out []T
			if err := json.Unmarshal(body, &out); err == nil {
				c.log.Debug().Str("path", path).Msg("served from cache")
				return out, nil
			}
		}
	}

	body, err := c.fetch(ctx, path)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUpstream, path, err)
	}

	if c.cache != nil {
		c.cache.Set(ctx, path, body)
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request %s: %v", ErrUpstream, path, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("upstream response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrUpstream, path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUpstream, path, err)
	}
	return body, nil
}
