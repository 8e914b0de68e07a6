// Package timing fetches per-lap data for a single race session from the
// timing data provider. Responses are cached on disk keyed by the request
// parameters, so repeated runs for the same session never hit the network.
package timing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/f1log/stint-analyzer-go/log"
	"github.com/f1log/stint-analyzer-go/pkg/model"
)

// DefaultBaseURL points at the public timing archive.
const DefaultBaseURL = "https://api.f1log.dev"

type Client struct {
	baseURL string
	hc      *http.Client
	cache   *Cache
	l       *log.Logger
}

type ClientOption func(c *Client)

func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.hc = hc }
}

// WithCache enables the on-disk response cache in dir.
func WithCache(dir string) ClientOption {
	return func(c *Client) { c.cache = NewCache(dir) }
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		hc:      &http.Client{Timeout: 60 * time.Second},
		l:       log.Default().Named("timing"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionData is one session's worth of lap data plus its metadata.
type SessionData struct {
	Meta model.SessionMeta
	Name string // display name, e.g. "Hungarian Grand Prix"
	Laps []model.Lap
}

// Fetch loads the lap table for the session identified by meta.
func (c *Client) Fetch(ctx context.Context, meta model.SessionMeta) (
	*SessionData, error,
) {
	key := cacheKey(meta)
	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			c.l.Debug("cache hit", log.String("session", meta.String()))
			return decodeSession(meta, data)
		}
	}
	data, err := c.fetchRemote(ctx, meta)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.Put(key, data); err != nil {
			c.l.Warn("could not cache response", log.ErrorField(err))
		}
	}
	return decodeSession(meta, data)
}

func (c *Client) fetchRemote(ctx context.Context, meta model.SessionMeta) (
	[]byte, error,
) {
	u := fmt.Sprintf("%s/v1/session/laps?year=%d&event=%s&session=%s",
		c.baseURL, meta.Year,
		url.QueryEscape(meta.Event), url.QueryEscape(meta.SessionCode))
	c.l.Debug("fetching session", log.String("url", u))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", meta.String(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: provider returned %s",
			meta.String(), resp.Status)
	}
	return io.ReadAll(resp.Body)
}
