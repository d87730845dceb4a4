// Package client performs HTTP calls against the ERP backend with
// automatic bearer-token attachment, refresh-on-expiry with single-flight
// de-duplication, and normalized error surfacing.
package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stitchwork/go-erp-client/credentials"
	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 30 * time.Second

// Public endpoints must be reachable without a valid access token, so a 401
// from them never triggers the refresh protocol. Matched by substring, not
// exact path equality.
var publicPaths = []string{
	"/auth/login",
	"/auth/register",
	"/auth/refresh",
	"/auth/forgot-password",
}

// Client is the authenticated HTTP client for the ERP backend. Construct
// one per process and share it; the single-flight refresh guarantee is per
// Client instance.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	store            credentials.Store
	logger           zerolog.Logger
	refreshGroup     singleflight.Group
	refreshBuffer    time.Duration
	onSessionExpired func()
	nowTime          func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the underlying transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRefreshBuffer enables proactive refresh: before a protected request,
// if the access token is a JWT expiring within d, the token pair is
// refreshed first through the same single-flight path. Zero disables it.
func WithRefreshBuffer(d time.Duration) Option {
	return func(c *Client) {
		c.refreshBuffer = d
	}
}

// WithSessionExpiredHook sets the callback fired exactly once per
// unrecoverable refresh failure, after credentials have been cleared.
func WithSessionExpiredHook(hook func()) Option {
	return func(c *Client) {
		c.onSessionExpired = hook
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Client) {
		c.nowTime = nowFunc
	}
}

// New creates a Client for the given base URL and credential store.
func New(baseURL string, store credentials.Store, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[client.New] base URL is required")
	}
	if store == nil {
		return nil, errors.New("[client.New] credentials store is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		store:      store,
		logger:     zerolog.Nop(),
		nowTime:    time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}
