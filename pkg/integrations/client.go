package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"

	"github.com/bacoords/woo-dev-blog-tools/pkg/cache"
	"github.com/bacoords/woo-dev-blog-tools/pkg/httputil"
	"github.com/bacoords/woo-dev-blog-tools/pkg/observability"
)

// Response is the part of an HTTP response the fetchers inspect.
// Header names are lower-cased; repeated headers are joined with ", ".
type Response struct {
	Body    string
	Headers map[string]string
	Status  int
}

// Header returns the value of the named header, matched case-insensitively.
func (r *Response) Header(name string) string {
	return r.Headers[strings.ToLower(name)]
}

// Options configures a [Client]. Zero values fall back to sensible defaults.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string // sent with every request
	Retry     httputil.Policy   // rate-limit retry; Attempts 0 means DefaultPolicy
	Cache     cache.Cache       // nil disables caching
	CacheTTL  time.Duration
	Logger    *log.Logger
}

// Client is the GET-only HTTP wrapper shared by the GitHub and WordPress
// clients. A 403 response is taken as rate-limit exhaustion and retried
// after a fixed delay; every other status is handed back to the caller.
type Client struct {
	http   *resty.Client
	retry  httputil.Policy
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = httpTimeout
	}
	if opts.Retry.Attempts == 0 {
		sleep := opts.Retry.Sleep
		opts.Retry = httputil.DefaultPolicy()
		opts.Retry.Sleep = sleep
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}

	rc := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeaders(opts.Headers).
		SetLogger(logger)
	rc.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		logger.Debug("http", "url", res.Request.URL, "status", res.StatusCode(), "took", res.Time())
		return nil
	})

	return &Client{
		http:   rc,
		retry:  opts.Retry,
		cache:  opts.Cache,
		ttl:    opts.CacheTTL,
		logger: logger,
	}
}

// Request performs a GET of rawURL with params appended to its query.
// The Authorization header is set only when token is non-empty.
//
// A 403 is retried according to the client's policy, logging a progress line
// before each wait. When the policy is exhausted Request returns the last
// response together with an error matching [ErrRateLimited]. Any other status
// is returned with a nil error.
func (c *Client) Request(ctx context.Context, rawURL string, params url.Values, token string) (*Response, error) {
	policy := c.retry
	policy.OnRetry = func(attempt int, delay time.Duration, _ error) {
		c.logger.Warn(fmt.Sprintf("Rate limit exceeded. Waiting %s...", delay),
			"url", rawURL, "attempt", attempt, "max", policy.Attempts)
	}

	var resp *Response
	err := httputil.Retry(ctx, policy, func(int) error {
		r, err := c.do(ctx, rawURL, params, token)
		if err != nil {
			return err
		}
		resp = r
		if r.Status == http.StatusForbidden {
			return &httputil.RetryableError{Err: fmt.Errorf("%w: status 403 from %s", ErrRateLimited, rawURL)}
		}
		return nil
	})
	return resp, err
}

// RequestOnce is [Client.Request] without the rate-limit retry: a 403 is
// returned like any other status.
func (c *Client) RequestOnce(ctx context.Context, rawURL string, params url.Values, token string) (*Response, error) {
	return c.do(ctx, rawURL, params, token)
}

// GetJSON performs [Client.Request] and decodes a 200 response body into v.
// A 404 yields [ErrNotFound]; any other non-200 status yields [ErrNetwork].
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, token string, v any) (*Response, error) {
	resp, err := c.Request(ctx, rawURL, params, token)
	if err != nil {
		return resp, err
	}
	if err := checkStatus(resp.Status); err != nil {
		return resp, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	if err := json.Unmarshal([]byte(resp.Body), v); err != nil {
		return resp, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return resp, nil
}

// Cached fills v from the cache under key, or runs fetch (which must
// populate v) and stores the result. Cache failures only cost a refetch.
func (c *Client) Cached(ctx context.Context, key string, v any, fetch func() error) error {
	keyType, _, _ := strings.Cut(key, ":")
	if ok, _ := cache.GetJSON(ctx, c.cache, key, v); ok {
		c.logger.Debug("cache hit", "key", key)
		observability.Cache().OnCacheHit(ctx, keyType)
		return nil
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	if err := fetch(); err != nil {
		return err
	}
	size, err := cache.SetJSON(ctx, c.cache, key, v, c.ttl)
	if err != nil {
		c.logger.Debug("cache write failed", "key", key, "err", err)
		return nil
	}
	observability.Cache().OnCacheSet(ctx, keyType, size)
	return nil
}

func (c *Client) do(ctx context.Context, rawURL string, params url.Values, token string) (*Response, error) {
	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}
	if token != "" {
		req.SetAuthToken(token)
	}

	host, path := rawURL, ""
	if u, err := url.Parse(rawURL); err == nil {
		host, path = u.Host, u.Path
	}
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, host, path)

	res, err := req.Get(rawURL)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	hooks.OnResponse(ctx, http.MethodGet, host, path, res.StatusCode(), res.Time())

	headers := make(map[string]string, len(res.Header()))
	for k, v := range res.Header() {
		headers[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return &Response{Body: string(res.Body()), Headers: headers, Status: res.StatusCode()}, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
