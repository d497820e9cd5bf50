package rangka

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout is the per-call timeout applied when none is given.
const DefaultTimeout = 300 * time.Second

// ErrorModelFunc constructs a fresh model to parse an error payload into.
type ErrorModelFunc func() any

// Client is a configured base endpoint plus the default request options sent
// with every call. It wraps a single *http.Client and, when configured, a
// single client-global rate limiter. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	base       *url.URL

	headers map[string]string
	cookies map[string]string
	query   map[string]string
	bearer  string

	errorModels map[int]ErrorModelFunc

	limiter        *rate.Limiter
	limitCount     int
	limitInterval  time.Duration
	timeout        time.Duration
	metrics        *MetricsCollector
	logger         Logger
	debug          *DebugConfig
	configProblems []string

	subsMu sync.RWMutex
	subs   map[string]*SubClient

	closed atomic.Bool
}

// New constructs a Client for the given base URL using the provided
// functional options. A missing or unparsable base URL and any invalid
// option combination fail construction with a *ConfigurationError.
func New(baseURL string, options ...Option) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		debug:      DefaultDebugConfig(),
		subs:       map[string]*SubClient{},
	}

	if strings.TrimSpace(baseURL) == "" {
		return nil, &ConfigurationError{Problems: []string{"base URL is required"}}
	}
	if u, err := url.Parse(baseURL); err != nil {
		c.configProblems = append(c.configProblems, "base URL is not parsable: "+err.Error())
	} else {
		// Query carried on the base URL becomes default parameters.
		if u.RawQuery != "" {
			q := map[string]string{}
			for k, vs := range u.Query() {
				if len(vs) > 0 {
					q[k] = vs[0]
				}
			}
			c.query = mergeValues(q, c.query)
			u.RawQuery = ""
		}
		c.base = u
	}

	for _, option := range options {
		option(c)
	}

	if c.bearer != "" {
		c.headers = mergeValues(c.headers, map[string]string{"Authorization": "Bearer " + c.bearer})
	}

	if err := c.validateConfiguration(); err != nil {
		return nil, err
	}
	return c, nil
}

// Result carries a decoded response. Data holds the JSON payload as generic
// structured data, or the schema model when the call used Into.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Data       any
	URL        string
}

// Request sends one HTTP call to the client's base URL joined with path.
// Headers, cookies and query parameters merge client defaults with per-call
// overrides, override winning per key. The configured rate limiter, if any,
// blocks until capacity is available.
//
// A 2xx response is decoded as JSON and returned; with Into, the payload is
// additionally parsed into the given model (or each element of a slice),
// validated, and stamped with the originating URL. Any other status is
// returned as *HTTPError carrying the decoded or schema-parsed payload.
// Bodies that are not valid JSON surface as *ParseError.
//
// After Close the request is suppressed: nothing is sent, a warning is
// logged, and both return values are nil.
func (c *Client) Request(ctx context.Context, method, path string, opts ...RequestOption) (*Result, error) {
	if c.closed.Load() {
		if c.logger != nil {
			c.logger.Warn("client is closed, request suppressed", "method", method, "path", path)
		}
		return nil, nil
	}

	ro := &requestOptions{}
	for _, opt := range opts {
		opt(ro)
	}
	if len(ro.problems) > 0 {
		return nil, &ConfigurationError{Problems: ro.problems}
	}

	u := c.resolveURL(path, mergeValues(c.query, ro.query))
	headers := mergeValues(c.headers, ro.headers)
	cookies := mergeValues(c.cookies, ro.cookies)
	endpoint := endpointLabel(u)

	var requestID string
	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}

	body, contentType, err := ro.bodyReader()
	if err != nil {
		return nil, err
	}

	timeout := ro.timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.limiter != nil {
		if c.debug != nil && c.debug.Enabled && c.debug.LogRateLimit && c.logger != nil && c.limiter.Tokens() < 1 {
			c.logger.Info("waiting for rate limit", "requestID", requestID, "endpoint", endpoint)
		}
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			c.metrics.RecordError("RateLimit", method, endpoint)
			return nil, err
		}
		c.metrics.RecordLimiterWait(endpoint, time.Since(waitStart))
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for k, v := range cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}

	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("starting request", "requestID", requestID, "method", method, "url", u.String())
	}

	start := time.Now()
	c.metrics.RecordRequestStart(method, endpoint)
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordRequestEnd(method, endpoint)
	if err != nil {
		c.metrics.RecordError("Network", method, endpoint)
		if c.logger != nil {
			c.logger.Error("request failed", "requestID", requestID, "method", method, "url", u.String(), "error", err.Error())
		}
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordError("Network", method, endpoint)
		return nil, err
	}

	c.metrics.RecordRequest(method, endpoint, resp.StatusCode, time.Since(start))
	if c.logger != nil {
		c.logger.Info("request completed", "requestID", requestID, "method", method, "status", resp.StatusCode, "url", u.String())
	}

	if resp.StatusCode < 300 {
		return c.decodeSuccess(ro, resp, raw, u.String())
	}
	return nil, c.errorFromResponse(ro, resp, raw, method, endpoint)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return c.Request(ctx, http.MethodGet, path, opts...)
}

// Post issues a POST request. Use Body or RawBody to attach a payload.
func (c *Client) Post(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return c.Request(ctx, http.MethodPost, path, opts...)
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return c.Request(ctx, http.MethodPut, path, opts...)
}

// Patch issues a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return c.Request(ctx, http.MethodPatch, path, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return c.Request(ctx, http.MethodDelete, path, opts...)
}

// Close marks the client closed and releases idle connections. Further
// requests are suppressed with a logged warning rather than an error.
// Close is idempotent.
func (c *Client) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.httpClient.CloseIdleConnections()
	if c.logger != nil {
		c.logger.Debug("client closed")
	}
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	return c.closed.Load()
}

// BaseURL returns the client's base URL without default query parameters.
func (c *Client) BaseURL() string {
	if c.base == nil {
		return ""
	}
	return c.base.String()
}

func (c *Client) resolveURL(path string, query map[string]string) *url.URL {
	u := *c.base
	if path != "" {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		u.Path = strings.TrimSuffix(u.Path, "/") + path
	}
	if len(query) > 0 {
		q := url.Values{}
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return &u
}

func endpointLabel(u *url.URL) string {
	if u == nil {
		return "unknown"
	}

	var builder strings.Builder
	builder.WriteString(u.Host)

	if u.Path != "" && u.Path != "/" {
		builder.WriteString(u.Path)
	} else {
		builder.WriteByte('/')
	}

	return builder.String()
}
