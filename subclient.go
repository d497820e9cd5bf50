package rangka

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// SubConfig declares the extra defaults a sub-client layers over its
// parent's. Headers, Cookies and Query accept plain string maps or schema
// structs, flattened per Flatten.
type SubConfig struct {
	Headers     any
	Cookies     any
	Query       any
	ErrorModels map[int]ErrorModelFunc
}

// SubClient scopes requests to a path prefix under its parent client,
// layering its own defaults between the parent's and the per-call overrides.
// It shares the parent's transport, rate limiter and closed state.
type SubClient struct {
	name   string
	prefix string
	parent *Client

	headers     map[string]string
	cookies     map[string]string
	query       map[string]string
	errorModels map[int]ErrorModelFunc
}

// RegisterSub creates a sub-client under name with the given path prefix and
// records it in the client's registry. Registering the same name twice is an
// error.
func (c *Client) RegisterSub(name, prefix string, cfg SubConfig) (*SubClient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ConfigurationError{Problems: []string{"sub-client name is required"}}
	}

	headers, err := Flatten(cfg.Headers)
	if err != nil {
		return nil, &ConfigurationError{Problems: []string{"sub-client headers: " + err.Error()}}
	}
	cookies, err := Flatten(cfg.Cookies)
	if err != nil {
		return nil, &ConfigurationError{Problems: []string{"sub-client cookies: " + err.Error()}}
	}
	query, err := Flatten(cfg.Query)
	if err != nil {
		return nil, &ConfigurationError{Problems: []string{"sub-client query: " + err.Error()}}
	}

	s := &SubClient{
		name:        name,
		prefix:      prefix,
		parent:      c,
		headers:     headers,
		cookies:     cookies,
		query:       query,
		errorModels: cfg.ErrorModels,
	}

	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	if _, exists := c.subs[name]; exists {
		return nil, fmt.Errorf("rangka: sub-client %q already registered", name)
	}
	c.subs[name] = s
	return s, nil
}

// Sub looks up a registered sub-client by name.
func (c *Client) Sub(name string) (*SubClient, bool) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	s, ok := c.subs[name]
	return s, ok
}

// Name returns the registry name of the sub-client.
func (s *SubClient) Name() string { return s.name }

// Request dispatches through the parent client with the sub-client's prefix
// and defaults applied. Headers, cookies and query parameters still merge key
// by key with per-call overrides winning; an error-model table given per call
// replaces the sub-client's table outright, as it does the client's.
func (s *SubClient) Request(ctx context.Context, method, path string, opts ...RequestOption) (*Result, error) {
	pre := make([]RequestOption, 0, 3+len(opts)+1)
	if len(s.headers) > 0 {
		pre = append(pre, Headers(s.headers))
	}
	if len(s.cookies) > 0 {
		pre = append(pre, Cookies(s.cookies))
	}
	if len(s.query) > 0 {
		pre = append(pre, Query(s.query))
	}
	all := append(append(pre, opts...), s.fallbackErrorModels)
	return s.parent.Request(ctx, method, s.join(path), all...)
}

// fallbackErrorModels installs the sub-client's error-model table only when
// the call supplied none, so per-call tables replace it rather than merge.
func (s *SubClient) fallbackErrorModels(ro *requestOptions) {
	if ro.errorModels == nil && len(s.errorModels) > 0 {
		ro.errorModels = s.errorModels
	}
}

// Get issues a GET request under the sub-client's prefix.
func (s *SubClient) Get(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return s.Request(ctx, http.MethodGet, path, opts...)
}

// Post issues a POST request under the sub-client's prefix.
func (s *SubClient) Post(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return s.Request(ctx, http.MethodPost, path, opts...)
}

// Put issues a PUT request under the sub-client's prefix.
func (s *SubClient) Put(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return s.Request(ctx, http.MethodPut, path, opts...)
}

// Patch issues a PATCH request under the sub-client's prefix.
func (s *SubClient) Patch(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return s.Request(ctx, http.MethodPatch, path, opts...)
}

// Delete issues a DELETE request under the sub-client's prefix.
func (s *SubClient) Delete(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return s.Request(ctx, http.MethodDelete, path, opts...)
}

func (s *SubClient) join(path string) string {
	prefix := s.prefix
	if prefix == "" {
		return path
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if path == "" {
		return prefix
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(prefix, "/") + path
}
