// Package rangka provides a configurable base client for JSON REST APIs:
//
//   - Client-level defaults (headers, cookies, query parameters, bearer token)
//     merged with per-call overrides, last-write-wins per key
//   - Blocking token-bucket rate limiting via golang.org/x/time/rate
//   - HTTP status codes mapped to a typed error family
//     (redirection / client error / server error) with optional
//     schema-parsed error payloads
//   - JSON decoding into caller-declared models with struct-tag validation,
//     origin stamping, and an optional pagination-navigation contract
//     (Paginated)
//   - Whole-file uploads and 64 KiB chunked file streaming
//   - Prometheus metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - One Client per base endpoint, safe for concurrent use
//   - The transport, JSON codec and validation engine stay pluggable
//     black boxes; rangka only does the glue
//
// Typical usage:
//
//	client, err := rangka.New("https://api.example.com",
//	    rangka.WithBearerToken(token),
//	    rangka.WithDefaultHeaders(map[string]string{"Accept": "application/json"}),
//	    rangka.WithRateLimit(10, time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	var user User
//	_, err = client.Get(ctx, "/users/1", rangka.Into(&user))
//
// Non-2xx responses are returned as *HTTPError; use errors.Is against
// ErrClientError / ErrServerError / ErrRedirection to branch on the family.
// A closed client suppresses further requests with a logged warning instead
// of failing.
package rangka
