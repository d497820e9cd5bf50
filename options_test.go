package rangka

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestWithRateLimitValidation(t *testing.T) {
	if _, err := New("https://api.example.com", WithRateLimit(-1, time.Second)); err == nil {
		t.Error("expected error for negative rate limit count")
	}
	if _, err := New("https://api.example.com", WithRateLimit(5, -time.Second)); err == nil {
		t.Error("expected error for negative rate limit interval")
	}
	if _, err := New("https://api.example.com", WithRateLimit(2000000, time.Second)); err == nil {
		t.Error("expected error for extreme rate limit count")
	}

	client, err := New("https://api.example.com", WithRateLimit(10, time.Second))
	if err != nil {
		t.Fatalf("valid rate limit rejected: %v", err)
	}
	if client.limiter == nil {
		t.Error("limiter not configured")
	}
	if client.limiter.Burst() != 10 {
		t.Errorf("expected burst 10, got %d", client.limiter.Burst())
	}
}

func TestWithTimeoutValidation(t *testing.T) {
	if _, err := New("https://api.example.com", WithTimeout(-time.Second)); err == nil {
		t.Error("expected error for negative timeout")
	}
	if _, err := New("https://api.example.com", WithTimeout(2*time.Hour)); err == nil {
		t.Error("expected error for extreme timeout")
	}
}

func TestWithHTTPClientNil(t *testing.T) {
	if _, err := New("https://api.example.com", WithHTTPClient(nil)); err == nil {
		t.Error("expected error for nil HTTP client")
	}
}

func TestWithDebugRequiresLogger(t *testing.T) {
	_, err := New("https://api.example.com", WithDebug())
	if err == nil {
		t.Fatal("expected error enabling debug without a logger")
	}
	if !strings.Contains(err.Error(), "logger must be set") {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := New("https://api.example.com", WithDebug(), WithLogger(NewSimpleLogger())); err != nil {
		t.Errorf("debug with logger rejected: %v", err)
	}
	if _, err := New("https://api.example.com", WithSimpleLogger()); err != nil {
		t.Errorf("WithSimpleLogger rejected: %v", err)
	}
}

func TestWithDefaultHeadersSchemaStruct(t *testing.T) {
	type headerSchema struct {
		Accept string `json:"Accept"`
		App    string `json:"X-App"`
	}

	client, err := New("https://api.example.com",
		WithDefaultHeaders(headerSchema{Accept: "application/json", App: "rangka"}),
	)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if client.headers["Accept"] != "application/json" || client.headers["X-App"] != "rangka" {
		t.Errorf("schema headers not flattened: %v", client.headers)
	}
}

func TestWithDefaultHeadersRejectsScalar(t *testing.T) {
	_, err := New("https://api.example.com", WithDefaultHeaders(42))
	if err == nil {
		t.Fatal("expected error flattening scalar headers")
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected *ConfigurationError, got %T", err)
	}
}

func TestWithErrorModels(t *testing.T) {
	client, err := New("https://api.example.com",
		WithErrorModels(map[int]ErrorModelFunc{
			http.StatusNotFound:  func() any { return new(apiError) },
			http.StatusForbidden: func() any { return new(apiError) },
		}),
	)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if len(client.errorModels) != 2 {
		t.Errorf("expected 2 registered error models, got %d", len(client.errorModels))
	}
}

func TestWithRequestIDGenerator(t *testing.T) {
	client, err := New("https://api.example.com",
		WithRequestIDGenerator(func() string { return "fixed" }),
	)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if got := client.debug.RequestIDGen(); got != "fixed" {
		t.Errorf("expected custom generator, got %q", got)
	}
}
