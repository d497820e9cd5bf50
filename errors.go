package rangka

import (
	"fmt"
	"net/http"
	"strings"
)

// Family sentinels for errors.Is matching. A sentinel with a zero status code
// matches every *HTTPError of the same family; ErrHTTP matches any *HTTPError.
var (
	ErrHTTP        = &HTTPError{}
	ErrRedirection = &HTTPError{Family: FamilyRedirection}
	ErrClientError = &HTTPError{Family: FamilyClientError}
	ErrServerError = &HTTPError{Family: FamilyServerError}
)

// HTTPError is returned for any response with a status code of 300 or above.
// Payload holds the decoded JSON body, or the schema-parsed model when an
// error model was registered for the status code.
type HTTPError struct {
	StatusCode int
	Variant    string
	Family     Family
	Payload    any
	Raw        []byte
}

// Error implements error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	name := e.Variant
	if name == "" {
		name = e.Family.String()
	}
	return fmt.Sprintf("rangka: %s: %d %s", name, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is matches family sentinels and exact status codes for errors.Is.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok || e == nil {
		return false
	}
	if t.StatusCode != 0 {
		return e.StatusCode == t.StatusCode
	}
	if t.Family == FamilyGeneric {
		return true
	}
	return e.Family == t.Family
}

// newHTTPError builds the family error for a status code, attaching the
// decoded or schema-parsed payload.
func newHTTPError(code int, payload any, raw []byte) *HTTPError {
	name, family := VariantFor(code)
	return &HTTPError{
		StatusCode: code,
		Variant:    name,
		Family:     family,
		Payload:    payload,
		Raw:        raw,
	}
}

// ParseError is returned when a response body could not be parsed as
// structured data. Raw carries the unparsed text.
type ParseError struct {
	Raw   []byte
	cause error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return fmt.Sprintf("rangka: response body is not valid JSON: %v", e.cause)
	}
	return "rangka: response body is not valid JSON"
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// ConfigurationError aggregates the problems found while validating client
// configuration. It is returned from New and never retried internally.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "rangka: invalid configuration: " + strings.Join(e.Problems, "; ")
}
