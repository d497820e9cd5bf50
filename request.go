package rangka

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/bytedance/sonic"
)

// RequestOption represents a per-call option. Per-call values override the
// client defaults key by key; unset values fall back to the defaults.
type RequestOption func(*requestOptions)

type requestOptions struct {
	headers map[string]string
	cookies map[string]string
	query   map[string]string

	body           any
	raw            io.Reader
	rawContentType string

	into        any
	timeout     time.Duration
	errorModels map[int]ErrorModelFunc

	problems []string
}

// Headers overrides header defaults for this call. Accepts a plain string
// map or a schema struct, flattened per Flatten.
func Headers(v any) RequestOption {
	return func(ro *requestOptions) {
		m, err := Flatten(v)
		if err != nil {
			ro.problems = append(ro.problems, "headers: "+err.Error())
			return
		}
		ro.headers = mergeValues(ro.headers, m)
	}
}

// Header overrides a single header for this call.
func Header(key, value string) RequestOption {
	return Headers(map[string]string{key: value})
}

// Cookies overrides cookie defaults for this call.
func Cookies(v any) RequestOption {
	return func(ro *requestOptions) {
		m, err := Flatten(v)
		if err != nil {
			ro.problems = append(ro.problems, "cookies: "+err.Error())
			return
		}
		ro.cookies = mergeValues(ro.cookies, m)
	}
}

// Cookie overrides a single cookie for this call.
func Cookie(name, value string) RequestOption {
	return Cookies(map[string]string{name: value})
}

// Query overrides query parameter defaults for this call.
func Query(v any) RequestOption {
	return func(ro *requestOptions) {
		m, err := Flatten(v)
		if err != nil {
			ro.problems = append(ro.problems, "query: "+err.Error())
			return
		}
		ro.query = mergeValues(ro.query, m)
	}
}

// Param overrides a single query parameter for this call.
func Param(key, value string) RequestOption {
	return Query(map[string]string{key: value})
}

// Body attaches a JSON request body. Maps and schema structs are both
// accepted; the value is encoded as-is.
func Body(v any) RequestOption {
	return func(ro *requestOptions) {
		ro.body = v
	}
}

// RawBody attaches a request body sent without pre-processing. It takes
// precedence over Body.
func RawBody(r io.Reader, contentType string) RequestOption {
	return func(ro *requestOptions) {
		ro.raw = r
		ro.rawContentType = contentType
	}
}

// Into parses a successful response into dst, which must be a non-nil
// pointer to a model struct or a slice of models. Models embedding
// ResponseBase are stamped with the originating URL.
func Into(dst any) RequestOption {
	return func(ro *requestOptions) {
		rv := reflect.ValueOf(dst)
		if dst == nil || rv.Kind() != reflect.Pointer || rv.IsNil() {
			ro.problems = append(ro.problems, fmt.Sprintf("into: %T is not a non-nil pointer", dst))
			return
		}
		ro.into = dst
	}
}

// Timeout overrides the per-call timeout for this call.
func Timeout(d time.Duration) RequestOption {
	return func(ro *requestOptions) {
		if d <= 0 {
			ro.problems = append(ro.problems, "timeout must be positive")
			return
		}
		ro.timeout = d
	}
}

// ErrorModels replaces the client's error model table for this call.
func ErrorModels(models map[int]ErrorModelFunc) RequestOption {
	return func(ro *requestOptions) {
		if ro.errorModels == nil {
			ro.errorModels = map[int]ErrorModelFunc{}
		}
		for code, f := range models {
			ro.errorModels[code] = f
		}
	}
}

// ErrorModel registers an error model for one status code for this call.
func ErrorModel(code int, f ErrorModelFunc) RequestOption {
	return ErrorModels(map[int]ErrorModelFunc{code: f})
}

func (ro *requestOptions) bodyReader() (io.Reader, string, error) {
	if ro.raw != nil {
		return ro.raw, ro.rawContentType, nil
	}
	if ro.body == nil {
		return nil, "", nil
	}
	data, err := sonic.Marshal(ro.body)
	if err != nil {
		return nil, "", fmt.Errorf("rangka: cannot encode request body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}
