package rangka

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

// modelValidator enforces `validate` struct tags on decoded models.
var modelValidator = validator.New(validator.WithRequiredStructEnabled())

// ResponseBase can be embedded in a response model to have it stamped with
// the originating request URL and receipt time after decoding.
type ResponseBase struct {
	RequestURL string    `json:"-"`
	ReceivedAt time.Time `json:"-"`
}

// Paginated is the navigation contract for response models whose payload is
// one page of a larger collection. The cursor methods return whatever the API
// uses to address a page (a page number, an offset, a URL); the client never
// interprets the values, it only carries the contract. Implementations should
// return nil cursors when IsPaginating reports false.
type Paginated interface {
	IsPaginating() bool
	Next() any
	Previous() any
	Start() any
	End() any
}

func (b *ResponseBase) stampOrigin(u string, at time.Time) {
	b.RequestURL = u
	b.ReceivedAt = at
}

type originStamper interface {
	stampOrigin(string, time.Time)
}

func (c *Client) decodeSuccess(ro *requestOptions, resp *http.Response, raw []byte, originURL string) (*Result, error) {
	res := &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       raw,
		URL:        originURL,
	}

	var decoded any
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, &ParseError{Raw: raw, cause: err}
	}
	res.Data = decoded

	if ro.into != nil {
		if err := decodeModel(raw, ro.into, originURL); err != nil {
			return nil, err
		}
		res.Data = ro.into
	}
	return res, nil
}

func (c *Client) errorFromResponse(ro *requestOptions, resp *http.Response, raw []byte, method, endpoint string) error {
	models := ro.errorModels
	if models == nil {
		models = c.errorModels
	}

	var decoded any
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		c.metrics.RecordError("Parse", method, endpoint)
		return &ParseError{Raw: raw, cause: err}
	}

	payload := decoded
	if factory, ok := models[resp.StatusCode]; ok && factory != nil {
		dst := factory()
		if err := sonic.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("rangka: error payload does not match %T: %w", dst, err)
		}
		if err := validateModel(dst); err != nil {
			return err
		}
		payload = dst
	}

	httpErr := newHTTPError(resp.StatusCode, payload, raw)
	c.metrics.RecordError(httpErr.Family.String(), method, endpoint)
	return httpErr
}

func decodeModel(raw []byte, dst any, originURL string) error {
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("rangka: response does not match %T: %w", dst, err)
	}
	if err := validateModel(dst); err != nil {
		return err
	}
	stampOrigin(dst, originURL, time.Now().UTC())
	return nil
}

// validateModel runs struct-tag validation on a model, or on each element
// when the model is a slice. Non-struct payloads pass through untouched.
func validateModel(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return modelValidator.Struct(rv.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			ev := rv.Index(i)
			for ev.Kind() == reflect.Pointer && !ev.IsNil() {
				ev = ev.Elem()
			}
			if ev.Kind() != reflect.Struct {
				continue
			}
			if err := modelValidator.Struct(ev.Interface()); err != nil {
				return fmt.Errorf("rangka: element %d: %w", i, err)
			}
		}
	}
	return nil
}

// stampOrigin records the originating URL on a single model or on every
// element of a slice of models.
func stampOrigin(v any, u string, at time.Time) {
	if s, ok := v.(originStamper); ok {
		s.stampOrigin(u, at)
		return
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return
	}
	for i := 0; i < rv.Len(); i++ {
		ev := rv.Index(i)
		if ev.Kind() != reflect.Pointer && ev.CanAddr() {
			ev = ev.Addr()
		}
		if !ev.CanInterface() {
			continue
		}
		if s, ok := ev.Interface().(originStamper); ok {
			s.stampOrigin(u, at)
		}
	}
}
