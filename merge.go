package rangka

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Flatten converts a set of request values into a plain string map. It
// accepts nil, map[string]string, map[string]any, or a schema struct
// (optionally behind a pointer) whose exported fields are flattened using
// their json tags. Nested structures are not descended into; only top-level
// keys take part in merging.
func Flatten(v any) (map[string]string, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		return m, nil
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			if val == nil {
				continue
			}
			out[k] = fmt.Sprint(val)
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("rangka: cannot flatten %T into request values", v)
	}

	raw := map[string]any{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &raw,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(rv.Interface()); err != nil {
		return nil, fmt.Errorf("rangka: cannot flatten %T: %w", v, err)
	}

	out := make(map[string]string, len(raw))
	for k, val := range raw {
		if val == nil {
			continue
		}
		out[k] = fmt.Sprint(val)
	}
	return out, nil
}

// mergeValues overlays overrides on defaults, last write wins per key.
// Neither input is mutated; an empty override returns the defaults unchanged
// in content.
func mergeValues(defaults, overrides map[string]string) map[string]string {
	if len(defaults) == 0 && len(overrides) == 0 {
		return nil
	}
	out := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
