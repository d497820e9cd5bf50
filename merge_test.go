package rangka

import (
	"reflect"
	"testing"
)

func TestMergeValuesPrecedence(t *testing.T) {
	defaults := map[string]string{"a": "1", "b": "2"}
	overrides := map[string]string{"b": "3"}

	got := mergeValues(defaults, overrides)
	want := map[string]string{"a": "1", "b": "3"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("mergeValues() = %v, want %v", got, want)
	}
}

func TestMergeValuesIdempotent(t *testing.T) {
	defaults := map[string]string{"a": "1", "b": "2"}

	got := mergeValues(defaults, nil)
	if !reflect.DeepEqual(got, defaults) {
		t.Errorf("merging with empty override changed defaults: %v", got)
	}

	got = mergeValues(defaults, map[string]string{})
	if !reflect.DeepEqual(got, defaults) {
		t.Errorf("merging with empty map changed defaults: %v", got)
	}
}

func TestMergeValuesDoesNotMutateInputs(t *testing.T) {
	defaults := map[string]string{"a": "1"}
	overrides := map[string]string{"a": "2"}

	_ = mergeValues(defaults, overrides)

	if defaults["a"] != "1" {
		t.Error("defaults mutated by merge")
	}
}

func TestMergeValuesBothEmpty(t *testing.T) {
	if got := mergeValues(nil, nil); got != nil {
		t.Errorf("mergeValues(nil, nil) = %v, want nil", got)
	}
}

func TestFlattenNil(t *testing.T) {
	got, err := Flatten(nil)
	if err != nil {
		t.Fatalf("Flatten(nil) returned error: %v", err)
	}
	if got != nil {
		t.Errorf("Flatten(nil) = %v, want nil", got)
	}
}

func TestFlattenStringMap(t *testing.T) {
	in := map[string]string{"k": "v"}
	got, err := Flatten(in)
	if err != nil {
		t.Fatalf("Flatten() returned error: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("Flatten() = %v, want %v", got, in)
	}
}

func TestFlattenAnyMap(t *testing.T) {
	got, err := Flatten(map[string]any{"page": 2, "q": "cats", "skip": nil})
	if err != nil {
		t.Fatalf("Flatten() returned error: %v", err)
	}
	want := map[string]string{"page": "2", "q": "cats"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}

func TestFlattenSchemaStruct(t *testing.T) {
	type searchParams struct {
		Query string `json:"q"`
		Page  int    `json:"page"`
	}

	got, err := Flatten(searchParams{Query: "cats", Page: 3})
	if err != nil {
		t.Fatalf("Flatten() returned error: %v", err)
	}
	want := map[string]string{"q": "cats", "page": "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}

	// Pointers to schema structs flatten the same way.
	got, err = Flatten(&searchParams{Query: "dogs", Page: 1})
	if err != nil {
		t.Fatalf("Flatten(pointer) returned error: %v", err)
	}
	want = map[string]string{"q": "dogs", "page": "1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten(pointer) = %v, want %v", got, want)
	}
}

func TestFlattenNilPointer(t *testing.T) {
	type schema struct {
		Query string `json:"q"`
	}
	var p *schema

	got, err := Flatten(p)
	if err != nil {
		t.Fatalf("Flatten(nil pointer) returned error: %v", err)
	}
	if got != nil {
		t.Errorf("Flatten(nil pointer) = %v, want nil", got)
	}
}

func TestFlattenRejectsScalars(t *testing.T) {
	if _, err := Flatten(42); err == nil {
		t.Error("expected error flattening an int")
	}
	if _, err := Flatten("text"); err == nil {
		t.Error("expected error flattening a string")
	}
}
