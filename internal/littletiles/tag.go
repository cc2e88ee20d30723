package littletiles

import (
	"fmt"
	"reflect"
)

// Tag tree accessors. Scalars and arrays are matched strictly: a wrong
// tag kind is a format error, never coerced. Lists are normalized
// through reflection because dynamic NBT decoders differ in whether a
// list surfaces as []any or as a concrete slice type.

func tagInt(m map[string]any, field string) (int32, error) {
	v, ok := m[field]
	if !ok {
		return 0, fmt.Errorf("missing int field %q: %w", field, ErrInvalidFormat)
	}
	n, ok := v.(int32)
	if !ok {
		return 0, fmt.Errorf("field %q: %T is not an int tag: %w", field, v, ErrInvalidFormat)
	}
	return n, nil
}

func tagIntArray(m map[string]any, field string) ([]int32, error) {
	v, ok := m[field]
	if !ok {
		return nil, fmt.Errorf("missing int array field %q: %w", field, ErrInvalidFormat)
	}
	arr, ok := v.([]int32)
	if !ok {
		return nil, fmt.Errorf("field %q: %T is not an int array tag: %w", field, v, ErrInvalidFormat)
	}
	return arr, nil
}

// tagCompoundOpt returns the compound under field, or nil when the
// field is absent.
func tagCompoundOpt(m map[string]any, field string) (map[string]any, error) {
	v, ok := m[field]
	if !ok {
		return nil, nil
	}
	c, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field %q: %T is not a compound tag: %w", field, v, ErrInvalidFormat)
	}
	return c, nil
}

// asList normalizes a list tag to []any. Typed array tags ([]int32 and
// friends) are not lists and are rejected.
func asList(v any) ([]any, bool) {
	switch v.(type) {
	case []any:
		return v.([]any), true
	case []int32, []int64, []int8, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asIntArray matches an int array list element.
func asIntArray(v any) ([]int32, bool) {
	arr, ok := v.([]int32)
	return arr, ok
}
