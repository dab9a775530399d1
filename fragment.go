package oasgen

import (
	"encoding/json"
	"reflect"
)

// Fragment is an open OpenAPI schema document (or part of one). It carries no
// fixed shape of its own, so overrides can introduce arbitrary vocabulary
// without changes to the generator.
type Fragment map[string]any

// Merge deep-merges overrides onto base; for keys present more than once the
// later fragment wins. Object-valued keys merge recursively, everything else,
// arrays included, is replaced outright. No input is mutated; the result is
// freshly allocated at every level, so Merge(Merge(a, b), c) and
// Merge(a, b, c) agree.
func Merge(base Fragment, overrides ...Fragment) Fragment {
	out := cloneFragment(base)
	for _, o := range overrides {
		for k, v := range o {
			if bm, ok := asFragment(out[k]); ok {
				if om, ok := asFragment(v); ok {
					out[k] = Merge(bm, om)
					continue
				}
			}
			out[k] = cloneValue(v)
		}
	}
	return out
}

func asFragment(v any) (Fragment, bool) {
	switch t := v.(type) {
	case Fragment:
		return t, true
	case map[string]any:
		return Fragment(t), true
	}
	return nil, false
}

func cloneFragment(f Fragment) Fragment {
	out := make(Fragment, len(f))
	for k, v := range f {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Fragment:
		return cloneFragment(t)
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = cloneValue(t[i])
		}
		return arr
	case []Fragment:
		arr := make([]Fragment, len(t))
		for i := range t {
			arr[i] = cloneFragment(t[i])
		}
		return arr
	case []string:
		return append(make([]string, 0, len(t)), t...)
	default:
		return v
	}
}

// typeOf maps a runtime value onto the schema type vocabulary. All numeric
// widths report "number", matching the dynamic typeof semantics the literal,
// enum, and probe paths rely on. Values with no schema analog report "".
func typeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case json.Number:
		return "number"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return "number"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return ""
}
