package objpath

import (
	"fmt"
	"reflect"
)

var mapType = reflect.TypeOf(map[string]any(nil))

// AsMap returns v as a map[string]any. A map of a named type over
// map[string]any is converted, still sharing its entries.
func AsMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || !rv.Type().ConvertibleTo(mapType) {
		return nil, false
	}
	return rv.Convert(mapType).Interface().(map[string]any), true
}

// Normalize rewrites decoded data in place so that every nested map is a
// plain map[string]any. Maps with non-string keys get their keys formatted
// with fmt.Sprint.
func Normalize(val any) any {
	if m, ok := AsMap(val); ok {
		return NormalizeMap(m)
	}

	switch v := val.(type) {
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, x := range v {
			m[fmt.Sprint(k)] = Normalize(x)
		}
		return m
	case []any:
		for i, x := range v {
			v[i] = Normalize(x)
		}
		return v
	default:
		return val
	}
}

// NormalizeMap is Normalize for a map. The map itself is updated and
// returned.
func NormalizeMap(m map[string]any) map[string]any {
	for k, x := range m {
		m[k] = Normalize(x)
	}
	return m
}
