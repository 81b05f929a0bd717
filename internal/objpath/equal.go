package objpath

import "reflect"

// Same reports whether a and b are the same value: identical scalars, or
// the very same map, list or pointer. Structurally equal containers that
// are distinct instances are not the same.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	default:
		return comparableEqual(a, b)
	}
}

// comparableEqual uses == when the dynamic type allows it.
func comparableEqual(a, b any) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	defer func() { _ = recover() }()
	return a == b
}
