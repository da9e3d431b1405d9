package state

import "reflect"

// identical reports whether a and b are the same value without looking
// inside them. It never panics on uncomparable dynamic types.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}

	switch va.Kind() {
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.UnsafePointer() == vb.UnsafePointer() && va.Len() == vb.Len()
	case reflect.Func:
		// Go has no function identity; only two nil funcs are the same.
		return va.IsNil() && vb.IsNil()
	default:
		// Composite values holding maps, slices or funcs.
		return false
	}
}
