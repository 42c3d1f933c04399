package refbook

import "reflect"

// indexOf returns the position of obj in seq, or -1.
func indexOf(seq []any, obj any) int {
	for i, v := range seq {
		if sameRef(v, obj) {
			return i
		}
	}
	return -1
}

// sameRef reports whether a and b denote the same registered object.
// Pointer-like values compare by address; comparable values by ==; other
// values (structs holding slices or maps, for instance) by deep equality.
// It never panics.
func sameRef(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if va.Type().Comparable() {
		// Comparable structs and arrays may still hold interface fields with
		// non-comparable dynamic values, which makes == panic.
		defer func() {
			if recover() != nil {
				same = reflect.DeepEqual(a, b)
			}
		}()
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
