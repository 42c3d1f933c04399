package entities

import (
	"fmt"
	"reflect"
)

// Describe returns the dynamic type name of obj and a printable identity for it.
// Pointer-like values (pointers, maps, slices, funcs, chans) are identified by
// address; other values by their formatted value.
func Describe(obj any) (typeName, ref string) {
	if obj == nil {
		return "<nil>", "<nil>"
	}
	v := reflect.ValueOf(obj)
	typeName = v.Type().String()
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return typeName, fmt.Sprintf("%#x", v.Pointer())
	default:
		return typeName, fmt.Sprintf("%v", obj)
	}
}

// DescribeString renders Describe as "type(ref)".
func DescribeString(obj any) string {
	t, r := Describe(obj)
	return t + "(" + r + ")"
}
