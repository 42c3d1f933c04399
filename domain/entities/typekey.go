package entities

import (
	"fmt"
	"reflect"
)

// KeyForType returns the key for a Go type. Interface types yield
// KindInterface keys, every other type a KindType key. Names are fully
// qualified with the package path, so equally named types from different
// packages never share a key. A nil type yields the zero Key.
func KeyForType(t reflect.Type) Key {
	if t == nil {
		return Key{}
	}
	kind := KindType
	if t.Kind() == reflect.Interface {
		kind = KindInterface
	}
	return Key{Kind: kind, Name: QualifiedTypeName(t)}
}

// QualifiedTypeName renders t with full package paths, e.g.
// "*github.com/acme/app.Service" or "map[string]github.com/acme/app.Item".
func QualifiedTypeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + QualifiedTypeName(t.Elem())
	case reflect.Slice:
		return "[]" + QualifiedTypeName(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), QualifiedTypeName(t.Elem()))
	case reflect.Map:
		return "map[" + QualifiedTypeName(t.Key()) + "]" + QualifiedTypeName(t.Elem())
	case reflect.Chan:
		return t.ChanDir().String() + " " + QualifiedTypeName(t.Elem())
	default:
		return t.String()
	}
}
