package refbook

import (
	"reflect"

	"github.com/reglet-dev/refbook/domain/entities"
	rberrors "github.com/reglet-dev/refbook/domain/errors"
)

// KeyOf returns the key for type T. Interface types yield interface keys.
//
//	refbook.KeyOf[*Service]() // {type *example.com/app.Service}
//	refbook.KeyOf[Logger]()   // {interface example.com/app.Logger}
func KeyOf[T any]() entities.Key {
	return entities.KeyForType(reflect.TypeFor[T]())
}

// TypeKey returns the key for obj's dynamic type, or the zero Key for nil.
func TypeKey(obj any) entities.Key {
	if obj == nil {
		return entities.Key{}
	}
	return entities.KeyForType(reflect.TypeOf(obj))
}

// AddFor registers obj under KeyOf[T]. With an interface T this registers
// obj under that interface without going through the enumerator.
func AddFor[T any](b *Book, obj T) error {
	return b.AddAs(KeyOf[T](), obj)
}

// RemoveFor drops obj from KeyOf[T].
func RemoveFor[T any](b *Book, obj T) error {
	return b.RemoveAs(KeyOf[T](), obj)
}

// Get returns the object at index under KeyOf[T].
func Get[T any](b *Book, index int) (T, bool) {
	return GetAs[T](b, KeyOf[T](), index)
}

// GetAs returns the object at index under key, typed as T.
// A value that is not a T is reported as a TypeMismatchError and treated as absent.
func GetAs[T any](b *Book, key entities.Key, index int) (T, bool) {
	var zero T
	v, ok := b.TryGet(key, index)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		b.report(mismatch[T](key, v))
		return zero, false
	}
	return t, true
}

// GetAll returns every object under KeyOf[T], in registration order.
func GetAll[T any](b *Book) []T {
	return GetAllAs[T](b, KeyOf[T]())
}

// GetAllAs returns every object under key that is a T, in registration order.
// Values of other types are reported and skipped.
func GetAllAs[T any](b *Book, key entities.Key) []T {
	items := b.TryGetAll(key)
	out := make([]T, 0, len(items))
	for _, v := range items {
		t, ok := v.(T)
		if !ok {
			b.report(mismatch[T](key, v))
			continue
		}
		out = append(out, t)
	}
	return out
}

func mismatch[T any](key entities.Key, got any) error {
	gotType, _ := entities.Describe(got)
	return &rberrors.TypeMismatchError{
		Key:  key,
		Want: entities.QualifiedTypeName(reflect.TypeFor[T]()),
		Got:  gotType,
	}
}
