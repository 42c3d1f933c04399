package ports

import "github.com/reglet-dev/refbook/domain/entities"

// CapabilityEnumerator derives the capability keys an object should be
// registered under, excluding its concrete type key.
// Results must be deterministic for a given dynamic type; their order is the
// order used when fanning out a registration.
type CapabilityEnumerator interface {
	Capabilities(obj any) ([]entities.Key, error)
}

// CapabilityDeclarer is implemented by objects that declare their own
// capability keys statically.
type CapabilityDeclarer interface {
	Capabilities() []entities.Key
}

// EnumeratorFunc adapts a function to CapabilityEnumerator.
type EnumeratorFunc func(obj any) ([]entities.Key, error)

// Capabilities calls f(obj).
func (f EnumeratorFunc) Capabilities(obj any) ([]entities.Key, error) { return f(obj) }
