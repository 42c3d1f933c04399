package ports

import "github.com/reglet-dev/refbook/domain/entities"

// Registry is a type-indexed store of object references.
// *refbook.Book implements it; components that only need lookups or
// registration should accept this interface instead of the concrete type.
type Registry interface {
	// Add registers obj under its concrete type key.
	Add(obj any) error

	// AddAs registers obj under an explicit key.
	AddAs(key entities.Key, obj any) error

	// AddWithCapabilities registers obj under every capability key and its concrete type key.
	AddWithCapabilities(obj any) error

	// AddCapabilitiesOnly registers obj under every capability key only.
	AddCapabilitiesOnly(obj any) error

	// TryGet returns the object at index in key's sequence.
	TryGet(key entities.Key, index int) (any, bool)

	// TryGetAll returns a copy of key's sequence.
	TryGetAll(key entities.Key) []any

	// Remove drops obj from its concrete type key.
	Remove(obj any) error

	// RemoveAs drops obj from an explicit key.
	RemoveAs(key entities.Key, obj any) error

	// RemoveWithCapabilities drops obj from every capability key and its concrete type key.
	RemoveWithCapabilities(obj any) error

	// RemoveCapabilitiesOnly drops obj from every capability key only.
	RemoveCapabilitiesOnly(obj any) error

	// RemoveAt drops the object at index in key's sequence.
	RemoveAt(key entities.Key, index int) error
}
