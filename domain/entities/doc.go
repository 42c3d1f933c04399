// Package entities provides the core value types of the registry.
// Keys identify sequences of registered objects; snapshots are the
// serializable inspection view of a registry's contents.
package entities
