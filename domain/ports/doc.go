// Package ports defines the collaborator interfaces of the registry.
// The registry core depends on these abstractions; the log and
// infrastructure packages provide implementations.
package ports
