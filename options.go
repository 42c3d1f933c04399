package refbook

import (
	"reflect"

	"github.com/reglet-dev/refbook/domain/ports"
)

// CompositePolicy selects how fan-out operations (AddWithCapabilities,
// RemoveWithCapabilities and their capability-only variants) behave when
// some of their keys fail.
type CompositePolicy string

const (
	// CompositeBestEffort attempts every key independently. Keys that
	// succeeded stay applied when others fail.
	CompositeBestEffort CompositePolicy = "best-effort"

	// CompositeAtomic validates every key first and applies all of them or none.
	CompositeAtomic CompositePolicy = "atomic"
)

// bookConfig holds configuration for a Book.
type bookConfig struct {
	id         string
	sink       ports.DiagnosticSink
	enumerator ports.CapabilityEnumerator
	interfaces []reflect.Type
	policy     CompositePolicy
	capacity   int
}

func defaultBookConfig() bookConfig {
	return bookConfig{
		policy: CompositeBestEffort,
	}
}

// Option configures a Book instance.
type Option func(*bookConfig)

// WithSink sets the diagnostic sink failures are reported to.
// Default: failures are only returned, never reported.
func WithSink(sink ports.DiagnosticSink) Option {
	return func(c *bookConfig) {
		c.sink = sink
	}
}

// WithEnumerator replaces the capability enumerator.
// When set, WithInterfaces has no effect.
func WithEnumerator(e ports.CapabilityEnumerator) Option {
	return func(c *bookConfig) {
		c.enumerator = e
	}
}

// WithInterfaces adds candidate interface types to the default enumerator.
// An object registered with capabilities is also keyed under every
// candidate its dynamic type implements, in the order given here.
func WithInterfaces(types ...reflect.Type) Option {
	return func(c *bookConfig) {
		c.interfaces = append(c.interfaces, types...)
	}
}

// WithCompositePolicy sets the fan-out failure policy. Unknown values fall
// back to CompositeBestEffort.
func WithCompositePolicy(p CompositePolicy) Option {
	return func(c *bookConfig) {
		c.policy = p
	}
}

// WithInitialCapacity preallocates room for n keys.
func WithInitialCapacity(n int) Option {
	return func(c *bookConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithID sets the Book's identifier instead of a generated UUID.
func WithID(id string) Option {
	return func(c *bookConfig) {
		c.id = id
	}
}
