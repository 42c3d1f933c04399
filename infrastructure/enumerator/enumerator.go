package enumerator

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/reglet-dev/refbook/domain/entities"
	"github.com/reglet-dev/refbook/domain/ports"
)

var errNilObject = errors.New("object is nil")

type declared struct{}

// Declared returns an enumerator that asks objects for their capabilities
// through ports.CapabilityDeclarer. Objects that do not declare yield no keys.
func Declared() ports.CapabilityEnumerator {
	return declared{}
}

func (declared) Capabilities(obj any) ([]entities.Key, error) {
	if obj == nil {
		return nil, errNilObject
	}
	d, ok := obj.(ports.CapabilityDeclarer)
	if !ok {
		return nil, nil
	}
	keys := d.Capabilities()
	seen := make(map[entities.Key]struct{}, len(keys))
	for i, k := range keys {
		if k.IsZero() {
			return nil, fmt.Errorf("declared capability %d is incomplete (%s)", i, k)
		}
		if !k.Kind.Valid() {
			return nil, fmt.Errorf("declared capability %d has unknown kind %q", i, k.Kind)
		}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("capability %s is declared twice", k)
		}
		seen[k] = struct{}{}
	}
	out := make([]entities.Key, len(keys))
	copy(out, keys)
	return out, nil
}

type interfaces struct {
	candidates []reflect.Type
}

// Interfaces returns an enumerator that keys an object under every candidate
// interface its dynamic type implements, in candidate order. A nil or
// non-interface candidate makes every enumeration fail.
func Interfaces(candidates ...reflect.Type) ports.CapabilityEnumerator {
	c := make([]reflect.Type, len(candidates))
	copy(c, candidates)
	return interfaces{candidates: c}
}

// Interface returns the reflect.Type of interface I, for use with Interfaces.
func Interface[I any]() reflect.Type {
	return reflect.TypeFor[I]()
}

func (e interfaces) Capabilities(obj any) ([]entities.Key, error) {
	if obj == nil {
		return nil, errNilObject
	}
	t := reflect.TypeOf(obj)
	var keys []entities.Key
	for i, c := range e.candidates {
		if c == nil {
			return nil, fmt.Errorf("candidate %d is nil", i)
		}
		if c.Kind() != reflect.Interface {
			return nil, fmt.Errorf("candidate %d (%s) is not an interface type", i, c)
		}
		if t.Implements(c) {
			keys = append(keys, entities.KeyForType(c))
		}
	}
	return keys, nil
}

type chain struct {
	enumerators []ports.CapabilityEnumerator
}

// Chain returns an enumerator that concatenates the keys of every given
// enumerator, dropping repeats. The first failure aborts the enumeration.
func Chain(enumerators ...ports.CapabilityEnumerator) ports.CapabilityEnumerator {
	es := make([]ports.CapabilityEnumerator, 0, len(enumerators))
	for _, e := range enumerators {
		if e != nil {
			es = append(es, e)
		}
	}
	return chain{enumerators: es}
}

func (c chain) Capabilities(obj any) ([]entities.Key, error) {
	var keys []entities.Key
	seen := make(map[entities.Key]struct{})
	for _, e := range c.enumerators {
		ks, err := e.Capabilities(obj)
		if err != nil {
			return nil, err
		}
		for _, k := range ks {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Static returns an enumerator that yields the same keys for every object.
func Static(keys ...entities.Key) ports.CapabilityEnumerator {
	ks := make([]entities.Key, len(keys))
	copy(ks, keys)
	return ports.EnumeratorFunc(func(obj any) ([]entities.Key, error) {
		if obj == nil {
			return nil, errNilObject
		}
		out := make([]entities.Key, len(ks))
		copy(out, ks)
		return out, nil
	})
}
