package enumerator

import (
	"reflect"
	"testing"

	"github.com/reglet-dev/refbook/domain/entities"
	"github.com/reglet-dev/refbook/domain/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logger interface{ Log(string) }

type closer interface{ Close() error }

type service struct{}

func (*service) Log(string)   {}
func (*service) Close() error { return nil }

type declaring struct{ keys []entities.Key }

func (d *declaring) Capabilities() []entities.Key { return d.keys }

func TestDeclared(t *testing.T) {
	e := Declared()

	t.Run("declarer", func(t *testing.T) {
		obj := &declaring{keys: []entities.Key{entities.Capability("a"), entities.Capability("b")}}
		keys, err := e.Capabilities(obj)
		require.NoError(t, err)
		assert.Equal(t, []entities.Key{entities.Capability("a"), entities.Capability("b")}, keys)

		// result is a copy
		keys[0] = entities.Capability("changed")
		assert.Equal(t, entities.Capability("a"), obj.keys[0])
	})

	t.Run("non declarer yields nothing", func(t *testing.T) {
		keys, err := e.Capabilities(&service{})
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("incomplete key", func(t *testing.T) {
		_, err := e.Capabilities(&declaring{keys: []entities.Key{{Kind: entities.KindCapability}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incomplete")
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := e.Capabilities(&declaring{keys: []entities.Key{{Kind: "bogus", Name: "x"}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown kind")
	})

	t.Run("declared twice", func(t *testing.T) {
		_, err := e.Capabilities(&declaring{keys: []entities.Key{entities.Capability("a"), entities.Capability("a")}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "declared twice")
	})

	t.Run("nil object", func(t *testing.T) {
		_, err := e.Capabilities(nil)
		require.Error(t, err)
	})
}

func TestInterfaces(t *testing.T) {
	e := Interfaces(Interface[closer](), Interface[logger](), Interface[ports.CapabilityDeclarer]())

	keys, err := e.Capabilities(&service{})
	require.NoError(t, err)
	assert.Equal(t, []entities.Key{
		entities.KeyForType(reflect.TypeFor[closer]()),
		entities.KeyForType(reflect.TypeFor[logger]()),
	}, keys, "candidate order is preserved and non-implemented candidates are skipped")
	assert.Equal(t, entities.KindInterface, keys[0].Kind)

	// value receiver set of service does not include pointer methods
	keys, err = e.Capabilities(service{})
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestInterfaces_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		candidates []reflect.Type
		wantErr    string
	}{
		{name: "nil candidate", candidates: []reflect.Type{nil}, wantErr: "is nil"},
		{name: "struct candidate", candidates: []reflect.Type{reflect.TypeFor[service]()}, wantErr: "not an interface"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Interfaces(tt.candidates...).Capabilities(&service{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestChain(t *testing.T) {
	obj := &declaring{keys: []entities.Key{entities.Capability("a")}}
	e := Chain(
		Declared(),
		nil,
		Static(entities.Capability("a"), entities.Capability("b")),
		Interfaces(Interface[ports.CapabilityDeclarer]()),
	)

	keys, err := e.Capabilities(obj)
	require.NoError(t, err)
	assert.Equal(t, []entities.Key{
		entities.Capability("a"),
		entities.Capability("b"),
		entities.KeyForType(reflect.TypeFor[ports.CapabilityDeclarer]()),
	}, keys)
}

func TestChain_FirstFailureAborts(t *testing.T) {
	called := false
	e := Chain(
		Interfaces(nil),
		ports.EnumeratorFunc(func(any) ([]entities.Key, error) {
			called = true
			return nil, nil
		}),
	)

	_, err := e.Capabilities(&service{})
	require.Error(t, err)
	assert.False(t, called)
}
