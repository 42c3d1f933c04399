package wasm

import (
	"sort"

	"github.com/reglet-dev/refbook/domain/entities"
	"github.com/reglet-dev/refbook/domain/ports"
	"github.com/tetratelabs/wazero/api"
)

const (
	// ModuleCapability is the capability every guest module instance is registered under.
	ModuleCapability = "wasm.module"

	// HostCapability is the capability every host module instance is registered under.
	HostCapability = "wasm.host"

	exportPrefix = "wasm.export:"
)

// ExportKey returns the capability key for modules exporting function name.
func ExportKey(name string) entities.Key {
	return entities.Capability(exportPrefix + name)
}

// Exports returns an enumerator yielding, for an api.Module, the
// ModuleCapability key followed by one ExportKey per exported function in
// name order. Other objects yield no keys, so it composes with
// enumerator.Chain.
func Exports() ports.CapabilityEnumerator {
	return ports.EnumeratorFunc(func(obj any) ([]entities.Key, error) {
		mod, ok := obj.(api.Module)
		if !ok || mod == nil {
			return nil, nil
		}
		return exportKeys(mod), nil
	})
}

func exportKeys(mod api.Module) []entities.Key {
	defs := mod.ExportedFunctionDefinitions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	keys := make([]entities.Key, 0, len(names)+1)
	keys = append(keys, entities.Capability(ModuleCapability))
	for _, name := range names {
		keys = append(keys, ExportKey(name))
	}
	return keys
}
