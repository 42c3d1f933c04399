// Package schema generates JSON Schemas for the documents the registry
// reads and writes.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
	"github.com/reglet-dev/refbook/application/config"
	"github.com/reglet-dev/refbook/domain/entities"
)

// documents maps document names to a zero value of their Go type.
var documents = map[string]any{
	"config":   config.Config{},
	"snapshot": entities.Snapshot{},
}

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// Documents returns the names accepted by Generate, sorted.
func Documents() []string {
	names := make([]string, 0, len(documents))
	for name := range documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate returns the schema of the named document.
func Generate(name string) ([]byte, error) {
	v, ok := documents[name]
	if !ok {
		return nil, fmt.Errorf("unknown document %q (want one of %v)", name, Documents())
	}
	return GenerateSchema(v)
}
