package entities

// KeyKind distinguishes how a Key was derived.
type KeyKind string

const (
	// KindType keys a concrete Go type (e.g. "*example.com/app.Service").
	KindType KeyKind = "type"
	// KindInterface keys a Go interface type an object satisfies.
	KindInterface KeyKind = "interface"
	// KindCapability keys an explicit, caller-declared capability name.
	KindCapability KeyKind = "capability"
)

// Valid reports whether k is one of the known kinds.
func (k KeyKind) Valid() bool {
	switch k {
	case KindType, KindInterface, KindCapability:
		return true
	default:
		return false
	}
}

// Key identifies one ordered sequence of registered objects.
// Keys are comparable and computed once, at registration time.
//
// Examples:
//
//	{Kind: "type",       Name: "*example.com/app.Service"}
//	{Kind: "interface",  Name: "example.com/app.Logger"}
//	{Kind: "capability", Name: "wasm.module"}
type Key struct {
	Kind KeyKind `json:"kind"`
	Name string  `json:"name"`
}

// IsZero reports whether the key is incomplete.
func (k Key) IsZero() bool { return k.Kind == "" || k.Name == "" }

// String returns a human-readable representation "kind:name".
func (k Key) String() string {
	switch {
	case k.Kind == "" && k.Name == "":
		return "<empty>"
	case k.Kind == "":
		return "<unknown>:" + k.Name
	case k.Name == "":
		return string(k.Kind) + ":<unknown>"
	default:
		return string(k.Kind) + ":" + k.Name
	}
}

// Less orders keys by kind, then name.
func (k Key) Less(other Key) bool {
	if k.Kind == other.Kind {
		return k.Name < other.Name
	}
	return k.Kind < other.Kind
}
