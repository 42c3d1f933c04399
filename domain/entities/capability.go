package entities

// Capability returns the key for an explicitly named capability.
// Capability names are free-form; dotted names ("wasm.export:run") are the convention.
func Capability(name string) Key {
	return Key{Kind: KindCapability, Name: name}
}

// TypeKey returns the key for a concrete type given its fully qualified name.
// Most callers should derive type keys with refbook.KeyOf or refbook.TypeKey instead.
func TypeKey(qualifiedName string) Key {
	return Key{Kind: KindType, Name: qualifiedName}
}

// InterfaceKey returns the key for an interface type given its fully qualified name.
func InterfaceKey(qualifiedName string) Key {
	return Key{Kind: KindInterface, Name: qualifiedName}
}
