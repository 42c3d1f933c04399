// Package enumerator provides capability enumerators for the registry.
//
// Go cannot list the interfaces a type implements, so capability keys come
// from two sources instead:
//
//   - Declared: objects implementing ports.CapabilityDeclarer name their own keys.
//   - Interfaces: a fixed list of candidate interface types; an object is
//     keyed under every candidate its dynamic type implements.
//
// Chain combines enumerators. All enumerators are deterministic for a given
// dynamic type and safe for concurrent use.
package enumerator
