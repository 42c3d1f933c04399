// Package refbook provides a type-indexed object registry.
//
// Components register instances of themselves, or any capability they
// implement, in a Book; decoupled parts of the process look them up later
// by type or capability key without a compile-time reference to the
// producer. A Book is a non-owning index: it never constructs, copies or
// closes registered objects and keeps them reachable until they are removed.
//
// Each key maps to an insertion-ordered sequence. An object appears at most
// once per key, but may appear under many keys at once: under its concrete
// type and under every capability the configured CapabilityEnumerator
// derives for it.
//
// Typical usage:
//
//	book := refbook.New(refbook.WithInterfaces(reflect.TypeFor[Logger]()))
//	_ = book.AddWithCapabilities(svc)
//	logger, ok := refbook.Get[Logger](book, 0)
//
// Failures are returned as errors from the domain/errors taxonomy and
// reported to the configured ports.DiagnosticSink. Absence on lookup is not
// a failure. A Book is safe for concurrent use.
package refbook
