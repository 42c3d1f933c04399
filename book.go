package refbook

import (
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reglet-dev/refbook/domain/entities"
	rberrors "github.com/reglet-dev/refbook/domain/errors"
	"github.com/reglet-dev/refbook/domain/ports"
	"github.com/reglet-dev/refbook/infrastructure/enumerator"
)

var _ ports.Registry = (*Book)(nil)

// Book is a type-indexed registry of object references.
// It is safe for concurrent use.
type Book struct {
	id         string
	sink       ports.DiagnosticSink
	enumerator ports.CapabilityEnumerator
	policy     CompositePolicy

	mu   sync.RWMutex
	refs map[entities.Key][]any
}

// New creates an empty Book with the provided options.
func New(opts ...Option) *Book {
	cfg := defaultBookConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	if cfg.enumerator == nil {
		cfg.enumerator = enumerator.Chain(enumerator.Declared(), enumerator.Interfaces(cfg.interfaces...))
	}
	if cfg.policy != CompositeAtomic {
		cfg.policy = CompositeBestEffort
	}
	return &Book{
		id:         cfg.id,
		sink:       cfg.sink,
		enumerator: cfg.enumerator,
		policy:     cfg.policy,
		refs:       make(map[entities.Key][]any, cfg.capacity),
	}
}

// ID returns the Book's identifier.
func (b *Book) ID() string { return b.id }

// Policy returns the fan-out failure policy in effect.
func (b *Book) Policy() CompositePolicy { return b.policy }

// Add registers obj under its concrete type key.
func (b *Book) Add(obj any) error {
	return b.AddAs(TypeKey(obj), obj)
}

// AddAs registers obj under key. It fails with a DuplicateRegistrationError,
// leaving the sequence unchanged, if obj is already registered under key.
func (b *Book) AddAs(key entities.Key, obj any) error {
	if err := checkArgs("add", key, obj); err != nil {
		return b.fail(err)
	}

	b.mu.Lock()
	err := b.addLocked(key, obj)
	b.mu.Unlock()

	if err != nil {
		return b.fail(err)
	}
	return nil
}

// AddWithCapabilities registers obj under every capability key the
// enumerator derives for it, then under its concrete type key.
func (b *Book) AddWithCapabilities(obj any) error {
	return b.fanOut("add_with_capabilities", obj, true, true)
}

// AddCapabilitiesOnly registers obj under every capability key the
// enumerator derives for it, never under its concrete type key.
func (b *Book) AddCapabilitiesOnly(obj any) error {
	return b.fanOut("add_capabilities_only", obj, false, true)
}

// TryGet returns the object at index in key's sequence. Absent keys and
// out-of-range indexes (including negative ones) report false.
func (b *Book) TryGet(key entities.Key, index int) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	seq := b.refs[key]
	if index < 0 || index >= len(seq) {
		return nil, false
	}
	return seq[index], true
}

// TryGetAll returns a copy of key's sequence, or an empty slice when the key
// is absent. Modifying the result does not affect the Book.
func (b *Book) TryGetAll(key entities.Key) []any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	seq := b.refs[key]
	out := make([]any, len(seq))
	copy(out, seq)
	return out
}

// Len returns the length of key's sequence.
func (b *Book) Len(key entities.Key) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.refs[key])
}

// Contains reports whether obj is registered under key.
func (b *Book) Contains(key entities.Key, obj any) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return indexOf(b.refs[key], obj) >= 0
}

// Keys returns every key with at least one registered object, sorted.
func (b *Book) Keys() []entities.Key {
	b.mu.RLock()
	keys := make([]entities.Key, 0, len(b.refs))
	for k, seq := range b.refs {
		if len(seq) > 0 {
			keys = append(keys, k)
		}
	}
	b.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Remove drops obj from its concrete type key.
func (b *Book) Remove(obj any) error {
	return b.RemoveAs(TypeKey(obj), obj)
}

// RemoveAs drops the first occurrence of obj from key's sequence.
func (b *Book) RemoveAs(key entities.Key, obj any) error {
	if err := checkArgs("remove", key, obj); err != nil {
		return b.fail(err)
	}

	b.mu.Lock()
	err := b.removeLocked(key, obj)
	b.mu.Unlock()

	if err != nil {
		return b.fail(err)
	}
	return nil
}

// RemoveWithCapabilities drops obj from every capability key the enumerator
// derives for it and from its concrete type key.
func (b *Book) RemoveWithCapabilities(obj any) error {
	return b.fanOut("remove_with_capabilities", obj, true, false)
}

// RemoveCapabilitiesOnly drops obj from every capability key the enumerator
// derives for it, leaving its concrete type registration in place.
func (b *Book) RemoveCapabilitiesOnly(obj any) error {
	return b.fanOut("remove_capabilities_only", obj, false, false)
}

// RemoveAt drops the object at index in key's sequence.
func (b *Book) RemoveAt(key entities.Key, index int) error {
	if key.IsZero() {
		return b.fail(&rberrors.InvalidArgumentError{Op: "remove_at", Reason: "key is incomplete"})
	}

	b.mu.Lock()
	err := b.removeAtLocked(key, index)
	b.mu.Unlock()

	if err != nil {
		return b.fail(err)
	}
	return nil
}

// Prune deletes keys whose sequences became empty after removals and
// returns how many were deleted.
func (b *Book) Prune() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for k, seq := range b.refs {
		if len(seq) == 0 {
			delete(b.refs, k)
			n++
		}
	}
	return n
}

// Snapshot returns an inspection view of every key, including keys whose
// sequences are empty. It holds no references to registered objects.
func (b *Book) Snapshot() entities.Snapshot {
	b.mu.RLock()
	entries := make([]entities.KeyEntry, 0, len(b.refs))
	for k, seq := range b.refs {
		members := make([]entities.Member, len(seq))
		for i, obj := range seq {
			typeName, ref := entities.Describe(obj)
			members[i] = entities.Member{Index: i, Type: typeName, Ref: ref}
		}
		entries = append(entries, entities.KeyEntry{
			Key:     k.String(),
			Kind:    k.Kind,
			Name:    k.Name,
			Members: members,
		})
	}
	b.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		ki := entities.Key{Kind: entries[i].Kind, Name: entries[i].Name}
		kj := entities.Key{Kind: entries[j].Kind, Name: entries[j].Name}
		return ki.Less(kj)
	})
	return entities.Snapshot{BookID: b.id, TakenAt: time.Now().UTC(), Keys: entries}
}

func (b *Book) addLocked(key entities.Key, obj any) error {
	seq := b.refs[key]
	if indexOf(seq, obj) >= 0 {
		return &rberrors.DuplicateRegistrationError{Object: obj, Key: key}
	}
	b.refs[key] = append(seq, obj)
	return nil
}

func (b *Book) removeLocked(key entities.Key, obj any) error {
	seq, ok := b.refs[key]
	if !ok {
		return &rberrors.KeyNotFoundError{Key: key}
	}
	i := indexOf(seq, obj)
	if i < 0 {
		return &rberrors.ObjectNotFoundError{Object: obj, Key: key}
	}
	b.refs[key] = slices.Delete(seq, i, i+1)
	return nil
}

func (b *Book) removeAtLocked(key entities.Key, index int) error {
	seq, ok := b.refs[key]
	if !ok {
		return &rberrors.KeyNotFoundError{Key: key}
	}
	if index < 0 || index >= len(seq) {
		return &rberrors.IndexOutOfRangeError{Key: key, Index: index, Len: len(seq)}
	}
	b.refs[key] = slices.Delete(seq, index, index+1)
	return nil
}

// checkLocked reports what apply would fail with, without mutating.
func (b *Book) checkLocked(key entities.Key, obj any, adding bool) error {
	seq, ok := b.refs[key]
	if adding {
		if indexOf(seq, obj) >= 0 {
			return &rberrors.DuplicateRegistrationError{Object: obj, Key: key}
		}
		return nil
	}
	if !ok {
		return &rberrors.KeyNotFoundError{Key: key}
	}
	if indexOf(seq, obj) < 0 {
		return &rberrors.ObjectNotFoundError{Object: obj, Key: key}
	}
	return nil
}

// fanOut adds or removes obj across every target key under the Book's
// composite policy.
func (b *Book) fanOut(op string, obj any, withConcrete, adding bool) error {
	keys, err := b.targetKeys(op, obj, withConcrete)
	if err != nil {
		return b.fail(err)
	}

	apply := b.removeLocked
	if adding {
		apply = b.addLocked
	}

	var errs []error
	if b.policy == CompositeAtomic {
		b.mu.Lock()
		for _, k := range keys {
			if err := b.checkLocked(k, obj, adding); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) == 0 {
			for _, k := range keys {
				// Validated above under the same lock; apply cannot fail.
				_ = apply(k, obj)
			}
		}
		b.mu.Unlock()
	} else {
		for _, k := range keys {
			b.mu.Lock()
			err := apply(k, obj)
			b.mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, err := range errs {
		b.report(err)
	}
	return errors.Join(errs...)
}

// targetKeys enumerates the capability keys of obj, de-duplicated, with the
// concrete type key appended last when requested.
func (b *Book) targetKeys(op string, obj any, withConcrete bool) ([]entities.Key, error) {
	if obj == nil {
		return nil, &rberrors.InvalidArgumentError{Op: op, Reason: "object is nil"}
	}

	caps, err := b.enumerator.Capabilities(obj)
	if err != nil {
		var enumErr *rberrors.EnumerationError
		if errors.As(err, &enumErr) {
			return nil, err
		}
		return nil, &rberrors.EnumerationError{Object: obj, Err: err}
	}

	concrete := TypeKey(obj)
	keys := make([]entities.Key, 0, len(caps)+1)
	seen := make(map[entities.Key]struct{}, len(caps)+1)
	for _, k := range caps {
		if k.IsZero() {
			return nil, &rberrors.EnumerationError{Object: obj, Err: errors.New("enumerator returned an incomplete key")}
		}
		if _, dup := seen[k]; dup || k == concrete {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if withConcrete {
		keys = append(keys, concrete)
	}
	return keys, nil
}

// fail reports err and returns it.
func (b *Book) fail(err error) error {
	b.report(err)
	return err
}

// report hands err to the sink. It is never called with b.mu held, so a
// sink may call back into the Book.
func (b *Book) report(err error) {
	if b.sink == nil || err == nil {
		return
	}
	defer func() { _ = recover() }()
	b.sink.Report(err)
}

func checkArgs(op string, key entities.Key, obj any) error {
	if obj == nil {
		return &rberrors.InvalidArgumentError{Op: op, Reason: "object is nil"}
	}
	if key.IsZero() {
		return &rberrors.InvalidArgumentError{Op: op, Reason: "key is incomplete"}
	}
	return nil
}
