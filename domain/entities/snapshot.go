package entities

import "time"

// Snapshot is a point-in-time inspection view of a registry.
// It is safe to serialize and holds no references to registered objects.
type Snapshot struct {
	// BookID identifies the registry the snapshot was taken from.
	BookID string `json:"book_id"`

	// TakenAt is when the snapshot was taken.
	TakenAt time.Time `json:"taken_at"`

	// Keys lists every key with a sequence, sorted by kind then name.
	Keys []KeyEntry `json:"keys"`
}

// KeyEntry describes the sequence registered under one key.
type KeyEntry struct {
	Key     string   `json:"key"`
	Kind    KeyKind  `json:"kind"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// Member describes one registered object, without exposing it.
type Member struct {
	// Index is the position in the key's sequence.
	Index int `json:"index"`

	// Type is the object's dynamic Go type.
	Type string `json:"type"`

	// Ref is a printable identity: an address for pointer-like values,
	// the formatted value otherwise.
	Ref string `json:"ref"`
}

// Len returns the total number of memberships across all keys.
func (s Snapshot) Len() int {
	n := 0
	for _, k := range s.Keys {
		n += len(k.Members)
	}
	return n
}

// Entry returns the entry for key, if present.
func (s Snapshot) Entry(key Key) (KeyEntry, bool) {
	for _, e := range s.Keys {
		if e.Kind == key.Kind && e.Name == key.Name {
			return e, true
		}
	}
	return KeyEntry{}, false
}
