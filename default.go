package refbook

import "sync"

var (
	defaultBook *Book
	defaultOnce sync.Once
)

// Default returns the process-wide Book, creating an empty one on first use.
// It is never disposed. Prefer passing an explicit *Book to components; the
// default exists for code that has no other way to reach a shared registry.
func Default() *Book {
	defaultOnce.Do(func() {
		defaultBook = New()
	})
	return defaultBook
}

// InitDefault installs b as the process-wide Book. It only takes effect when
// called before the first Default call and reports whether it did.
func InitDefault(b *Book) bool {
	if b == nil {
		return false
	}
	installed := false
	defaultOnce.Do(func() {
		defaultBook = b
		installed = true
	})
	return installed
}
