// Package keyword holds the SQL vocabulary the highlighter scans against:
// a fixed base set plus at most one overlay reported by the currently
// attached database connection.
package keyword

import (
	"strings"
	"sync"
	"sync/atomic"
)

// DefaultQuote is the identifier quote character used while no
// connection overlay is bound.
const DefaultQuote = '"'

// Snapshot is an immutable view of the effective vocabulary. The lexer
// works against one snapshot for the whole of a highlight call, so a
// concurrent bind or unbind is never observed half-applied.
type Snapshot struct {
	words  map[string]struct{}
	quote  byte
	handle string
}

// Contains reports whether word is in the effective keyword set.
// The test is case-insensitive.
func (s *Snapshot) Contains(word string) bool {
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Quote returns the effective identifier quote character.
func (s *Snapshot) Quote() byte {
	return s.quote
}

// Handle returns the connection handle the snapshot is bound to, or ""
// for the unbound base vocabulary.
func (s *Snapshot) Handle() string {
	return s.handle
}

// Registry is the process-wide keyword registry. Reads are lock-free
// snapshot loads; writers replace the whole snapshot in one store.
type Registry struct {
	mu        sync.Mutex // serializes Bind/Unbind
	base      map[string]struct{}
	effective atomic.Pointer[Snapshot]
}

// NewRegistry creates a registry with the base SQL vocabulary.
func NewRegistry() *Registry {
	r := &Registry{base: baseKeywordSet()}
	r.effective.Store(&Snapshot{words: r.base, quote: DefaultQuote})
	return r
}

// Snapshot returns the current effective vocabulary.
func (r *Registry) Snapshot() *Snapshot {
	return r.effective.Load()
}

// Bind installs a connection overlay: the effective set becomes the base
// vocabulary plus words, and quote becomes the identifier quote. Any
// previously bound overlay is replaced unconditionally.
func (r *Registry) Bind(handle string, words []string, quote byte) {
	merged := make(map[string]struct{}, len(r.base)+len(words))
	for w := range r.base {
		merged[w] = struct{}{}
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			merged[w] = struct{}{}
		}
	}
	if quote == 0 {
		quote = DefaultQuote
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.effective.Store(&Snapshot{words: merged, quote: quote, handle: handle})
}

// Unbind removes the overlay if it is bound for handle and restores the
// base vocabulary and default quote. Unbinding a stale or unknown handle
// is a no-op, not an error.
func (r *Registry) Unbind(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.effective.Load()
	if cur.handle != handle || handle == "" {
		return
	}
	r.effective.Store(&Snapshot{words: r.base, quote: DefaultQuote})
}
