package tree

import (
	"sort"
	"sync"
)

// Registry is the set of node kinds that may appear in a document.
// Root, paragraph, text and line break are always registered.
type Registry struct {
	mu    sync.RWMutex
	kinds map[Kind]bool
}

// NewRegistry creates a registry holding the core kinds plus kinds.
func NewRegistry(kinds ...Kind) *Registry {
	r := &Registry{kinds: make(map[Kind]bool)}
	r.Register(KindRoot, KindParagraph, KindText, KindLineBreak)
	r.Register(kinds...)
	return r
}

// Register adds kinds to the registry.
func (r *Registry) Register(kinds ...Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range kinds {
		r.kinds[k] = true
	}
}

// Has reports whether k is registered.
func (r *Registry) Has(k Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.kinds[k]
}

// Kinds returns the registered kinds in declaration order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.kinds))
	for k := range r.kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
