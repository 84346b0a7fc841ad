package keymap

import (
	"sort"
	"sync"

	"github.com/mrdivyansh/lexical/internal/input/key"
)

// Registry holds keymaps and resolves events against them.
type Registry struct {
	mu      sync.RWMutex
	keymaps []*ParsedKeymap
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register parses km and adds it, replacing a keymap with the same name.
func (r *Registry) Register(km *Keymap) error {
	pk, err := km.Parse()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisterLocked(km.Name)
	r.keymaps = append(r.keymaps, pk)
	// Stable so that later keymaps of equal priority stay behind earlier
	// ones.
	sort.SliceStable(r.keymaps, func(i, j int) bool {
		return r.keymaps[i].Priority > r.keymaps[j].Priority
	})
	return nil
}

// Unregister removes the named keymap.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisterLocked(name)
}

func (r *Registry) unregisterLocked(name string) {
	for i, pk := range r.keymaps {
		if pk.Name == name {
			r.keymaps = append(r.keymaps[:i], r.keymaps[i+1:]...)
			return
		}
	}
}

// Get returns the named keymap, or nil.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, pk := range r.keymaps {
		if pk.Name == name {
			return pk
		}
	}
	return nil
}

// Lookup returns the binding for ev from the highest-priority keymap that
// binds its chord, or nil.
func (r *Registry) Lookup(ev *key.Event) *ParsedBinding {
	if ev == nil {
		return nil
	}
	chord := ev.String()

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, pk := range r.keymaps {
		if pb := pk.Lookup(chord); pb != nil {
			return pb
		}
	}
	return nil
}

// Keymaps returns the registered keymaps in lookup order.
func (r *Registry) Keymaps() []*ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*ParsedKeymap(nil), r.keymaps...)
}

// Bindings returns the effective binding for every bound chord, sorted by
// chord.
func (r *Registry) Bindings() []*ParsedBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []*ParsedBinding
	for _, pk := range r.keymaps {
		for chord, pb := range pk.byChord {
			if !seen[chord] {
				seen[chord] = true
				out = append(out, pb)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Chord < out[j].Chord })
	return out
}
