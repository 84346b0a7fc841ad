package dispatcher

import (
	"sort"
	"sync"

	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
)

// Priority orders handlers on a channel. Higher priorities run first.
type Priority int

// Standard handler priorities.
const (
	// PriorityEditor is used by the built-in rich-text handler.
	PriorityEditor   Priority = 0
	PriorityLow      Priority = 1
	PriorityNormal   Priority = 2
	PriorityHigh     Priority = 3
	PriorityCritical Priority = 4
)

type entry struct {
	id       uint64
	priority Priority
	handler  handler.Handler
}

// Registry holds the handlers of each command channel.
type Registry struct {
	mu       sync.RWMutex
	channels map[string][]entry // sorted by priority, ties in registration order
	nextID   uint64
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string][]entry),
	}
}

// Register adds a handler to a channel and returns a function that removes
// it again.
func (r *Registry) Register(channel string, p Priority, h handler.Handler) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	e := entry{id: r.nextID, priority: p, handler: h}

	entries := r.channels[channel]
	i := sort.Search(len(entries), func(i int) bool { return entries[i].priority < p })
	entries = append(entries, entry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = e
	r.channels[channel] = entries

	return func() { r.unregister(channel, e.id) }
}

func (r *Registry) unregister(channel string, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.channels[channel]
	for i, e := range entries {
		if e.id == id {
			entries = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
	if len(entries) == 0 {
		delete(r.channels, channel)
		return
	}
	r.channels[channel] = entries
}

// Handlers returns the handlers of a channel in dispatch order.
func (r *Registry) Handlers(channel string) []handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.channels[channel]
	result := make([]handler.Handler, len(entries))
	for i, e := range entries {
		result[i] = e.handler
	}
	return result
}

// Has returns true if a handler is registered for the channel.
func (r *Registry) Has(channel string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels[channel]) > 0
}

// Channels returns all channels with handlers, sorted.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of channels with handlers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}

// Clear removes all registered handlers.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels = make(map[string][]entry)
}
