package hook

import (
	"sort"
	"sync"

	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
)

// Manager manages dispatch hooks with priority-based ordering.
type Manager struct {
	mu        sync.RWMutex
	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// NewManager creates a new hook manager.
func NewManager() *Manager {
	return &Manager{}
}

// RegisterPre adds a pre-dispatch hook, replacing one with the same name.
func (m *Manager) RegisterPre(h PreDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preHooks = replaceOrAppend(m.preHooks, h)
	sort.SliceStable(m.preHooks, func(i, j int) bool {
		return m.preHooks[i].Priority() > m.preHooks[j].Priority()
	})
}

// RegisterPost adds a post-dispatch hook, replacing one with the same name.
func (m *Manager) RegisterPost(h PostDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postHooks = replaceOrAppend(m.postHooks, h)
	sort.SliceStable(m.postHooks, func(i, j int) bool {
		return m.postHooks[i].Priority() < m.postHooks[j].Priority()
	})
}

func replaceOrAppend[H Hook](hooks []H, h H) []H {
	for i, existing := range hooks {
		if existing.Name() == h.Name() {
			hooks[i] = h
			return hooks
		}
	}
	return append(hooks, h)
}

// Register adds h to the pre and post lists it implements.
func (m *Manager) Register(h Hook) {
	if pre, ok := h.(PreDispatchHook); ok {
		m.RegisterPre(pre)
	}
	if post, ok := h.(PostDispatchHook); ok {
		m.RegisterPost(post)
	}
}

// Unregister removes a hook by name from both lists.
func (m *Manager) Unregister(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := false
	for i, h := range m.preHooks {
		if h.Name() == name {
			m.preHooks = append(m.preHooks[:i], m.preHooks[i+1:]...)
			removed = true
			break
		}
	}
	for i, h := range m.postHooks {
		if h.Name() == name {
			m.postHooks = append(m.postHooks[:i], m.postHooks[i+1:]...)
			removed = true
			break
		}
	}
	return removed
}

// RunPreDispatch runs the pre-dispatch hooks in priority order.
// It returns false as soon as one cancels the command.
func (m *Manager) RunPreDispatch(cmd *command.Command, ctx *execctx.Context) bool {
	m.mu.RLock()
	hooks := append([]PreDispatchHook(nil), m.preHooks...)
	m.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(cmd, ctx) {
			if ctx != nil && ctx.Logger != nil {
				ctx.Logger.Debug("dispatch cancelled", "hook", h.Name(), "command", cmd.Channel())
			}
			return false
		}
	}
	return true
}

// RunPostDispatch runs the post-dispatch hooks from lowest to highest
// priority.
func (m *Manager) RunPostDispatch(cmd *command.Command, ctx *execctx.Context, result *handler.Result) {
	m.mu.RLock()
	hooks := append([]PostDispatchHook(nil), m.postHooks...)
	m.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(cmd, ctx, result)
	}
}

// Names returns the pre-hook and post-hook names in run order.
func (m *Manager) Names() (pre, post []string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, h := range m.preHooks {
		pre = append(pre, h.Name())
	}
	for _, h := range m.postHooks {
		post = append(post, h.Name())
	}
	return pre, post
}

// Clear removes all hooks.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preHooks = nil
	m.postHooks = nil
}
