package lua

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/mrdivyansh/lexical/internal/dispatcher"
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
	"github.com/mrdivyansh/lexical/internal/engine"
	"github.com/mrdivyansh/lexical/internal/engine/selection"
	"github.com/mrdivyansh/lexical/internal/engine/tree"
	"github.com/mrdivyansh/lexical/internal/logging"
)

// Plugin is one script bound to a dispatcher. The script sees a global
// table named editor:
//
//	editor.register_command(name, priority, fn)
//	editor.dispatch(name [, payload])  -> handled
//	editor.insert_text(s)              -> inserted
//	editor.text()                      -> document text
//	editor.selected_text()             -> selected text
//
// Handlers receive the command payload and return true when they handled
// it. Calls made from inside a handler act on the running update.
type Plugin struct {
	name   string
	d      *dispatcher.Dispatcher
	state  *State
	logger *logging.Logger

	ctx        *execctx.Context
	commands   []string
	unregister []func()
}

// Option configures a Plugin.
type Option func(*pluginOptions)

type pluginOptions struct {
	logger *logging.Logger
	state  []StateOption
}

// WithLogger sets the logger that receives script print output and
// handler failures.
func WithLogger(l *logging.Logger) Option {
	return func(o *pluginOptions) {
		o.logger = l
	}
}

// WithStateOptions passes options to the plugin's interpreter.
func WithStateOptions(opts ...StateOption) Option {
	return func(o *pluginOptions) {
		o.state = append(o.state, opts...)
	}
}

// New creates a plugin with an empty interpreter. Nothing runs until
// LoadString or LoadFile.
func New(name string, d *dispatcher.Dispatcher, opts ...Option) *Plugin {
	o := pluginOptions{logger: logging.Null}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Null
	}
	p := &Plugin{
		name:   name,
		d:      d,
		state:  NewState(o.state...),
		logger: o.logger.WithComponent("plugin").WithField("plugin", name),
	}
	p.install()
	return p
}

// Name returns the plugin name.
func (p *Plugin) Name() string { return p.name }

// Commands returns the channels the script registered handlers for, in
// registration order.
func (p *Plugin) Commands() []string {
	return append([]string(nil), p.commands...)
}

// LoadString runs script source.
func (p *Plugin) LoadString(code string) error {
	if err := p.state.DoString(code); err != nil {
		return fmt.Errorf("plugin %s: %w", p.name, err)
	}
	return nil
}

// LoadFile runs a script file.
func (p *Plugin) LoadFile(path string) error {
	if err := p.state.DoFile(path); err != nil {
		return fmt.Errorf("plugin %s: %w", p.name, err)
	}
	return nil
}

// Close unregisters every handler the script installed and releases the
// interpreter.
func (p *Plugin) Close() {
	for i := len(p.unregister) - 1; i >= 0; i-- {
		p.unregister[i]()
	}
	p.unregister = nil
	p.commands = nil
	p.state.Close()
}

func (p *Plugin) install() {
	L := p.state.L
	api := L.NewTable()
	L.SetFuncs(api, map[string]lua.LGFunction{
		"register_command": p.luaRegisterCommand,
		"dispatch":         p.luaDispatch,
		"insert_text":      p.luaInsertText,
		"text":             p.luaText,
		"selected_text":    p.luaSelectedText,
	})
	L.SetGlobal("editor", api)
	L.SetGlobal("print", L.NewFunction(p.luaPrint))
}

func (p *Plugin) luaRegisterCommand(L *lua.LState) int {
	name := L.CheckString(1)
	priority := L.CheckInt(2)
	fn := L.CheckFunction(3)

	p.unregister = append(p.unregister,
		p.d.RegisterChannel(name, dispatcher.Priority(priority), handler.HandlerFunc(p.handler(name, fn))))
	p.commands = append(p.commands, name)
	p.logger.Debug("registered command", "command", name, "priority", priority)
	return 0
}

func (p *Plugin) handler(name string, fn *lua.LFunction) handler.HandlerFunc {
	return func(cmd command.Command, ctx *execctx.Context) handler.Result {
		prev := p.ctx
		p.ctx = ctx
		defer func() { p.ctx = prev }()

		ret, err := p.state.Call(fn, ToLua(p.state.L, cmd.Payload))
		if err != nil {
			p.logger.Warn("handler failed", "command", name, "error", err)
			return handler.Error(fmt.Errorf("plugin %s: %s: %w", p.name, name, err))
		}
		return handler.FromBool(lua.LVAsBool(ret))
	}
}

func (p *Plugin) luaDispatch(L *lua.LState) int {
	cmd, err := CommandFromLua(L.CheckString(1), L.Get(2))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	var handled bool
	if p.ctx != nil {
		handled, err = p.ctx.Dispatch(cmd)
	} else {
		handled, err = p.d.Dispatch(cmd)
	}
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LBool(handled))
	return 1
}

func (p *Plugin) luaInsertText(L *lua.LState) int {
	text := L.CheckString(1)
	var inserted bool
	err := p.mutate(func(s *tree.State) {
		inserted = selection.InsertText(s, text)
	})
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LBool(inserted))
	return 1
}

func (p *Plugin) luaText(L *lua.LState) int {
	L.Push(lua.LString(p.read().TextContent()))
	return 1
}

func (p *Plugin) luaSelectedText(L *lua.LState) int {
	L.Push(lua.LString(selection.TextContent(p.read())))
	return 1
}

func (p *Plugin) luaPrint(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	p.logger.Info(strings.Join(parts, "\t"))
	return 0
}

// read returns the running update's draft inside a handler and the
// committed snapshot otherwise.
func (p *Plugin) read() *tree.State {
	if p.ctx != nil {
		return p.ctx.State()
	}
	return p.d.Editor().State()
}

func (p *Plugin) mutate(fn func(*tree.State)) error {
	if p.ctx != nil {
		fn(p.ctx.State())
		return nil
	}
	return p.d.Editor().Update(func(tx *engine.Tx) error {
		fn(tx.State())
		return nil
	}, engine.WithTag("plugin:"+p.name))
}
