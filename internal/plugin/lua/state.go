package lua

import (
	"context"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single entry into Lua: loading a script or
// calling one handler.
const DefaultTimeout = 2 * time.Second

// State is a sandboxed gopher-lua interpreter.
//
// gopher-lua's LState is not goroutine-safe. A State must be used from one
// goroutine at a time; calls made from Lua back into Go run on the caller's
// goroutine and may re-enter the State.
type State struct {
	L       *lua.LState
	timeout time.Duration
	depth   int
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the time limit for one entry into Lua. Zero disables
// the limit.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// NewState creates a state with only the base, table, string and math
// libraries and without the functions that load code from files or
// strings.
func NewState(opts ...StateOption) *State {
	s := &State{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	s.L = L
	return s
}

func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// DoString runs a chunk of Lua source.
func (s *State) DoString(code string) error {
	return s.enter(func() error {
		return s.L.DoString(code)
	})
}

// DoFile runs a Lua source file.
func (s *State) DoFile(path string) error {
	return s.enter(func() error {
		return s.L.DoFile(path)
	})
}

// Call calls fn with args and returns its first result, or nil when it
// returns nothing.
func (s *State) Call(fn *lua.LFunction, args ...lua.LValue) (lua.LValue, error) {
	var ret lua.LValue = lua.LNil
	err := s.enter(func() error {
		if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
			return err
		}
		ret = s.L.Get(-1)
		s.L.Pop(1)
		return nil
	})
	return ret, err
}

// enter runs fn with the time limit installed. Nested entries, made while
// a script calls back into Go, share the outermost limit.
func (s *State) enter(fn func() error) (err error) {
	if s.closed {
		return ErrStateClosed
	}
	if s.depth == 0 && s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		s.L.SetContext(ctx)
		defer func() {
			s.L.RemoveContext()
			cancel()
			if err != nil && ctx.Err() != nil {
				err = fmt.Errorf("%w: %v", ErrTimeout, err)
			}
		}()
	}
	s.depth++
	defer func() {
		s.depth--
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the interpreter. Later calls return ErrStateClosed.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}
