package hook_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
	"github.com/mrdivyansh/lexical/internal/dispatcher/hook"
)

var errValidationFailed = errors.New("validation failed")

type recordingLogger struct {
	entries []string
}

func (l *recordingLogger) log(level, msg string, kv ...interface{}) {
	l.entries = append(l.entries, fmt.Sprint(level, " ", msg, kv))
}

func (l *recordingLogger) Debug(msg string, kv ...interface{}) { l.log("DEBUG", msg, kv...) }
func (l *recordingLogger) Info(msg string, kv ...interface{})  { l.log("INFO", msg, kv...) }
func (l *recordingLogger) Error(msg string, kv ...interface{}) { l.log("ERROR", msg, kv...) }

func newCtx() *execctx.Context {
	return execctx.New(nil, 0, nil)
}

func TestManagerPriorityOrdering(t *testing.T) {
	m := hook.NewManager()
	var order []string
	pre := func(name string, prio int) {
		m.RegisterPre(hook.NewPreDispatchFunc(name, prio, func(*command.Command, *execctx.Context) bool {
			order = append(order, name)
			return true
		}))
	}
	pre("low", 10)
	pre("high", 100)
	pre("mid", 50)
	pre("mid-later", 50)

	cmd := command.New(command.SelectAll, nil)
	if !m.RunPreDispatch(&cmd, newCtx()) {
		t.Fatal("RunPreDispatch() = false")
	}
	want := []string{"high", "mid", "mid-later", "low"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestManagerPostHookOrdering(t *testing.T) {
	m := hook.NewManager()
	var order []string
	for _, p := range []struct {
		name string
		prio int
	}{{"high", 100}, {"low", 10}} {
		name := p.name
		m.RegisterPost(hook.NewPostDispatchFunc(name, p.prio, func(*command.Command, *execctx.Context, *handler.Result) {
			order = append(order, name)
		}))
	}

	cmd := command.New(command.SelectAll, nil)
	r := handler.Handled()
	m.RunPostDispatch(&cmd, newCtx(), &r)
	if !reflect.DeepEqual(order, []string{"low", "high"}) {
		t.Errorf("order = %v", order)
	}
}

func TestManagerCancel(t *testing.T) {
	m := hook.NewManager()
	ran := false
	m.RegisterPre(hook.NewPreDispatchFunc("cancel", 100, func(*command.Command, *execctx.Context) bool { return false }))
	m.RegisterPre(hook.NewPreDispatchFunc("after", 10, func(*command.Command, *execctx.Context) bool {
		ran = true
		return true
	}))

	cmd := command.New(command.InsertText, "x")
	if m.RunPreDispatch(&cmd, newCtx()) {
		t.Error("RunPreDispatch() = true, want cancelled")
	}
	if ran {
		t.Error("hooks after a cancelling hook should not run")
	}
}

func TestManagerRegisterReplaceUnregister(t *testing.T) {
	m := hook.NewManager()
	m.Register(hook.NewAuditHook(nil))
	m.RegisterPre(hook.NewPreDispatchFunc("v", 5, nil))
	m.RegisterPre(hook.NewPreDispatchFunc("v", 2000, nil))

	pre, post := m.Names()
	if !reflect.DeepEqual(pre, []string{"v", "audit"}) || !reflect.DeepEqual(post, []string{"audit"}) {
		t.Errorf("Names() = %v, %v", pre, post)
	}

	if !m.Unregister("audit") {
		t.Error("Unregister(audit) = false")
	}
	if m.Unregister("audit") {
		t.Error("second Unregister(audit) = true")
	}
	m.Clear()
	if pre, post := m.Names(); len(pre)+len(post) != 0 {
		t.Errorf("Clear() left %v %v", pre, post)
	}
}

func TestAuditHook(t *testing.T) {
	log := &recordingLogger{}
	h := hook.NewAuditHook(log)
	cmd := command.New(command.InsertText, "x")
	ctx := newCtx()

	h.PreDispatch(&cmd, ctx)
	ok := handler.Handled()
	h.PostDispatch(&cmd, ctx, &ok)
	failed := handler.Error(errValidationFailed)
	h.PostDispatch(&cmd, ctx, &failed)

	if len(log.entries) != 3 {
		t.Fatalf("entries = %v", log.entries)
	}
	if got := log.entries[2]; got[:5] != "ERROR" {
		t.Errorf("failure logged as %q", got)
	}
}

func TestValidationHook(t *testing.T) {
	log := &recordingLogger{}
	h := hook.NewValidationHook("no-tabs", hook.PriorityValidation, func(cmd *command.Command, _ *execctx.Context) error {
		if cmd.Type == command.InsertText && cmd.Text() == "\t" {
			return errValidationFailed
		}
		return nil
	}, log)

	tab := command.New(command.InsertText, "\t")
	if h.PreDispatch(&tab, newCtx()) {
		t.Error("tab insertion should be rejected")
	}
	x := command.New(command.InsertText, "x")
	if !h.PreDispatch(&x, newCtx()) {
		t.Error("plain insertion should pass")
	}
	if len(log.entries) != 1 {
		t.Errorf("entries = %v", log.entries)
	}
}

func TestReadOnlyHook(t *testing.T) {
	readOnly := true
	h := hook.NewReadOnlyHook(func() bool { return readOnly })

	tests := []struct {
		cmd  command.Command
		want bool
	}{
		{command.New(command.InsertText, "x"), false},
		{command.New(command.KeyBackspace, nil), false},
		{command.Named("plugin", nil), false},
		{command.New(command.KeyArrowLeft, nil), true},
		{command.New(command.SelectAll, nil), true},
	}
	for _, tt := range tests {
		if got := h.PreDispatch(&tt.cmd, newCtx()); got != tt.want {
			t.Errorf("%s: PreDispatch() = %v, want %v", tt.cmd.Channel(), got, tt.want)
		}
	}

	readOnly = false
	cmd := command.New(command.InsertText, "x")
	if !h.PreDispatch(&cmd, newCtx()) {
		t.Error("writable editor should accept edits")
	}
}

func TestTimingHook(t *testing.T) {
	var channel string
	var took time.Duration = -1
	h := hook.NewTimingHook(func(c string, d time.Duration) {
		channel, took = c, d
	})

	cmd := command.New(command.InsertParagraph, nil)
	ctx := newCtx()
	h.PreDispatch(&cmd, ctx)
	r := handler.Handled()
	h.PostDispatch(&cmd, ctx, &r)

	if channel != "insertParagraph" || took < 0 {
		t.Errorf("callback got %q %v", channel, took)
	}
}
