package handler_test

import (
	"errors"
	"testing"

	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
)

func TestResultConstructors(t *testing.T) {
	errBoom := errors.New("boom")
	tests := []struct {
		name    string
		result  handler.Result
		status  handler.Status
		handled bool
		isError bool
	}{
		{"handled", handler.Handled(), handler.StatusHandled, true, false},
		{"unhandled", handler.Unhandled(), handler.StatusUnhandled, false, false},
		{"from true", handler.FromBool(true), handler.StatusHandled, true, false},
		{"from false", handler.FromBool(false), handler.StatusUnhandled, false, false},
		{"error", handler.Error(errBoom), handler.StatusError, false, true},
		{"errorf", handler.Errorf("bad %d", 1), handler.StatusError, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result.Status != tt.status {
				t.Errorf("Status = %v, want %v", tt.result.Status, tt.status)
			}
			if tt.result.IsHandled() != tt.handled {
				t.Errorf("IsHandled() = %v", tt.result.IsHandled())
			}
			if tt.result.IsError() != tt.isError {
				t.Errorf("IsError() = %v", tt.result.IsError())
			}
		})
	}

	if r := handler.Errorf("bad %d", 1); r.Error.Error() != "bad 1" {
		t.Errorf("Errorf message = %q", r.Error)
	}
}

func TestStatusString(t *testing.T) {
	want := map[handler.Status]string{
		handler.StatusUnhandled: "unhandled",
		handler.StatusHandled:   "handled",
		handler.StatusError:     "error",
		handler.Status(9):       "unknown",
	}
	for s, name := range want {
		if s.String() != name {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), name)
		}
	}
}

func TestHandlerFunc(t *testing.T) {
	var got command.Command
	h := handler.HandlerFunc(func(cmd command.Command, ctx *execctx.Context) handler.Result {
		got = cmd
		return handler.Handled().WithMessage("ok")
	})

	r := h.Handle(command.New(command.SelectAll, nil), nil)
	if !r.IsHandled() || r.Message != "ok" || got.Type != command.SelectAll {
		t.Errorf("Handle() = %+v, saw %v", r, got)
	}

	var nilFunc handler.HandlerFunc
	if r := nilFunc.Handle(command.New(command.SelectAll, nil), nil); !r.IsError() {
		t.Error("nil HandlerFunc should report an error")
	}
}

func TestBoolFunc(t *testing.T) {
	h := handler.BoolFunc(func(cmd command.Command, _ *execctx.Context) bool {
		return cmd.Bool()
	})
	if !h.Handle(command.New(command.DeleteWord, true), nil).IsHandled() {
		t.Error("true should be handled")
	}
	if h.Handle(command.New(command.DeleteWord, false), nil).IsHandled() {
		t.Error("false should be unhandled")
	}
}
