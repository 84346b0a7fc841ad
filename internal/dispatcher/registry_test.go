package dispatcher_test

import (
	"reflect"
	"testing"

	"github.com/mrdivyansh/lexical/internal/dispatcher"
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
)

// named returns a handler that records its name into *order and reports
// unhandled.
func named(name string, order *[]string) handler.Handler {
	return handler.HandlerFunc(func(command.Command, *execctx.Context) handler.Result {
		*order = append(*order, name)
		return handler.Unhandled()
	})
}

func TestRegistryOrdering(t *testing.T) {
	r := dispatcher.NewRegistry()
	var order []string

	r.Register("insertText", dispatcher.PriorityEditor, named("editor", &order))
	r.Register("insertText", dispatcher.PriorityHigh, named("high-1", &order))
	r.Register("insertText", dispatcher.PriorityLow, named("low", &order))
	r.Register("insertText", dispatcher.PriorityHigh, named("high-2", &order))
	r.Register("insertText", dispatcher.PriorityCritical, named("critical", &order))

	for _, h := range r.Handlers("insertText") {
		h.Handle(command.New(command.InsertText, "x"), nil)
	}

	want := []string{"critical", "high-1", "high-2", "low", "editor"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := dispatcher.NewRegistry()
	var order []string

	removeA := r.Register("keyTab", dispatcher.PriorityNormal, named("a", &order))
	r.Register("keyTab", dispatcher.PriorityNormal, named("b", &order))

	removeA()
	removeA()
	if got := len(r.Handlers("keyTab")); got != 1 {
		t.Fatalf("handlers after unregister = %d, want 1", got)
	}
	r.Handlers("keyTab")[0].Handle(command.New(command.KeyTab, nil), nil)
	if !reflect.DeepEqual(order, []string{"b"}) {
		t.Errorf("remaining handler = %v", order)
	}
}

func TestRegistryChannels(t *testing.T) {
	r := dispatcher.NewRegistry()
	var order []string
	remove := r.Register("selectAll", dispatcher.PriorityEditor, named("s", &order))
	r.Register("deleteWord", dispatcher.PriorityEditor, named("d", &order))

	if !r.Has("selectAll") || r.Has("keyEnter") {
		t.Error("Has() reports wrong channels")
	}
	if got := r.Channels(); !reflect.DeepEqual(got, []string{"deleteWord", "selectAll"}) {
		t.Errorf("Channels() = %v", got)
	}

	remove()
	if r.Has("selectAll") || r.Count() != 1 {
		t.Errorf("after removing the last handler: Has=%v Count=%d", r.Has("selectAll"), r.Count())
	}

	r.Clear()
	if r.Count() != 0 {
		t.Errorf("Count() after Clear = %d", r.Count())
	}
}
