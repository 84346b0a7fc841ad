package richtext_test

import (
	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/dispatcher/execctx"
	"github.com/mrdivyansh/lexical/internal/dispatcher/hook"
)

// hookRecorder returns a pre-dispatch hook appending every command,
// nested ones included, to *out.
func hookRecorder(out *[]command.Command) hook.PreDispatchHook {
	return hook.NewPreDispatchFunc("recorder", 0, func(cmd *command.Command, _ *execctx.Context) bool {
		*out = append(*out, *cmd)
		return true
	})
}
