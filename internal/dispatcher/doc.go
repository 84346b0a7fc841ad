// Package dispatcher routes editing commands to handlers and runs them
// inside editor transactions.
//
// Each Dispatcher belongs to one engine.Editor and owns a Registry of
// handlers per command channel. There is no process-wide handler list.
//
// # Dispatch
//
// When a command is dispatched:
//
//  1. A channel without handlers returns false immediately, without
//     opening a transaction.
//  2. The chain runs inside one Editor.Update.
//  3. Pre-dispatch hooks are called and can cancel the command.
//  4. Handlers run from highest to lowest priority until one reports
//     handled or fails.
//  5. Post-dispatch hooks are called and metrics recorded.
//  6. A handler error aborts the transaction and is returned; otherwise the
//     draft commits and Dispatch reports whether a handler claimed the
//     command.
//
// # Nested Dispatch
//
// A handler may translate its command into another by calling
// execctx.Context.Dispatch. The nested command runs through the same
// registry in the same transaction, one level deeper. Chains deeper than
// Config.MaxDepth fail with ErrMaxDepth.
//
// # Hooks
//
// The hook.Manager returned by Hooks runs for every dispatch, nested ones
// included. See package hook for the built-in hooks.
package dispatcher
