package execctx

import "errors"

// Context validation errors.
var (
	// ErrNoTransaction indicates a context used outside a running update.
	ErrNoTransaction = errors.New("execution context: no active transaction")

	// ErrNoDispatcher indicates a nested dispatch from a context that was
	// not created by a dispatcher.
	ErrNoDispatcher = errors.New("execution context: no dispatcher")
)
