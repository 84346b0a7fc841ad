package richtext

import "errors"

// ErrNoBlock indicates a selection anchor without an element ancestor, a
// broken tree. It aborts the transaction.
var ErrNoBlock = errors.New("richtext: selection anchor has no element ancestor")
