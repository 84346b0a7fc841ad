package command

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument indicates a command argument that cannot be converted
// to the command's payload type.
var ErrInvalidArgument = errors.New("command: invalid argument")

// PayloadError reports a payload whose type does not match its command.
type PayloadError struct {
	Channel string
	Want    string
	Got     any
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("command: %s payload: want %s, got %T", e.Channel, e.Want, e.Got)
}
