// core/enigmaerr/errors.go
package enigmaerr

import (
	"errors"
	"fmt"
)

// ErrConfig matches every configuration or usage error raised by the core.
var ErrConfig = errors.New("enigma configuration error")

// Error is the single error kind for bad alphabets, cycles, rotors and
// machine set-ups. Callers tell failures apart by message.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// Is lets errors.Is(err, ErrConfig) match any *Error.
func (e *Error) Is(target error) bool { return target == ErrConfig }

// Errorf builds an *Error from a format string.
func Errorf(format string, a ...any) error {
	return &Error{Msg: fmt.Sprintf(format, a...)}
}
