// internal/cmdutil/run.go
package cmdutil

import (
	"context"
	"errors"

	"enigma-core/alphabet"
	"enigma-core/enigmaerr"
)

// Exit codes shared by the commands.
const (
	ExitOK       = 0
	ExitConfig   = 1 // bad configuration, setting line or message
	ExitUsage    = 2
	ExitIO       = 3
	ExitCanceled = 130
)

// ExitCode classifies err into one of the exit codes above.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.Is(err, enigmaerr.ErrConfig), errors.Is(err, alphabet.ErrNotFound):
		return ExitConfig
	default:
		return ExitIO
	}
}
