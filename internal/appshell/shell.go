// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"enigma/internal/cmdutil"
)

// RunFunc is a command entry point such as app.RunContext.
type RunFunc func(context.Context, []string, io.Writer, io.Writer) int

// Exec runs fn and normalizes the exit code once ctx has been canceled.
func Exec(ctx context.Context, fn RunFunc, argv []string, stdout, stderr io.Writer) int {
	code := fn(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == cmdutil.ExitOK {
		code = cmdutil.ExitCanceled
	}
	return code
}

// Main wires signals to a context, runs fn with os.Args, and exits.
func Main(fn RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Exec(ctx, fn, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
