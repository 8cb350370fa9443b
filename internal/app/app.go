// internal/app/app.go
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"enigma/internal/cli"
	"enigma/internal/cmdutil"
	"enigma/internal/config"
	"enigma/internal/input"
	"enigma/internal/session"
	"enigma/internal/version"
	"enigma/internal/writers"
)

const writerBuffer = 64

func printUsage(fs *flag.FlagSet, w io.Writer, code int) int {
	fs.SetOutput(w)
	fs.Usage()
	return code
}

func fail(stderr io.Writer, err error) int {
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return cmdutil.ExitCode(err)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("enigma")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		return printUsage(fs, stdout, cmdutil.ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return printUsage(fs, stdout, cmdutil.ExitOK)
		}
		_, _ = fmt.Fprintf(stderr, "Error: %v\n\n", err)
		return printUsage(fs, stderr, cmdutil.ExitUsage)
	}

	if opts.Version {
		if _, err := fmt.Fprintf(stdout, "enigma version %s\n", version.Version); err != nil && !writers.IsBrokenPipe(err) {
			return cmdutil.ExitIO
		}
		return cmdutil.ExitOK
	}

	log, err := cmdutil.NewLogger(stderr, opts.LogLevel, opts.Quiet)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return cmdutil.ExitUsage
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return fail(stderr, err)
	}
	kit, err := cfg.Build()
	if err != nil {
		return fail(stderr, fmt.Errorf("%s: %w", opts.ConfigFile, err))
	}
	log.Info("configuration loaded",
		"file", opts.ConfigFile, "alphabet", kit.Alphabet.Size(),
		"slots", kit.NumRotors, "pawls", kit.Pawls,
		"rotors", strings.Join(kit.Catalog.Names(), " "))

	r, err := input.Open(opts.InputFile)
	if err != nil {
		return fail(stderr, err)
	}
	defer r.Close()

	w, err := input.Create(opts.OutputFile, stdout)
	if err != nil {
		return fail(stderr, err)
	}

	in, done := writers.StartMessageWriter(w, opts.Output, writers.Options{Group: opts.Group}, writerBuffer)
	drv := &session.Driver{NewMachine: kit.NewMachine, Log: log}
	st, runErr := drv.Run(parent, r, func(m session.Message) error {
		select {
		case in <- m:
			return nil
		case <-parent.Done():
			return parent.Err()
		}
	})
	close(in)
	werr := <-done
	if cerr := w.Close(); werr == nil && cerr != nil {
		werr = cerr
	}

	log.Info("run finished", "sessions", st.Sessions, "messages", st.Messages, "symbols", st.Symbols)

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return cmdutil.ExitCanceled
		}
		return fail(stderr, runErr)
	}
	if werr != nil && !writers.IsBrokenPipe(werr) {
		return fail(stderr, werr)
	}
	if st.Sessions == 0 {
		cmdutil.Warnf(stderr, opts.Quiet, "no setting lines in input")
	}
	return cmdutil.ExitOK
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
