// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"enigma/internal/cliutil"
	"enigma/internal/version"
	"enigma/internal/writers"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Positionals: CONFIG [INPUT [OUTPUT]]
	ConfigFile string
	InputFile  string // "" or "-" = stdin
	OutputFile string // "" or "-" = stdout

	// Output
	Output string
	Group  int

	// Misc
	LogLevel string
	Quiet    bool
	Version  bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() { usage(fs, name) }
	return fs
}

func usage(fs *flag.FlagSet, name string) {
	out := fs.Output()
	def := func(flagName string) string {
		if f := fs.Lookup(flagName); f != nil {
			return f.DefValue
		}
		return ""
	}

	fmt.Fprintf(out, "%s – rotor cipher machine simulator\n\n", name)
	fmt.Fprintf(out, "Version: %s\n\n", version.Version)
	fmt.Fprintf(out, "Usage:\n  %s [flags] CONFIG [INPUT [OUTPUT]]\n\n", name)
	fmt.Fprintln(out, "  CONFIG   machine description (text format, or .yaml/.yml); may be gzipped")
	fmt.Fprintln(out, "  INPUT    setting lines (\"* B BETA III IV I AXLE (HQ) (EX)\") and messages ['-' = STDIN]")
	fmt.Fprintln(out, "  OUTPUT   converted messages ['-' = STDOUT]")

	fmt.Fprintln(out, "\nOutput:")
	fmt.Fprintf(out, "  -o, --output string         Output: %s [%s]\n", strings.Join(writers.Formats(), " | "), def("output"))
	fmt.Fprintf(out, "  -g, --group int             Symbols per text output group (0=no grouping) [%s]\n", def("group"))

	fmt.Fprintln(out, "\nMisc:")
	fmt.Fprintf(out, "      --log-level string      Log level: debug | info | warn | error [%s]\n", def("log-level"))
	fmt.Fprintf(out, "  -q, --quiet                 Only log errors [%s]\n", def("quiet"))
	fmt.Fprintln(out, "  -v, --version               Print version and exit")
	fmt.Fprintln(out, "  -h, --help                  Show this help")
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Flags may appear before, between, or after the positionals.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Output, "output", "text", "output format")
	fs.StringVar(&opt.Output, "o", "text", "alias of --output")
	fs.IntVar(&opt.Group, "group", 5, "symbols per output group")
	fs.IntVar(&opt.Group, "g", 5, "alias of --group")

	fs.StringVar(&opt.LogLevel, "log-level", "warn", "log level")
	fs.BoolVar(&opt.Quiet, "quiet", false, "only log errors")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand)")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand)")
	fs.BoolVar(&help, "help", false, "show this help message")

	flagArgs, pos := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	// Validation
	switch {
	case len(pos) == 0:
		return opt, errors.New("missing CONFIG argument")
	case len(pos) > 3:
		return opt, fmt.Errorf("too many arguments: %s", strings.Join(pos[3:], " "))
	}
	opt.ConfigFile = pos[0]
	if len(pos) > 1 {
		opt.InputFile = pos[1]
	}
	if len(pos) > 2 {
		opt.OutputFile = pos[2]
	}
	if opt.ConfigFile == "-" {
		return opt, errors.New("CONFIG must be a file, not STDIN")
	}
	if opt.OutputFile != "" && opt.OutputFile != "-" && opt.OutputFile == opt.InputFile {
		return opt, errors.New("OUTPUT must differ from INPUT")
	}
	if !writers.Known(opt.Output) {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.Group < 0 {
		return opt, errors.New("--group must be ≥ 0")
	}
	return opt, nil
}
