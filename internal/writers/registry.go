// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"enigma/internal/session"
)

// Options control presentation.
type Options struct {
	Group int // symbols per output group in text mode; 0 disables grouping
}

// Factory starts a writer goroutine for one format.
type Factory func(out io.Writer, opt Options, bufSize int) (chan<- session.Message, <-chan error)

var messageWriters = map[string]Factory{}

// Register adds (or replaces) the factory for format.
func Register(format string, fn Factory) { messageWriters[format] = fn }

// Formats lists the registered format names.
func Formats() []string {
	out := make([]string, 0, len(messageWriters))
	for k := range messageWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Known reports whether format has a registered writer.
func Known(format string) bool {
	_, ok := messageWriters[format]
	return ok
}

// StartMessageWriter dispatches to the registered writer for format.
// An unknown format yields a writer that drains its input and reports the error.
func StartMessageWriter(out io.Writer, format string, opt Options, bufSize int) (chan<- session.Message, <-chan error) {
	if fn, ok := messageWriters[format]; ok {
		return fn(out, opt, bufSize)
	}
	in := make(chan session.Message, 1)
	done := make(chan error, 1)
	go func() {
		for range in {
		}
		done <- fmt.Errorf("unknown output format %q (no writer registered)", format)
	}()
	return in, done
}

func init() {
	Register("text", StartTextWriter)
	Register("json", StartJSONWriter)
	Register("jsonl", StartJSONLWriter)
}
