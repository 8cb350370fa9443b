// internal/writers/text.go
package writers

import (
	"bufio"
	"io"
	"strings"

	"enigma/internal/session"
)

// Group splits s into runs of n runes separated by single spaces.
// n <= 0 returns s unchanged.
func Group(s string, n int) string {
	if n <= 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/n)
	i := 0
	for _, r := range s {
		if i > 0 && i%n == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		i++
	}
	return b.String()
}

// StartTextWriter streams one line per message, grouped per opt.Group.
// Blank input lines come out as blank lines.
func StartTextWriter(out io.Writer, opt Options, bufSize int) (chan<- session.Message, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan session.Message, bufSize)
	errCh := make(chan error, 1)

	go func() {
		bw := bufio.NewWriter(out)
		var err error
		for m := range in {
			if err != nil {
				continue // keep draining so the producer never blocks
			}
			if _, err = bw.WriteString(Group(m.Output, opt.Group)); err == nil {
				err = bw.WriteByte('\n')
			}
		}
		if err == nil {
			err = bw.Flush()
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
