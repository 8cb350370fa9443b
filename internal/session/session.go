// internal/session/session.go
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"enigma-core/enigmaerr"
	"enigma-core/machine"
	"enigma/internal/setting"
)

// Message is one converted input line.
type Message struct {
	SessionID string
	Line      int    // 1-based input line number
	Before    string // rotor positions before the line
	After     string // rotor positions after the line
	Input     string
	Output    string
}

// Stats summarizes a run.
type Stats struct {
	Sessions int
	Messages int
	Symbols  int
}

// Driver reads setting lines and message lines. Every setting line starts
// a new session on a fresh machine; message lines are converted on the
// current session's machine.
type Driver struct {
	NewMachine func() (*machine.Machine, error)
	Log        *slog.Logger
	NewID      func() string
}

// Run processes r until EOF, handing each converted line to send.
// The first error stops the run.
func (d *Driver) Run(ctx context.Context, r io.Reader, send func(Message) error) (Stats, error) {
	var (
		st    Stats
		m     *machine.Machine
		sid   string
		ln    int
		br    = bufio.NewReader(r)
		newID = d.NewID
		log   = d.Log
	)
	if newID == nil {
		newID = uuid.NewString
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		line, err := br.ReadString('\n')
		if errors.Is(err, io.EOF) && line == "" {
			break
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return st, err
		}
		ln++
		line = strings.TrimRight(line, "\r\n")

		if setting.IsSetting(line) {
			next, err := d.NewMachine()
			if err != nil {
				return st, err
			}
			s, err := setting.Parse(line, next.NumRotors())
			if err != nil {
				return st, fmt.Errorf("line %d: %w", ln, err)
			}
			if err := next.Setup(s); err != nil {
				return st, fmt.Errorf("line %d: %w", ln, err)
			}
			m, sid = next, newID()
			st.Sessions++
			log.Info("session started", "session", sid, "line", ln,
				"rotors", strings.Join(s.Rotors, " "), "positions", s.Positions, "plugboard", s.Plugboard)
			continue
		}

		if m == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			return st, fmt.Errorf("line %d: %w", ln, enigmaerr.Errorf("message before any setting line"))
		}

		before, ticks := m.Positions(), m.Ticks()
		msg := Message{
			SessionID: sid,
			Line:      ln,
			Before:    before,
			Input:     line,
			Output:    m.ConvertString(line),
			After:     m.Positions(),
		}
		st.Messages++
		st.Symbols += m.Ticks() - ticks
		log.Debug("message converted", "session", sid, "line", ln, "symbols", m.Ticks()-ticks, "positions", msg.After)
		if err := send(msg); err != nil {
			return st, err
		}
	}
	return st, nil
}
