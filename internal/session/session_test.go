package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigma-core/enigmaerr"
	"enigma/internal/config"
)

func newDriver(t *testing.T) *Driver {
	t.Helper()
	cfg, err := config.Load(filepath.Join("..", "config", "testdata", "default.conf"))
	require.NoError(t, err)
	kit, err := cfg.Build()
	require.NoError(t, err)
	n := 0
	return &Driver{
		NewMachine: kit.NewMachine,
		NewID: func() string {
			n++
			return fmt.Sprintf("s%d", n)
		},
	}
}

func collect(t *testing.T, d *Driver, in string) ([]Message, Stats, error) {
	t.Helper()
	var got []Message
	st, err := d.Run(context.Background(), strings.NewReader(in), func(m Message) error {
		got = append(got, m)
		return nil
	})
	return got, st, err
}

func TestRunSessions(t *testing.T) {
	in := "\n* B BETA III IV I AXLE (HQ) (EX) (IP) (TR) (BY)\r\n" +
		"FROM HIS SHOULDER HIAWATHA\r\n" +
		"\n" +
		"* B BETA III IV I AXLE (HQ) (EX) (IP) (TR) (BY)\n" +
		"QVPQS OKOIL PUBKJ ZPISF XDW"
	got, st, err := collect(t, newDriver(t), in)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, Message{
		SessionID: "s1", Line: 3, Before: "AXLE", After: got[0].After,
		Input: "FROM HIS SHOULDER HIAWATHA", Output: "QVPQSOKOILPUBKJZPISFXDW",
	}, got[0])
	assert.NotEqual(t, "AXLE", got[0].After)

	assert.Equal(t, "", got[1].Output, "blank lines are kept")
	assert.Equal(t, 4, got[1].Line)
	assert.Equal(t, got[0].After, got[1].Before)

	assert.Equal(t, "s2", got[2].SessionID)
	assert.Equal(t, "AXLE", got[2].Before, "a setting line starts from fresh positions")
	assert.Equal(t, "FROMHISSHOULDERHIAWATHA", got[2].Output)

	assert.Equal(t, Stats{Sessions: 2, Messages: 3, Symbols: 46}, st)
}

func TestMessageBeforeSetting(t *testing.T) {
	_, _, err := collect(t, newDriver(t), "\n  \nHELLO\n* B BETA III IV I AXLE\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, enigmaerr.ErrConfig))
	assert.Contains(t, err.Error(), "line 3")
}

func TestBadSettingStopsRun(t *testing.T) {
	in := "* B BETA III IV I AXLE\nHELLO\n* B BETA III III I AXLE\nWORLD\n"
	got, st, err := collect(t, newDriver(t), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, enigmaerr.ErrConfig))
	assert.Contains(t, err.Error(), "line 3: rotor III repeated")
	assert.Len(t, got, 1)
	assert.Equal(t, 1, st.Sessions)
}

func TestSettingErrors(t *testing.T) {
	for name, line := range map[string]string{
		"short positions":   "* B BETA III IV I AXL",
		"not a reflector":   "* BETA B III IV I AXLE",
		"unknown rotor":     "* B BETA III IV IX AXLE",
		"wrong rotor count": "* B BETA III IV AXLE",
		"bad plugboard":     "* B BETA III IV I AXLE (HQ) (HX)",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := collect(t, newDriver(t), line+"\nHELLO\n")
			require.Error(t, err)
			assert.True(t, errors.Is(err, enigmaerr.ErrConfig), err.Error())
			assert.True(t, strings.HasPrefix(err.Error(), "line 1: "), err.Error())
		})
	}
}

func TestSendErrorStopsRun(t *testing.T) {
	boom := errors.New("pipe closed")
	d := newDriver(t)
	_, err := d.Run(context.Background(), strings.NewReader("* B BETA III IV I AXLE\nA\nB\n"), func(Message) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newDriver(t).Run(ctx, strings.NewReader("* B BETA III IV I AXLE\nA\n"), func(Message) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultSessionIDIsUUID(t *testing.T) {
	d := newDriver(t)
	d.NewID = nil
	got, _, err := collect(t, d, "* B BETA III IV I AXLE\nHELLO\n")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].SessionID, 36)
}
