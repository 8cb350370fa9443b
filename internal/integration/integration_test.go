// internal/integration/integration_test.go
package integration

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigma/internal/app"
	"enigma/pkg/api"
)

const (
	machineConf = "testdata/machine.conf"
	hiawathaIn  = "testdata/hiawatha.inp"
	hiawathaOut = "testdata/hiawatha.out"
	yamlConf    = "../config/testdata/default.yaml"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func read(t *testing.T, fn string) string {
	t.Helper()
	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	return string(b)
}

func run(argv ...string) (code int, stdout, stderr string) {
	var out, errBuf bytes.Buffer
	code = app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestEndToEnd(t *testing.T) {
	code, out, stderr := run(machineConf, hiawathaIn)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, read(t, hiawathaOut), out)
	assert.Empty(t, stderr)
}

func TestYAMLConfigMatchesText(t *testing.T) {
	code, out, stderr := run(yamlConf, hiawathaIn)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, read(t, hiawathaOut), out)
}

func TestDecryptRoundTrip(t *testing.T) {
	enc := read(t, hiawathaOut)
	in := write(t, "cipher.inp", "* B BETA III IV I AXLE (HQ) (EX) (IP) (TR) (BY)\n"+enc)

	code, out, stderr := run("--group", "0", machineConf, in)
	require.Equal(t, 0, code, stderr)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "FROMHISSHOULDERHIAWATHA", lines[0])
	assert.Equal(t, "TOOKTHECAMERAOFROSEWOOD", lines[1])
	assert.Equal(t, "", lines[3])
}

func TestOutputFileAndGzipInput(t *testing.T) {
	dir := t.TempDir()
	gz := filepath.Join(dir, "msg.inp.gz")
	f, err := os.Create(gz)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(read(t, hiawathaIn)))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	outFile := filepath.Join(dir, "msg.out")
	code, out, stderr := run(machineConf, gz, outFile)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, out)
	assert.Equal(t, read(t, hiawathaOut), read(t, outFile))
}

func TestJSONLOutput(t *testing.T) {
	code, out, stderr := run("--output", "jsonl", machineConf, hiawathaIn)
	require.Equal(t, 0, code, stderr)

	var recs []api.MessageV1
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var v api.MessageV1
		require.NoError(t, json.Unmarshal(sc.Bytes(), &v), sc.Text())
		recs = append(recs, v)
	}
	require.Len(t, recs, 5)
	assert.Len(t, recs[0].SessionID, 36)
	assert.Equal(t, 2, recs[0].Line)
	assert.Equal(t, "AXLE", recs[0].Before)
	assert.Equal(t, "QVPQSOKOILPUBKJZPISFXDW", recs[0].Output)
	assert.Equal(t, "AXPW", recs[4].After)
	for _, r := range recs {
		assert.Equal(t, recs[0].SessionID, r.SessionID)
	}
}

func TestLoggingGoesToStderr(t *testing.T) {
	code, out, stderr := run("--log-level", "info", machineConf, hiawathaIn)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, read(t, hiawathaOut), out)
	assert.Contains(t, stderr, "configuration loaded")
	assert.Contains(t, stderr, "session started")
	assert.Contains(t, stderr, "messages=5")

	code, _, stderr = run("--log-level", "info", "-q", machineConf, hiawathaIn)
	require.Equal(t, 0, code)
	assert.Empty(t, stderr)
}

func TestErrorsAndExitCodes(t *testing.T) {
	badConf := write(t, "bad.conf", "ABCDEFGHIJKLMNOPQRSTUVWXYZ\n5 3\nI X (AB)\n")
	cases := []struct {
		name   string
		argv   []string
		code   int
		stderr string
	}{
		{"no config", []string{"-q"}, 2, "missing CONFIG"},
		{"bad flag", []string{"--output", "fasta", machineConf}, 2, "invalid --output"},
		{"missing config", []string{filepath.Join(t.TempDir(), "nope.conf")}, 3, "Error:"},
		{"missing input", []string{machineConf, filepath.Join(t.TempDir(), "nope.inp")}, 3, "Error:"},
		{"bad config", []string{badConf}, 1, "bad.conf:3"},
		{"message first", []string{machineConf, write(t, "m.inp", "HELLO\n")}, 1, "line 1: message before any setting line"},
		{"bad setting", []string{machineConf, write(t, "s.inp", "* B BETA III IV IX AXLE\nHELLO\n")}, 1, "line 1:"},
		{"repeated rotor", []string{machineConf, write(t, "r.inp", "* B BETA I IV I AXLE\n")}, 1, "repeated"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, _, stderr := run(c.argv...)
			assert.Equal(t, c.code, code, stderr)
			assert.Contains(t, stderr, c.stderr)
		})
	}
}

func TestHelpAndVersion(t *testing.T) {
	code, out, _ := run("-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "CONFIG [INPUT [OUTPUT]]")

	code, out, _ = run("--version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "enigma version "))
}

func TestEmptyInputWarns(t *testing.T) {
	code, out, stderr := run(machineConf, write(t, "empty.inp", "\n\n"))
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "WARN: no setting lines")
}

func TestCanceledRunExits130(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errBuf bytes.Buffer
	code := app.RunContext(ctx, []string{machineConf, hiawathaIn}, &out, &errBuf)
	assert.Equal(t, 130, code)
}
