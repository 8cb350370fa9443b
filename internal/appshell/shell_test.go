package appshell

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecPassesThroughCode(t *testing.T) {
	var gotArgv []string
	fn := func(_ context.Context, argv []string, _, _ io.Writer) int {
		gotArgv = argv
		return 2
	}
	assert.Equal(t, 2, Exec(context.Background(), fn, []string{"a", "b"}, io.Discard, io.Discard))
	assert.Equal(t, []string{"a", "b"}, gotArgv)
}

func TestExecCanceledSuccessBecomes130(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := func(context.Context, []string, io.Writer, io.Writer) int { return 0 }
	assert.Equal(t, 130, Exec(ctx, ok, nil, io.Discard, io.Discard))

	bad := func(context.Context, []string, io.Writer, io.Writer) int { return 1 }
	assert.Equal(t, 1, Exec(ctx, bad, nil, io.Discard, io.Discard))
}
