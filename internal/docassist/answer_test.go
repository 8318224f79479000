package docassist

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineAnswerer(t *testing.T) {
	var out bytes.Buffer
	a := NewLineAnswerer(strings.NewReader("  first answer \nlast"), &out)

	got, err := a.Answer(context.Background(), "Q1?")
	require.NoError(t, err)
	assert.Equal(t, "first answer", got)
	assert.Contains(t, out.String(), "Q1?")

	got, err = a.Answer(context.Background(), "Q2?")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = a.Answer(context.Background(), "Q3?")
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineAnswerer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLineAnswerer(strings.NewReader("x\n"), io.Discard).Answer(ctx, "Q?")
	assert.ErrorIs(t, err, context.Canceled)
}
