package internal

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/osuushi/bigon/dbg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	_, err := mustMap(t, 1, 5).Apply(Coords(0.3, 0.7, 0.4, 0.6), 1)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "monodromy extension")
	assert.Contains(t, buf.String(), "built monodromy")
	assert.Contains(t, buf.String(), "map iteration")

	buf.Reset()
	start := Coords(0.3, 0.7, 0.4, 0.6)
	_, err = mustMap(t, 1, 1).Orbit(context.Background(), start, 2)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "orbit complete")
	assert.Contains(t, buf.String(), "orbit="+dbg.Name(start))

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
