package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntoFrom_RoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "rid-1")

	ctx := Into(context.Background(), l)
	got := From(ctx)
	require.Same(t, l, got)

	got.Info("hello")
	require.Contains(t, buf.String(), "request_id=rid-1")
}

func TestFrom_EmptyContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	got := From(context.Background())
	require.NotNil(t, got)
	require.Same(t, slog.Default(), got)
}

func TestFrom_NilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	ctx := Into(context.Background(), nil)
	require.Same(t, slog.Default(), From(ctx))
}
