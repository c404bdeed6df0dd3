package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"panic": zapcore.PanicLevel,
		"fatal": zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestFromContext_FallsBackToGlobal ensures a bare context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, global, FromContext(context.Background()))
	require.Same(t, global, FromContext(nil)) //nolint:staticcheck // Nil context fallback is part of the contract.
}

// TestToContext_Roundtrip verifies a logger attached to a context is returned by FromContext.
func TestToContext_Roundtrip(t *testing.T) {
	t.Parallel()

	l := zaptest.NewLogger(t).Sugar()
	ctx := ToContext(context.Background(), l)

	require.Same(t, l, FromContext(ctx))
}

// TestWithName_ScopesLogger checks that WithName produces a distinct scoped logger.
func TestWithName_ScopesLogger(t *testing.T) {
	t.Parallel()

	ctx := ToContext(context.Background(), zaptest.NewLogger(t).Sugar())
	named := WithName(ctx, "editor")

	require.NotSame(t, FromContext(ctx), FromContext(named))
}
