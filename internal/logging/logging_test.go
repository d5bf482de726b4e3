package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		l, err := New("warn", format)
		require.NoError(t, err, format)
		require.True(t, l.Core().Enabled(zapcore.WarnLevel))
		require.False(t, l.Core().Enabled(zapcore.InfoLevel))
	}
}

func TestNewRejects(t *testing.T) {
	_, err := New("loud", "console")
	require.Error(t, err)

	_, err = New("info", "xml")
	require.Error(t, err)
}
