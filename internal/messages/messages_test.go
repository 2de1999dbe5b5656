package messages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogMirrorsToZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLog(zap.New(core))

	l.AddMessage(Information, false, "loaded")
	l.AddMessage(Warning, false, "odd normal")
	l.AddMessage(Error, true, "missing.csv")
	l.AddMessage(Critical, false, "broken")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, true, entries[2].ContextMap()["file_not_found"])
}

func TestLogCountAndClear(t *testing.T) {
	l := NewLog(nil)
	assert.Equal(t, 0, l.Count())
	assert.False(t, l.HasErrors())

	l.AddMessage(Information, false, "a")
	assert.Equal(t, 1, l.Count())
	assert.False(t, l.HasErrors())

	l.AddMessage(Warning, false, "b")
	assert.True(t, l.HasErrors())

	msgs := l.Messages()
	msgs[0].Text = "changed"
	assert.Equal(t, "a", l.Messages()[0].Text)

	l.Clear()
	assert.Equal(t, 0, l.Count())
	assert.Empty(t, l.Messages())
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", Type(42).String())
}

func TestWriteTo(t *testing.T) {
	l := NewLog(nil)
	l.AddMessage(Warning, false, "odd normal")
	l.AddMessage(Error, true, "signal.yaml")

	var b strings.Builder
	n, err := l.WriteTo(&b)
	require.NoError(t, err)
	assert.Equal(t, "[warning] odd normal\n[error] signal.yaml (file not found)\n", b.String())
	assert.Equal(t, int64(b.Len()), n)
}
