package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	t.Setenv(LevelEnv, "")

	var buf bytes.Buffer
	l := New(false, &buf)
	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	New(true, &buf).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewEnvOverride(t *testing.T) {
	t.Setenv(LevelEnv, "error")
	var buf bytes.Buffer
	l := New(true, &buf)
	l.Info("quiet")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARNING", zapcore.InfoLevel))
	assert.Equal(t, zapcore.DebugLevel, ParseLevel(" debug ", zapcore.InfoLevel))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("loud", zapcore.InfoLevel))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := New(false, &bytes.Buffer{})
	assert.Same(t, l, OrNop(l))
}
