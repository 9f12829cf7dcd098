package starfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger(prefix string) (*ZapLogger, *observer.ObservedLogs) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	core, logs := observer.New(level)
	return newZapLogger(core, level, prefix), logs
}

func TestZapLogger_Levels(t *testing.T) {
	l, logs := observedLogger("stars")

	l.Debugf("hidden %d", 1)
	l.Infof("ready %dx%d", 800, 600)
	l.Warnf("slow frame")
	l.Errorf("lost device: %v", "gone")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "ready 800x600", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "lost device: gone", entries[2].Message)
	assert.Equal(t, "stars", entries[0].LoggerName)
}

func TestZapLogger_SetDebug(t *testing.T) {
	l, logs := observedLogger("")
	assert.False(t, l.DebugEnabled())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("visible")
	assert.Equal(t, 1, logs.FilterMessage("visible").Len())

	l.SetDebug(false)
	l.Debugf("hidden")
	assert.Zero(t, logs.FilterMessage("hidden").Len())
}

func TestNewZapLogger_DebugFlag(t *testing.T) {
	assert.True(t, NewZapLogger("x", true).DebugEnabled())
	assert.False(t, NewZapLogger("x", false).DebugEnabled())
}

func TestApp_LoggerFallback(t *testing.T) {
	var nilApp *App
	assert.NotNil(t, nilApp.Logger())

	app := NewAppBuilder().Build()
	_, isNop := app.Logger().(*nopLogger)
	assert.True(t, isNop)

	app = NewAppBuilder().UseModule(LoggingModule{Prefix: "test"}).Build()
	_, isZap := app.Logger().(*ZapLogger)
	assert.True(t, isZap)
}
