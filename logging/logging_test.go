package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(prefix string, lvl zapcore.Level) (*ZapLogger, *observer.ObservedLogs) {
	level := zap.NewAtomicLevelAt(lvl)
	core, logs := observer.New(level)
	return NewWithCore(prefix, core, level), logs
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestLevelsAndFormatting(t *testing.T) {
	log, logs := observed("render", zapcore.InfoLevel)

	log.Debugf("hidden %d", 1)
	log.Infof("mode %s", "unlit")
	log.Warnf("slow frame %dms", 40)
	log.Errorf("pipeline: %v", "boom")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "mode unlit", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "pipeline: boom", entries[2].Message)
	assert.Equal(t, "render", entries[0].LoggerName)
}

func TestSetDebug(t *testing.T) {
	log, logs := observed("", zapcore.WarnLevel)
	assert.False(t, log.DebugEnabled())

	log.SetDebug(true)
	assert.True(t, log.DebugEnabled())
	log.Debugf("visible")
	assert.Equal(t, 1, logs.FilterMessage("visible").Len())

	log.SetDebug(false)
	assert.False(t, log.DebugEnabled())
	log.Infof("still hidden")
	assert.Equal(t, 0, logs.FilterMessage("still hidden").Len())
}

func TestSetDebugFromDebugBase(t *testing.T) {
	log, _ := observed("", zapcore.DebugLevel)
	assert.True(t, log.DebugEnabled())
	log.SetDebug(false)
	assert.False(t, log.DebugEnabled())
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.log")
	log := New(Options{Prefix: "app", Level: "info", LogFile: path})

	log.Infof("loaded %d objects", 3)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded 3 objects")
	assert.Contains(t, string(data), "INFO")
}

func TestNop(t *testing.T) {
	log := OrNop(nil)
	assert.False(t, log.DebugEnabled())
	log.SetDebug(true)
	assert.False(t, log.DebugEnabled())
	log.Errorf("nothing %d", 1)

	zl, _ := observed("", zapcore.InfoLevel)
	assert.Same(t, zl, OrNop(zl))
}
