// Package logging provides the leveled logger used across the renderer.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Options configures New. An empty LogFile disables file output.
type Options struct {
	Prefix  string
	Level   string
	LogFile string
	Console bool
}

// FileConfig holds rotation settings for the log file.
type FileConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var DefaultFileConfig = FileConfig{
	MaxSizeMB:  50,
	MaxBackups: 3,
	MaxAgeDays: 7,
	Compress:   true,
}

// ZapLogger implements Logger on a sugared zap logger. The level is atomic
// so SetDebug is safe from input callbacks.
type ZapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
	base  zapcore.Level
	file  io.Closer
}

func New(opts Options) *ZapLogger {
	base := ParseLevel(opts.Level)
	level := zap.NewAtomicLevelAt(base)

	var cores []zapcore.Core
	if opts.Console {
		enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			NameKey:          "logger",
			MessageKey:       "msg",
			CallerKey:        "caller",
			EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05.000"),
			EncodeLevel:      zapcore.CapitalColorLevelEncoder,
			EncodeName:       zapcore.FullNameEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), level))
	}

	var file *lumberjack.Logger
	if opts.LogFile != "" {
		file = &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    DefaultFileConfig.MaxSizeMB,
			MaxBackups: DefaultFileConfig.MaxBackups,
			MaxAge:     DefaultFileConfig.MaxAgeDays,
			Compress:   DefaultFileConfig.Compress,
			LocalTime:  true,
		}
		enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			NameKey:          "logger",
			MessageKey:       "msg",
			CallerKey:        "caller",
			EncodeTime:       zapcore.ISO8601TimeEncoder,
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			EncodeName:       zapcore.FullNameEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(file), level))
	}

	l := NewWithCore(opts.Prefix, zapcore.NewTee(cores...), level)
	if file != nil {
		l.file = file
	}
	return l
}

// NewWithCore wraps an existing core. level must be the enabler the core was
// built with for SetDebug to take effect.
func NewWithCore(prefix string, core zapcore.Core, level zap.AtomicLevel) *ZapLogger {
	log := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	if prefix != "" {
		log = log.Named(prefix)
	}
	return &ZapLogger{
		sugar: log.Sugar(),
		level: level,
		base:  level.Level(),
	}
}

// ParseLevel maps debug, warn and error to their levels and anything else to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *ZapLogger) DebugEnabled() bool {
	return l.level.Enabled(zapcore.DebugLevel)
}

// SetDebug lowers the level to debug, or restores the configured level.
func (l *ZapLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zapcore.DebugLevel)
		return
	}
	if l.base == zapcore.DebugLevel {
		l.level.SetLevel(zapcore.InfoLevel)
		return
	}
	l.level.SetLevel(l.base)
}

func (l *ZapLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *ZapLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *ZapLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *ZapLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Close flushes buffered entries and closes the log file, if any.
func (l *ZapLogger) Close() error {
	_ = l.sugar.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

type nopLogger struct{}

func NewNop() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) SetDebug(bool)         {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NewNop()
	}
	return l
}
