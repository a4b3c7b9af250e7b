// Package logx is the process-wide leveled logger. Call sites use the
// package functions; the backing zap logger is swapped by Configure.
package logx

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = mustBuild(false)
)

func mustBuild(json bool) *zap.SugaredLogger {
	l, err := build(json)
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l
}

func build(json bool) (*zap.SugaredLogger, error) {
	encoding := "console"
	if json {
		encoding = "json"
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            level,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// Configure rebuilds the logger with the given encoding and level
func Configure(json bool, lvl Level) error {
	SetLevel(lvl)
	l, err := build(json)
	if err != nil {
		return err
	}

	mu.Lock()
	old := logger
	logger = l
	mu.Unlock()

	_ = old.Sync()
	return nil
}

// SetLevel changes the minimum level without rebuilding the logger
func SetLevel(lvl Level) {
	level.SetLevel(lvl.zapLevel())
}

// Replace installs an arbitrary logger, used by tests with zaptest/observer
func Replace(l *zap.Logger) {
	mu.Lock()
	logger = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
	mu.Unlock()
}

// With returns a child logger carrying structured key/value fields
func With(keysAndValues ...any) *zap.SugaredLogger {
	return current().Desugar().WithOptions(zap.AddCallerSkip(-1)).Sugar().With(keysAndValues...)
}

// Sync flushes buffered entries
func Sync() error {
	return current().Sync()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debug(args ...any) { current().Debug(args...) }
func Info(args ...any)  { current().Info(args...) }
func Warn(args ...any)  { current().Warn(args...) }
func Error(args ...any) { current().Error(args...) }

func Debugf(format string, args ...any) { current().Debugf(format, args...) }
func Infof(format string, args ...any)  { current().Infof(format, args...) }
func Warnf(format string, args ...any)  { current().Warnf(format, args...) }
func Errorf(format string, args ...any) { current().Errorf(format, args...) }
func Fatalf(format string, args ...any) { current().Fatalf(format, args...) }

// TruncateForLog shortens s to limit runes, appending an ellipsis when cut
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
