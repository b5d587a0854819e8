// Package logging provides the structured logging interface used across
// rdkit-go and its zap-backed implementation.  Components depend on the
// Logger interface; go.uber.org/zap is only referenced inside this package.
//
// Initialisation order in cmd/*/main.go:
//
//  1. Load configuration.
//  2. NewLogger(cfg.Log) → SetDefault.
//  3. Build the native handle and everything above it with the Logger injected.
package logging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apperrors "github.com/turtacn/rdkit-go/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Field
// ─────────────────────────────────────────────────────────────────────────────

// Field is a typed key-value pair attached to a log entry.
type Field = zapcore.Field

// Canonical field keys.
const (
	FieldRequestID  = "request_id"
	FieldFunction   = "function"
	FieldErrorCode  = "error_code"
	FieldDurationMS = "duration_ms"
	FieldLibrary    = "library"
)

func String(key, val string) Field                 { return zap.String(key, val) }
func Int(key string, val int) Field                { return zap.Int(key, val) }
func Int64(key string, val int64) Field            { return zap.Int64(key, val) }
func Uint64(key string, val uint64) Field          { return zap.Uint64(key, val) }
func Float64(key string, val float64) Field        { return zap.Float64(key, val) }
func Bool(key string, val bool) Field              { return zap.Bool(key, val) }
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }
func Strings(key string, val []string) Field       { return zap.Strings(key, val) }
func Any(key string, val interface{}) Field        { return zap.Any(key, val) }

// Err captures err under the key "error".  A nil error yields a skipped field.
func Err(err error) Field {
	if err == nil {
		return zap.Skip()
	}
	return zap.String("error", err.Error())
}

// ─────────────────────────────────────────────────────────────────────────────
// Levels
// ─────────────────────────────────────────────────────────────────────────────

// LogLevel is the minimum severity emitted by a Logger.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

func (l LogLevel) String() string { return string(l) }

// ParseLevel converts a case-insensitive level name into a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch LogLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo:
		return LevelInfo, nil
	case LevelWarn, "warning":
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	}
	return "", fmt.Errorf("logging: unknown level %q", s)
}

func (l LogLevel) zapLevel() zapcore.Level {
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

// ─────────────────────────────────────────────────────────────────────────────
// Logger interface
// ─────────────────────────────────────────────────────────────────────────────

// Logger is the structured logging contract.  Implementations are injected
// through constructors; tests use NewNopLogger or testutil.MockLogger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Fatal logs then terminates the process.  Startup failures only.
	Fatal(msg string, fields ...Field)

	// With returns a child Logger carrying fields on every entry.
	With(fields ...Field) Logger

	// WithContext attaches the request id stored in ctx, if any.
	WithContext(ctx context.Context) Logger

	// WithError attaches err and, for *errors.AppError, its code.
	WithError(err error) Logger

	// Named appends name to the logger name ("rdkit" → "rdkit.native").
	Named(name string) Logger

	Sync() error
}

// LevelSetter is implemented by loggers whose level can change at runtime.
type LevelSetter interface {
	SetLevel(level LogLevel)
}

// LogConfig carries the parameters needed to construct a Logger.
type LogConfig struct {
	Level            LogLevel `mapstructure:"level" yaml:"level" json:"level"`
	Format           string   `mapstructure:"format" yaml:"format" json:"format"`
	OutputPaths      []string `mapstructure:"output_paths" yaml:"output_paths" json:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths" yaml:"error_output_paths" json:"error_output_paths"`
}

// ─────────────────────────────────────────────────────────────────────────────
// zapLogger
// ─────────────────────────────────────────────────────────────────────────────

type zapLogger struct {
	z     *zap.Logger
	level zap.AtomicLevel
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.z.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.z.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.z.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.z.Error(msg, fields...) }
func (l *zapLogger) Fatal(msg string, fields ...Field) { l.z.Fatal(msg, fields...) }

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{z: l.z.With(fields...), level: l.level}
}

func (l *zapLogger) WithContext(ctx context.Context) Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return l.With(String(FieldRequestID, id))
	}
	return l
}

func (l *zapLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	fields := []Field{Err(err)}
	var ae *apperrors.AppError
	if errors.As(err, &ae) {
		fields = append(fields, String(FieldErrorCode, ae.Code.String()))
	}
	return l.With(fields...)
}

func (l *zapLogger) Named(name string) Logger {
	return &zapLogger{z: l.z.Named(name), level: l.level}
}

func (l *zapLogger) Sync() error { return l.z.Sync() }

func (l *zapLogger) SetLevel(level LogLevel) { l.level.SetLevel(level.zapLevel()) }

// NewLogger builds a zap-backed Logger.  Unset fields default to level
// "info", format "json", stdout and stderr.  An explicitly empty (non-nil)
// OutputPaths is rejected.
func NewLogger(cfg LogConfig) (Logger, error) {
	if cfg.OutputPaths == nil {
		cfg.OutputPaths = []string{"stdout"}
	}
	if len(cfg.OutputPaths) == 0 {
		return nil, errors.New("logging: at least one output path is required")
	}
	if len(cfg.ErrorOutputPaths) == 0 {
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encoding := "json"
	if cfg.Format == "console" {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encoding = "console"
	}
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zap.NewAtomicLevelAt(cfg.Level.zapLevel())
	zapCfg := zap.Config{
		Level:            level,
		Development:      encoding == "console",
		Encoding:         encoding,
		EncoderConfig:    encCfg,
		OutputPaths:      cfg.OutputPaths,
		ErrorOutputPaths: cfg.ErrorOutputPaths,
	}
	z, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("logging: failed to build zap logger: %w", err)
	}
	return &zapLogger{z: z, level: level}, nil
}

// NewDefaultLogger returns an info-level JSON logger on stdout.
func NewDefaultLogger() Logger {
	l, err := NewLogger(LogConfig{Level: LevelInfo})
	if err != nil {
		return NewNopLogger()
	}
	return l
}

// NewDevelopmentLogger returns a debug-level console logger on stderr.
func NewDevelopmentLogger() Logger {
	l, err := NewLogger(LogConfig{Level: LevelDebug, Format: "console", OutputPaths: []string{"stderr"}})
	if err != nil {
		return NewNopLogger()
	}
	return l
}

// NewLoggerFromCore wraps an existing core, mostly for observed-log tests.
func NewLoggerFromCore(core zapcore.Core) Logger {
	return &zapLogger{z: zap.New(core), level: zap.NewAtomicLevelAt(zapcore.DebugLevel)}
}

// ─────────────────────────────────────────────────────────────────────────────
// nopLogger
// ─────────────────────────────────────────────────────────────────────────────

type nopLogger struct{}

func (nopLogger) Debug(string, ...Field)               {}
func (nopLogger) Info(string, ...Field)                {}
func (nopLogger) Warn(string, ...Field)                {}
func (nopLogger) Error(string, ...Field)               {}
func (nopLogger) Fatal(string, ...Field)               {}
func (n nopLogger) With(...Field) Logger               { return n }
func (n nopLogger) WithContext(context.Context) Logger { return n }
func (n nopLogger) WithError(error) Logger             { return n }
func (n nopLogger) Named(string) Logger                { return n }
func (nopLogger) Sync() error                          { return nil }

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger { return nopLogger{} }

// ─────────────────────────────────────────────────────────────────────────────
// Context helpers
// ─────────────────────────────────────────────────────────────────────────────

type requestIDKey struct{}

// WithRequestID stores a request id for later retrieval by WithContext.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the stored request id or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// SlowNativeCallThreshold is the duration above which LogNativeCall warns.
const SlowNativeCallThreshold = 500 * time.Millisecond

// LogNativeCall records the outcome of a single native function call.
func LogNativeCall(l Logger, function string, start time.Time, err error) {
	elapsed := time.Since(start)
	fields := []Field{
		String(FieldFunction, function),
		Float64(FieldDurationMS, float64(elapsed.Microseconds())/1000),
	}
	switch {
	case err != nil:
		l.WithError(err).Warn("native call failed", fields...)
	case elapsed > SlowNativeCallThreshold:
		l.Warn("slow native call", fields...)
	default:
		l.Debug("native call completed", fields...)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Process default
// ─────────────────────────────────────────────────────────────────────────────

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = nopLogger{}
)

// SetDefault replaces the process-wide Logger.  nil is ignored.
func SetDefault(l Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// Default returns the process-wide Logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

//Personal.AI order the ending
