package logging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	apperrors "github.com/turtacn/rdkit-go/pkg/errors"
)

func newTestLogger(t *testing.T) (Logger, *zaptest.Buffer) {
	t.Helper()
	buf := &zaptest.Buffer{}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), buf, level)
	return &zapLogger{z: zap.New(core), level: level}, buf
}

func TestNewLogger_JSONFormat(t *testing.T) {
	l, err := NewLogger(LogConfig{Level: LevelInfo, Format: "json", OutputPaths: []string{"stdout"}})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	l, err := NewLogger(LogConfig{Level: LevelDebug, Format: "console", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewLogger_EmptyOutputPaths(t *testing.T) {
	l, err := NewLogger(LogConfig{OutputPaths: []string{}})
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestNewLogger_NilOutputPathsDefaults(t *testing.T) {
	l, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewDefaultAndDevelopmentLoggers(t *testing.T) {
	assert.NotNil(t, NewDefaultLogger())
	assert.NotNil(t, NewDevelopmentLogger())
}

func TestNopLogger_AllMethodsNoOp(t *testing.T) {
	l := NewNopLogger()
	l.Debug("msg")
	l.Info("msg")
	l.Warn("msg")
	l.Error("msg")
	l.Fatal("msg")
	assert.Equal(t, l, l.With(String("k", "v")))
	assert.Equal(t, l, l.WithContext(context.Background()))
	assert.Equal(t, l, l.WithError(errors.New("err")))
	assert.Equal(t, l, l.Named("x"))
	assert.NoError(t, l.Sync())
}

func TestZapLogger_Levels(t *testing.T) {
	cases := []struct {
		level string
		log   func(Logger)
	}{
		{"debug", func(l Logger) { l.Debug("hello") }},
		{"info", func(l Logger) { l.Info("hello") }},
		{"warn", func(l Logger) { l.Warn("hello") }},
		{"error", func(l Logger) { l.Error("hello") }},
	}
	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			l, buf := newTestLogger(t)
			tc.log(l)
			assert.Contains(t, buf.String(), "hello")
			assert.Contains(t, buf.String(), `"level":"`+tc.level+`"`)
		})
	}
}

func TestZapLogger_With_AddsFields(t *testing.T) {
	l, buf := newTestLogger(t)
	l.With(String("smiles", "CCO")).Info("msg")
	assert.Contains(t, buf.String(), `"smiles":"CCO"`)
}

func TestZapLogger_WithContext_ExtractsRequestID(t *testing.T) {
	l, buf := newTestLogger(t)
	ctx := WithRequestID(context.Background(), "req-123")
	l.WithContext(ctx).Info("msg")
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
}

func TestZapLogger_WithContext_NoRequestID(t *testing.T) {
	l, buf := newTestLogger(t)
	l.WithContext(context.Background()).Info("msg")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestZapLogger_WithError_AppError(t *testing.T) {
	l, buf := newTestLogger(t)
	appErr := apperrors.New(apperrors.ErrCodeRDKitBadStatus, "bad status: 0")
	l.WithError(appErr).Error("msg")
	assert.Contains(t, buf.String(), `"error_code":"RDK_003"`)
	assert.Contains(t, buf.String(), `"error":"[RDK_003] bad status: 0"`)
}

func TestZapLogger_WithError_StandardError(t *testing.T) {
	l, buf := newTestLogger(t)
	l.WithError(errors.New("std error")).Error("msg")
	assert.Contains(t, buf.String(), `"error":"std error"`)
	assert.NotContains(t, buf.String(), "error_code")
}

func TestZapLogger_WithError_Nil(t *testing.T) {
	l, buf := newTestLogger(t)
	l.WithError(nil).Info("msg")
	assert.NotContains(t, buf.String(), `"error"`)
}

func TestZapLogger_SetLevel(t *testing.T) {
	l, buf := newTestLogger(t)
	setter, ok := l.(LevelSetter)
	require.True(t, ok)

	setter.SetLevel(LevelError)
	l.Info("suppressed")
	assert.NotContains(t, buf.String(), "suppressed")

	setter.SetLevel(LevelDebug)
	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestZapLogger_Named(t *testing.T) {
	l, buf := newTestLogger(t)
	l.Named("native").Info("msg")
	assert.Contains(t, buf.String(), `"logger":"native"`)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"Error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "debug", LevelDebug.String())
}

func TestLogNativeCall_Success(t *testing.T) {
	l, buf := newTestLogger(t)
	LogNativeCall(l, "get_smiles", time.Now(), nil)
	assert.Contains(t, buf.String(), "native call completed")
	assert.Contains(t, buf.String(), `"function":"get_smiles"`)
	assert.Contains(t, buf.String(), FieldDurationMS)
}

func TestLogNativeCall_Failure(t *testing.T) {
	l, buf := newTestLogger(t)
	LogNativeCall(l, "cleanup", time.Now(), errors.New("bad status: 0"))
	assert.Contains(t, buf.String(), "native call failed")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestLogNativeCall_Slow(t *testing.T) {
	l, buf := newTestLogger(t)
	LogNativeCall(l, "set_3d_coords", time.Now().Add(-2*SlowNativeCallThreshold), nil)
	assert.Contains(t, buf.String(), "slow native call")
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	l := NewNopLogger()
	SetDefault(l)
	assert.Equal(t, l, Default())

	SetDefault(nil)
	assert.Equal(t, l, Default())
}

func TestErr_NilIsSkipped(t *testing.T) {
	assert.Equal(t, zapcore.SkipType, Err(nil).Type)
	assert.Equal(t, zapcore.StringType, Err(errors.New("x")).Type)
}

//Personal.AI order the ending
