package logger

import (
	"os"
	"strings"

	"github.com/samvad-hq/responder-client/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package-level logger to be used across packages after Init.
var S *zap.SugaredLogger

// Logger is the structured logging surface shared by the app and the pkg/ libraries.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// ZapLogger implements Logger on top of a zap.Logger.
type ZapLogger struct {
	l *zap.Logger
}

// NewZapLogger wraps an existing zap logger.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{l: l}
}

func (z *ZapLogger) InfoObj(msg, key string, obj interface{})  { z.l.Info(msg, zap.Any(key, obj)) }
func (z *ZapLogger) DebugObj(msg, key string, obj interface{}) { z.l.Debug(msg, zap.Any(key, obj)) }
func (z *ZapLogger) WarnObj(msg, key string, obj interface{})  { z.l.Warn(msg, zap.Any(key, obj)) }
func (z *ZapLogger) ErrorObj(msg, key string, obj interface{}) { z.l.Error(msg, zap.Any(key, obj)) }

// NopLogger discards everything.
type NopLogger struct{}

func (*NopLogger) InfoObj(string, string, interface{})  {}
func (*NopLogger) DebugObj(string, string, interface{}) {}
func (*NopLogger) WarnObj(string, string, interface{})  {}
func (*NopLogger) ErrorObj(string, string, interface{}) {}

// parseLevel accepts zap level names plus "warning"; anything else is info.
func parseLevel(s string) zapcore.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Init builds the JSON logger from config and installs it as S. Logs go
// to stderr; stdout carries command output.
func Init(cfg *config.Config) (Logger, error) {
	return initWithSink(cfg, zapcore.Lock(os.Stderr))
}

func initWithSink(cfg *config.Config, sink zapcore.WriteSyncer) (Logger, error) {
	level := zapcore.InfoLevel
	fields := []zap.Field{}
	if cfg != nil {
		level = parseLevel(cfg.LogLevel)
		fields = append(fields, zap.String("app", cfg.AppName), zap.String("env", cfg.Env))
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), sink, level)
	l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).With(fields...)
	S = l.Sugar()
	return NewZapLogger(l), nil
}

// Close flushes the installed logger.
func Close() error {
	if S == nil {
		return nil
	}
	return S.Sync()
}

// current returns the installed logger, or a no-op before Init.
func current() Logger {
	if S == nil {
		return &NopLogger{}
	}
	return NewZapLogger(S.Desugar())
}

// Package-level helpers log obj as a single structured field named key.
func InfoObj(msg, key string, obj interface{})  { current().InfoObj(msg, key, obj) }
func DebugObj(msg, key string, obj interface{}) { current().DebugObj(msg, key, obj) }
func WarnObj(msg, key string, obj interface{})  { current().WarnObj(msg, key, obj) }
func ErrorObj(msg, key string, obj interface{}) { current().ErrorObj(msg, key, obj) }
