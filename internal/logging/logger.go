package logging

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.SugaredLogger]

// Init builds the process logger: zap's production preset in production,
// the development preset otherwise, always JSON with ISO8601 times.
func Init(appEnv string) error {
	cfg := zap.NewDevelopmentConfig()
	if appEnv == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetLogger(logger)
	return nil
}

// SetLogger replaces the process logger. Tests use it with an observer core.
func SetLogger(l *zap.Logger) {
	current.Store(l.Sugar())
}

// GetLogger returns the process logger, falling back to zap's production
// preset when Init was never called.
func GetLogger() *zap.SugaredLogger {
	if l := current.Load(); l != nil {
		return l
	}
	fallback, _ := zap.NewProduction()
	current.CompareAndSwap(nil, fallback.Sugar())
	return current.Load()
}

// Close flushes buffered entries.
func Close() error {
	if l := current.Load(); l != nil {
		return l.Sync()
	}
	return nil
}

// helpers is GetLogger with the caller pointing past this package
func helpers() *zap.SugaredLogger {
	return GetLogger().WithOptions(zap.AddCallerSkip(1))
}

func Info(message string, fields ...interface{}) {
	helpers().Infow(message, fields...)
}

func Debug(message string, fields ...interface{}) {
	helpers().Debugw(message, fields...)
}

func Warn(message string, fields ...interface{}) {
	helpers().Warnw(message, fields...)
}

func Error(message string, fields ...interface{}) {
	helpers().Errorw(message, fields...)
}

// Fatal logs and exits the process with status 1.
func Fatal(message string, fields ...interface{}) {
	helpers().Fatalw(message, fields...)
}

// WithRequest returns a logger carrying the request's id, method and route.
func WithRequest(requestID, method, endpoint string) *zap.SugaredLogger {
	return GetLogger().With(
		"request_id", requestID,
		"method", method,
		"endpoint", endpoint,
	)
}
