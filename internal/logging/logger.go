package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "LEDCTL_LOG_LEVEL"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks LEDCTL_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
// outputPath selects the destination; empty means stderr.
func Initialize(level, outputPath string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	if outputPath == "" {
		outputPath = "stderr"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{outputPath},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if outputPath == "stderr" || outputPath == "stdout" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built

	return nil
}

// ParseLevel maps a level name to a zap level.
// Unknown names fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogRequestStart logs a device request as it leaves the client
func LogRequestStart(id, method, url string, body []byte) {
	Info("Device request sent",
		zap.String("request_id", id),
		zap.String("method", method),
		zap.String("url", url),
	)
	if len(body) > 0 {
		Debug("Device request body",
			zap.String("request_id", id),
			zap.String("body", truncate(body, 512)),
		)
	}
}

// LogRequestEnd logs the outcome of a device request.
// state is the lifecycle state name ("succeeded", "failed", "timed_out").
func LogRequestEnd(id, state string, statusCode int, elapsed time.Duration, err error) {
	fields := []zap.Field{
		zap.String("request_id", id),
		zap.String("state", state),
		zap.Duration("elapsed", elapsed),
	}
	if statusCode != 0 {
		fields = append(fields, zap.Int("status_code", statusCode))
	}

	switch {
	case err == nil:
		Info("Device request completed", fields...)
	case statusCode != 0:
		Warn("Device rejected request", append(fields, zap.Error(err))...)
	default:
		Error("Device request failed", append(fields, zap.Error(err))...)
	}
}

func truncate(data []byte, max int) string {
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
