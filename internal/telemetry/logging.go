package telemetry

import (
	"log/slog"
	"os"
)

// LogLevel lê o nível do ambiente (DEBUG, INFO, WARN, ERROR; padrão INFO).
func LogLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger inicializa o logger global. LOG_FORMAT=text para
// desenvolvimento; JSON por padrão.
func SetupLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: LogLevel(),
	}

	var handler slog.Handler
	if os.Getenv("LOG_FORMAT") == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
