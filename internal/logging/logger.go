package logging

import (
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup initializes the global slog logger with JSON output to stdout. When
// logFile is non-empty the same records also go to a size-rotated file. The
// installed handler is returned so callers can layer further sinks on top.
func Setup(logFile string) slog.Handler {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	var handler slog.Handler = stdout
	if logFile != "" {
		rotated := slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}, &slog.HandlerOptions{Level: slog.LevelInfo})
		handler = NewMultiHandler(stdout, rotated)
	}

	slog.SetDefault(slog.New(handler))
	return handler
}
