package debug

import (
	"fmt"
	"io"
	"log/slog"
)

var (
	writer io.Writer = io.Discard
	logger           = newLogger(io.Discard)
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// SetOutput sets the debug output destination
func SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	writer = w
	logger = newLogger(w)
}

// Log writes a debug message
func Log(format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	logger.Debug(fmt.Sprintf(format, args...))
}

// Logger returns the structured logger behind Log
func Logger() *slog.Logger {
	return logger
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	return writer != io.Discard
}
