package utils

import (
	"io"
	"log/slog"
)

// CloseWithLog closes c and logs a failure instead of returning it, for use
// in defers where a close error must not override the primary error.
func CloseWithLog(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}

// TruncateString shortens s to at most max runes, appending an ellipsis when
// something was cut. Used to keep error messages readable when a response
// body is embedded in them.
func TruncateString(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
