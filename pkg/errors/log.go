package errors

import (
	"fmt"
	"os"
)

// LogHandler is an ErrorHandler that logs to stderr.
type LogHandler struct {
	// Verbose enables timestamps on cleanup failures.
	Verbose bool
}

// HandleCleanup logs a CleanupError to stderr.
func (h *LogHandler) HandleCleanup(err *CleanupError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[vivid cleanup] %s at %s: %v\n", err.Resource, err.Timestamp.Format("15:04:05.000"), err.Value)
		return
	}
	fmt.Fprintf(os.Stderr, "[vivid cleanup] %s: %v\n", err.Resource, err.Value)
}
