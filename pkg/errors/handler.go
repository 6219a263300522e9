package errors

import (
	"sync"
	"time"
)

// ErrorHandler receives non-propagated errors from the host runtime.
type ErrorHandler interface {
	// HandleCleanup receives a teardown failure that was swallowed so the
	// rest of teardown could proceed.
	HandleCleanup(err *CleanupError)
}

var (
	handlerMu sync.RWMutex

	// defaultHandler is the global error handler, a stderr logger unless
	// replaced via SetHandler.
	defaultHandler ErrorHandler = &LogHandler{}
)

// SetHandler configures the global error handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		defaultHandler = &LogHandler{}
	} else {
		defaultHandler = h
	}
}

func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return defaultHandler
}

// ReportCleanup sends a cleanup failure to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func ReportCleanup(err *CleanupError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleCleanup(err)
	}
}

// SafeRelease runs one teardown step, converting a panic or returned error
// into a reported-and-swallowed CleanupError. It never propagates: one
// failing release must not block releasing the others.
func SafeRelease(resource string, release func() error) {
	defer func() {
		if r := recover(); r != nil {
			ReportCleanup(&CleanupError{Resource: resource, Value: r})
		}
	}()
	if release == nil {
		return
	}
	if err := release(); err != nil {
		ReportCleanup(&CleanupError{Resource: resource, Value: err})
	}
}
