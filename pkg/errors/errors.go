// Package errors provides structured error handling for the Vivid host
// runtime.
//
// Every fatal mount failure is one of a small set of typed errors carrying
// the effect id it concerns. Cleanup failures are a special case: they are
// reported through the global handler and swallowed, because teardown must
// always proceed to release the remaining resources.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorKind identifies the category of a host error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindLoad indicates the effect module asset could not be obtained.
	KindLoad
	// KindHostInit indicates the renderer or surface could not be created.
	KindHostInit
	// KindInstantiation indicates no export candidate could be constructed.
	KindInstantiation
	// KindLifecycle indicates a setup or init call failed.
	KindLifecycle
	// KindCleanup indicates a failure during teardown.
	KindCleanup
)

func (k ErrorKind) String() string {
	switch k {
	case KindLoad:
		return "load"
	case KindHostInit:
		return "host-init"
	case KindInstantiation:
		return "instantiation"
	case KindLifecycle:
		return "lifecycle"
	case KindCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// LoadError indicates the effect module asset could not be obtained.
// Fatal for the mount attempt.
type LoadError struct {
	// EffectID is the catalog id of the effect whose module failed to load.
	EffectID string
	// Err is the underlying error.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s [%s]: %v", e.EffectID, KindLoad, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// HostInitError indicates the renderer or rendering surface could not be
// created. Fatal for the mount attempt.
type HostInitError struct {
	EffectID string
	Err      error
}

func (e *HostInitError) Error() string {
	return fmt.Sprintf("host init %s [%s]: %v", e.EffectID, KindHostInit, e.Err)
}

func (e *HostInitError) Unwrap() error { return e.Err }

// InstantiationError indicates that no candidate among the attempted export
// names could be constructed. Attempted carries the names tried, in order,
// for diagnosis.
type InstantiationError struct {
	EffectID  string
	Attempted []string
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("instantiate %s [%s]: no constructible candidate among [%s]",
		e.EffectID, KindInstantiation, strings.Join(e.Attempted, ", "))
}

// LifecycleError indicates that setup or a declared init call failed.
// The partially-constructed instance has already been torn down by the
// time this error reaches the caller.
type LifecycleError struct {
	EffectID string
	// Step names the lifecycle step that failed ("setup" or "init:<method>").
	Step string
	Err  error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("lifecycle %s [%s] step=%s: %v", e.EffectID, KindLifecycle, e.Step, e.Err)
}

func (e *LifecycleError) Unwrap() error { return e.Err }

// CleanupError records a failure while releasing one resource during
// teardown. It is never returned to callers; it flows to the global
// handler so the remaining resources can still be released.
type CleanupError struct {
	// Resource names the resource whose release failed
	// (e.g. "renderer", "scheduler", "component").
	Resource string
	// Value is the recovered panic value or error.
	Value any
	// Timestamp is when the failure occurred.
	Timestamp time.Time
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup %s [%s]: %v", e.Resource, KindCleanup, e.Value)
}
