package wlc

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleHandle is returned by accessors on a wrapper whose native
	// object has been destroyed.
	ErrStaleHandle = errors.New("stale handle")

	// ErrUnknownEventKind is returned when registering a handler for a name
	// outside the fixed event table.
	ErrUnknownEventKind = errors.New("unknown event kind")

	// ErrInitializationFailed is returned by Run when the native library
	// could not start.
	ErrInitializationFailed = errors.New("native initialization failed")

	// ErrAlreadyRunning is returned by Run while a compositor loop is active
	// in this process.
	ErrAlreadyRunning = errors.New("compositor already running")

	// ErrRejectedByNative is the target of NativeError.
	ErrRejectedByNative = errors.New("rejected by native library")

	// ErrHandlerFailure is the target of HandlerError.
	ErrHandlerFailure = errors.New("handler failure")
)

// NativeError reports a mutation the native library refused.
type NativeError struct {
	Op   string
	Code int
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("%s: rejected by native library (code %d)", e.Op, e.Code)
}

func (e *NativeError) Unwrap() error {
	return ErrRejectedByNative
}

// HandlerError records a handler that returned an error or panicked while
// servicing a native callback.
type HandlerError struct {
	Kind  EventKind
	Err   error
	Panic any
}

func (e *HandlerError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("%s handler panicked: %v", e.Kind, e.Panic)
	}
	return fmt.Sprintf("%s handler failed: %v", e.Kind, e.Err)
}

func (e *HandlerError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrHandlerFailure}
	}
	return []error{ErrHandlerFailure, e.Err}
}

func staleError(kind Kind, last Handle, op string) error {
	return fmt.Errorf("%s %s %s: %w", kind, last, op, ErrStaleHandle)
}
