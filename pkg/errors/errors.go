// Package errors provides structured error handling for the Sable runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindTypeMismatch indicates a downcast against the wrong type tag.
	KindTypeMismatch
	// KindBorrow indicates a borrow-conflict on a shared handle.
	KindBorrow
	// KindDispatch indicates a failure while dispatching an event callback.
	KindDispatch
	// KindRender indicates a failure while regenerating a document tree.
	KindRender
	// KindInit indicates an initialization error.
	KindInit
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindTypeMismatch:
		return "type-mismatch"
	case KindBorrow:
		return "borrow-conflict"
	case KindDispatch:
		return "dispatch"
	case KindRender:
		return "render"
	case KindInit:
		return "init"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// SableError represents a structured error in the Sable runtime.
type SableError struct {
	// Op is the operation that failed (e.g., "runtime.Regenerate").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Window is the window identifier, if applicable.
	Window string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *SableError) Error() string {
	if e.Window != "" {
		return fmt.Sprintf("%s [%s] window=%s: %v", e.Op, e.Kind, e.Window, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *SableError) Unwrap() error {
	return e.Err
}

// TypeMismatchError reports a downcast whose requested type tag does not
// match the tag stored in the handle. It is always recoverable: the caller
// asked for the wrong type and nothing was borrowed.
type TypeMismatchError struct {
	// Op is the access that failed ("refdata.DowncastRef" or "refdata.DowncastMut").
	Op string
	// Want is the tag name the caller requested.
	Want string
	// Got is the tag name stored in the handle.
	Got string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: type mismatch: requested %q, handle holds %q", e.Op, e.Want, e.Got)
}

// BorrowError reports a borrow request that conflicts with an outstanding
// borrow on the same handle. The runtime never retries; the caller decides.
type BorrowError struct {
	// Op is the access that failed.
	Op string
	// Requested is the access mode that was denied ("shared" or "exclusive").
	Requested string
	// Active describes the outstanding borrow ("shared" or "exclusive").
	Active string
}

func (e *BorrowError) Error() string {
	return fmt.Sprintf("%s: borrow conflict: %s access denied while %s borrow is active", e.Op, e.Requested, e.Active)
}

// RenderError represents a failure while invoking a render function.
type RenderError struct {
	// Window identifies the window whose tree was being regenerated.
	Window string
	// Err is the underlying error.
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed for window %s: %v", e.Window, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "dispatch.Invoke").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the Sable runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *SableError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
