package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseInit    Phase = "init"    // engine initialization
	PhaseOpen    Phase = "open"    // document opening
	PhaseLayout  Phase = "layout"  // pagination
	PhaseRender  Phase = "render"  // page rendering
	PhaseExtract Phase = "extract" // TOC / text extraction
	PhaseClose   Phase = "close"   // document teardown
	PhaseEncode  Phase = "encode"  // page buffer encoding
	PhaseLibrary Phase = "library" // book metadata lookup
	PhaseSync    Phase = "sync"    // device sync planning
)

// Kind categorizes the error
type Kind string

const (
	// KindUnsupportedTarget means the platform has no shim bindings
	// compiled in.
	KindUnsupportedTarget Kind = "unsupported_target"
	// KindNullHandle means the shim reported success but returned a null
	// document handle.
	KindNullHandle Kind = "null_handle"
	// KindWrongThread means a handle was used from a goroutine other than
	// the one that created it.
	KindWrongThread Kind = "wrong_thread"
	// KindClosed means a handle was used after Close.
	KindClosed Kind = "closed"

	// Direct shim status translations.
	KindInvalidArgument Kind = "invalid_argument"
	KindUnsupported     Kind = "unsupported"
	KindInternal        Kind = "internal"

	// KindOutOfBounds means a page index was outside the laid-out range.
	KindOutOfBounds Kind = "out_of_bounds"
	// KindSurfaceTooSmall means the canvas buffer cannot hold stride*height
	// bytes.
	KindSurfaceTooSmall Kind = "surface_too_small"
	// KindFfi means a path or string could not be represented in the
	// shim's expected encoding.
	KindFfi Kind = "ffi"
	// KindIO means an I/O failure while preparing input for the engine.
	KindIO Kind = "io"

	KindNotFound     Kind = "not_found"
	KindInvalidInput Kind = "invalid_input"
)

// Error is the structured error type used throughout the wrapper
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedTarget creates an error for platforms without shim bindings
func UnsupportedTarget(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedTarget,
		Detail: "crengine shim is unavailable on this target",
	}
}

// NullHandle creates an error for a null handle returned alongside an OK status
func NullHandle(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullHandle,
		Detail: "shim returned a null document handle",
	}
}

// WrongThread creates an error for cross-goroutine handle use
func WrongThread(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindWrongThread,
		Detail: "handles must be used on the goroutine where they were created",
	}
}

// Closed creates an error for use of a closed handle
func Closed(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: "document handle is closed",
	}
}

// InvalidArgument creates an error for a shim INVALID_ARGUMENT status
func InvalidArgument(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: "shim rejected the call due to an invalid argument",
	}
}

// Unsupported creates an error for a shim UNSUPPORTED status or an
// operation the wrapper does not implement
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Internal creates an error for a shim INTERNAL_ERROR status, including
// any unrecognized status code
func Internal(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInternal,
		Detail: detail,
	}
}

// Ffi creates an error for a failed string/path conversion at the shim boundary
func Ffi(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFfi,
		Detail: detail,
	}
}

// IO wraps an I/O failure while preparing engine input
func IO(phase Phase, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// PageOutOfBoundsError is returned when a page index is at or past the
// cached page count. Index and Total are exposed so callers can react,
// for example by re-running layout.
type PageOutOfBoundsError struct {
	Phase Phase
	Index uint32
	Total uint32
}

// PageOutOfBounds creates a page bounds error
func PageOutOfBounds(phase Phase, index, total uint32) *PageOutOfBoundsError {
	return &PageOutOfBoundsError{Phase: phase, Index: index, Total: total}
}

func (e *PageOutOfBoundsError) Error() string {
	return fmt.Sprintf("[%s] %s: page %d is out of bounds for a document with %d pages",
		e.Phase, KindOutOfBounds, e.Index, e.Total)
}

// Is reports whether target matches this error type
func (e *PageOutOfBoundsError) Is(target error) bool {
	if t, ok := target.(*PageOutOfBoundsError); ok {
		return e.Index == t.Index && e.Total == t.Total
	}
	if t, ok := target.(*Error); ok {
		return t.Kind == KindOutOfBounds && (t.Phase == "" || t.Phase == e.Phase)
	}
	return false
}

// SurfaceTooSmallError is returned when a canvas buffer is shorter than
// stride*height. Expected and Actual are exposed so callers can reallocate.
type SurfaceTooSmallError struct {
	Phase    Phase
	Expected int
	Actual   int
}

// SurfaceTooSmall creates a surface size error
func SurfaceTooSmall(phase Phase, expected, actual int) *SurfaceTooSmallError {
	return &SurfaceTooSmallError{Phase: phase, Expected: expected, Actual: actual}
}

func (e *SurfaceTooSmallError) Error() string {
	return fmt.Sprintf("[%s] %s: surface buffer too small: expected at least %d bytes, got %d",
		e.Phase, KindSurfaceTooSmall, e.Expected, e.Actual)
}

// Is reports whether target matches this error type
func (e *SurfaceTooSmallError) Is(target error) bool {
	if t, ok := target.(*SurfaceTooSmallError); ok {
		return e.Expected == t.Expected && e.Actual == t.Actual
	}
	if t, ok := target.(*Error); ok {
		return t.Kind == KindSurfaceTooSmall && (t.Phase == "" || t.Phase == e.Phase)
	}
	return false
}
