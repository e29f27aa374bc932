// Package errors provides structured error types for the crengine wrapper.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Kind set is closed: every defined shim status code has an
// explicit mapping, and unrecognized codes fall back to KindInternal.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseOpen, errors.KindIO).
//		Cause(ioErr).
//		Detail("write document bytes to temp file").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.WrongThread(errors.PhaseRender)
//	err := errors.PageOutOfBounds(errors.PhaseRender, 7, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
// PageOutOfBoundsError and SurfaceTooSmallError are standalone types so that
// callers can recover the offending index/total and expected/actual sizes
// with errors.As.
package errors
