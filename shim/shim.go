package shim

import (
	crengine "github.com/inkfold/crengine"
)

// Result is a status code returned by shim calls. The set is closed on the
// C side but must be treated as open here: codes outside the defined range
// map to an internal error.
type Result uint32

const (
	ResultOK              Result = 0
	ResultUnsupported     Result = 1
	ResultInvalidArgument Result = 2
	ResultInternalError   Result = 3
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultUnsupported:
		return "unsupported"
	case ResultInvalidArgument:
		return "invalid_argument"
	case ResultInternalError:
		return "internal_error"
	default:
		return "unknown"
	}
}

// Handle is an opaque document handle owned by the shim. Zero is the null
// handle and never valid after a successful open.
type Handle uintptr

// Shim is the backend interface over the five native calls. Implementations
// are not required to be safe for concurrent use; the reader layer
// serializes access by construction.
type Shim interface {
	// OpenDocument opens the document at path. The handle is only
	// meaningful when the result is ResultOK and the handle is non-zero.
	OpenDocument(path string) (Handle, Result)

	// CloseDocument releases a handle. Passing the null handle is a no-op.
	CloseDocument(h Handle)

	// LayoutDocument repaginates the document with the given preferences.
	LayoutDocument(h Handle, cfg crengine.LayoutConfig) Result

	// PageCount reports the page count produced by the last layout run,
	// zero if the document was never laid out.
	PageCount(h Handle) (uint32, Result)

	// RenderPage renders one page into the caller-supplied surface. The
	// surface buffer is mutated in place.
	RenderPage(h Handle, pageIndex uint32, surface *crengine.Surface) Result
}
