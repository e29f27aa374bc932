package shim

import "github.com/inkfold/crengine/errors"

// MapStatus translates a shim result code into the typed error taxonomy.
// The mapping is total: ResultOK maps to nil, the three failure codes map to
// their dedicated kinds, and any code the shim was not known to emit maps to
// an internal error. The shim is never trusted to stay within its documented
// range.
func MapStatus(phase errors.Phase, status Result) error {
	switch status {
	case ResultOK:
		return nil
	case ResultUnsupported:
		return errors.Unsupported(phase, "shim reported that the operation is unsupported")
	case ResultInvalidArgument:
		return errors.InvalidArgument(phase)
	case ResultInternalError:
		return errors.Internal(phase, "shim reported an internal error")
	default:
		return errors.Internal(phase, "shim returned an unrecognized status code")
	}
}
