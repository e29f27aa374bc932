//go:build !(darwin || linux || freebsd)

package shim

import "github.com/inkfold/crengine/errors"

// Load reports that shim bindings are not available on this target.
func Load(path string) (Shim, error) {
	return nil, errors.UnsupportedTarget(errors.PhaseInit)
}

// LoadDefault reports that shim bindings are not available on this target.
func LoadDefault() (Shim, error) {
	return nil, errors.UnsupportedTarget(errors.PhaseInit)
}
