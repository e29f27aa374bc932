// Package syncplan builds transfer plans for pushing encoded books to a
// device mount point.
package syncplan

import "github.com/inkfold/crengine/errors"

// Plan lists the books queued for one sync run.
type Plan struct {
	Target string   `json:"target"`
	Books  []string `json:"books"`
}

// Build creates a plan for transferring books to target. At least one book
// must be queued.
func Build(target string, books []string) (*Plan, error) {
	if len(books) == 0 {
		return nil, errors.InvalidInput(errors.PhaseSync, "no books queued for sync")
	}
	return &Plan{Target: target, Books: books}, nil
}
