package syncplan

import (
	stderrors "errors"
	"testing"

	"github.com/inkfold/crengine/errors"
)

func TestBuild_RequiresBooks(t *testing.T) {
	_, err := Build("/mnt/device", nil)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseSync, Kind: errors.KindInvalidInput}) {
		t.Fatalf("build = %v, want invalid_input", err)
	}
}

func TestBuild_TracksTargetAndBooks(t *testing.T) {
	plan, err := Build("/mnt/device", []string{"book.xtc"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if plan.Target != "/mnt/device" {
		t.Errorf("target = %q", plan.Target)
	}
	if len(plan.Books) != 1 || plan.Books[0] != "book.xtc" {
		t.Errorf("books = %v", plan.Books)
	}
}
