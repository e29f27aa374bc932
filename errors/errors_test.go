package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseOpen,
				Kind:   KindIO,
				Detail: "write document bytes",
				Cause:  errors.New("disk full"),
			},
			contains: []string{"[open]", "io", "write document bytes", "caused by", "disk full"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRender,
				Kind:  KindWrongThread,
			},
			contains: []string{"[render]", "wrong_thread"},
		},
		{
			name:     "constructor detail",
			err:      NullHandle(PhaseOpen),
			contains: []string{"[open]", "null_handle", "null document handle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := IO(PhaseOpen, cause, "temp file")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_Is_MatchesPhaseAndKind(t *testing.T) {
	err := WrongThread(PhaseLayout)

	if !errors.Is(err, &Error{Phase: PhaseLayout, Kind: KindWrongThread}) {
		t.Error("should match same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseRender, Kind: KindWrongThread}) {
		t.Error("should not match a different phase")
	}
	if errors.Is(err, &Error{Phase: PhaseLayout, Kind: KindClosed}) {
		t.Error("should not match a different kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseEncode, KindInvalidInput).
		Cause(cause).
		Detail("page %d rejected", 3).
		Build()

	if err.Phase != PhaseEncode || err.Kind != KindInvalidInput {
		t.Errorf("built error = %+v", err)
	}
	if err.Detail != "page 3 rejected" {
		t.Errorf("detail = %q", err.Detail)
	}
	if err.Cause != cause {
		t.Error("cause not set")
	}
}

func TestPageOutOfBoundsError_Fields(t *testing.T) {
	var err error = PageOutOfBounds(PhaseRender, 7, 3)

	var oob *PageOutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatal("errors.As should recover *PageOutOfBoundsError")
	}
	if oob.Index != 7 || oob.Total != 3 {
		t.Errorf("fields = {%d %d}, want {7 3}", oob.Index, oob.Total)
	}
	if !strings.Contains(err.Error(), "page 7") || !strings.Contains(err.Error(), "3 pages") {
		t.Errorf("message %q missing index/total", err.Error())
	}
	if !errors.Is(err, &Error{Phase: PhaseRender, Kind: KindOutOfBounds}) {
		t.Error("should match the generic out_of_bounds kind")
	}
}

func TestSurfaceTooSmallError_Fields(t *testing.T) {
	var err error = SurfaceTooSmall(PhaseRender, 384000, 100)

	var sts *SurfaceTooSmallError
	if !errors.As(err, &sts) {
		t.Fatal("errors.As should recover *SurfaceTooSmallError")
	}
	if sts.Expected != 384000 || sts.Actual != 100 {
		t.Errorf("fields = {%d %d}, want {384000 100}", sts.Expected, sts.Actual)
	}
	if !errors.Is(err, &Error{Phase: PhaseRender, Kind: KindSurfaceTooSmall}) {
		t.Error("should match the generic surface_too_small kind")
	}
}
