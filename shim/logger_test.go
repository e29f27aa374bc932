package shim

import "testing"

func TestLogger_SharedInstance(t *testing.T) {
	first := Logger()
	if first == nil {
		t.Fatal("expected a logger instance")
	}
	if Logger() != first {
		t.Fatal("expected every call to return the same logger")
	}
}

func TestDebugf_SafeWhenDisabled(t *testing.T) {
	// Must not panic or format anything when the logger is a nop.
	debugf("bound shim library %s", "libtest.so")
}
