package reader

import (
	"bytes"
	"runtime"
	"strconv"

	"github.com/inkfold/crengine/errors"
)

// affinity is the capability token recording the goroutine a handle was
// created on. Embedding it and calling check first makes an operation
// thread-affine.
type affinity struct {
	gid uint64
}

func currentAffinity() affinity {
	return affinity{gid: goroutineID()}
}

// check fails with a wrong_thread error when called from a goroutine other
// than the one that created the token. It must run before any shim call.
func (a affinity) check(phase errors.Phase) error {
	if goroutineID() != a.gid {
		return errors.WrongThread(phase)
	}
	return nil
}

// goroutineID extracts the current goroutine id from the runtime.Stack
// header ("goroutine 123 [running]:"). The runtime exposes no stable API
// for this; the header format has been unchanged since Go 1.0.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	id, err := strconv.ParseUint(string(s), 10, 64)
	if err != nil {
		// Unparseable header would break every affinity check; this is
		// a caller-independent runtime invariant violation.
		panic("reader: cannot parse goroutine id from stack header: " + string(buf[:n]))
	}
	return id
}
