// Package reader provides the safe, high-level API over the CREngine shim.
//
// # Quick Start
//
//	eng, err := reader.Initialize(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Shutdown()
//
//	doc, err := eng.LoadEPUBFromBytes(bytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	pages, err := doc.Layout(crengine.DefaultLayoutConfig())
//	canvas := crengine.Gray8Target()
//	err = doc.RenderPage(0, canvas)
//
// # Thread Affinity
//
// The underlying engine keeps mutable global and per-document state and is
// unsafe to touch from more than one logical thread of control. Engine and
// Document therefore record the goroutine they were created on; every
// operation checks it first and fails with a wrong_thread error before the
// shim is touched. Initialize additionally pins its goroutine to an OS
// thread so the engine also observes a stable native thread.
//
// Handles cannot be handed to another goroutine, even when no two
// goroutines would touch them concurrently.
//
// # Lifecycle
//
// Loading a document writes the input bytes to a private temporary file and
// opens it through the shim; the temp file lives exactly as long as the
// document handle. Close releases the native handle, then removes the temp
// file, exactly once; it is safe to call from any exit path.
package reader
