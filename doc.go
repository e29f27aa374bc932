// Package crengine provides Go bindings for the CREngine-NG document shim.
//
// The upstream engine is a single-threaded, stateful native renderer. This
// module wraps its C shim in a handle-lifecycle API with enforced thread
// affinity, bounds-checked rendering, and a typed error taxonomy.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	crengine/            Root package with shared value types and Canvas
//	├── reader/          High-level API: Engine, Document, Page
//	├── shim/            Low-level shim binding (dlopen and wasm backends)
//	├── errors/          Structured error types for debugging
//	├── library/         Book metadata lookup
//	├── encoder/         Gray8 to 1bpp page encoding with ordered dithering
//	├── syncplan/        Device sync planning
//	└── xtc/             XTC page container format
//
// # Quick Start
//
//	eng, err := reader.Initialize(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Shutdown()
//
//	doc, err := eng.LoadEPUBFromBytes(epubBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	pages, err := doc.Layout(crengine.DefaultLayoutConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	canvas := crengine.Gray8Target()
//	for i := uint32(0); i < pages; i++ {
//	    if err := doc.RenderPage(i, canvas); err != nil {
//	        log.Fatal(err)
//	    }
//	    // canvas.Bytes() now holds the rendered page
//	}
//
// # Thread Safety
//
// The underlying engine is NOT thread-safe and keeps mutable per-document
// state. Every Engine and Document is pinned to the goroutine that created
// it; any operation from another goroutine fails with a wrong_thread error
// before the native layer is touched. Handles cannot be transferred between
// goroutines, even with external synchronization.
//
// # Resource Management
//
// Always close documents when done. Closing releases the native handle and
// removes the temporary backing file the input bytes were materialized into.
package crengine
