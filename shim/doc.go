// Package shim is the low-level binding layer for the CREngine-NG C shim.
//
// The shim exposes five calls: open, close, layout, page-count and render.
// Each returns a status from a small closed set of result codes; MapStatus
// translates those codes into the wrapper's typed errors and conservatively
// maps anything unrecognized to an internal error.
//
// Two backends implement the Shim interface:
//
//   - Load / LoadDefault bind a prebuilt shared library with dlopen
//     (no cgo; unavailable targets get an unsupported_target error).
//   - NewWASM runs the shim compiled to wasm32-wasi under wazero, with the
//     host temp directory preopened so opened documents are readable.
//
// Nothing in this package is thread-affine by itself; affinity is enforced
// one level up, in the reader package, before any call reaches a backend.
package shim
