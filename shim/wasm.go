package shim

import (
	"context"
	"fmt"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	crengine "github.com/inkfold/crengine"
	"github.com/inkfold/crengine/errors"
)

// WASMConfig holds configuration for the wasm shim backend.
type WASMConfig struct {
	// Mounts maps host directories to guest paths. When empty the host
	// temp directory is preopened at its own path so the shim can read
	// the temp files the reader layer materializes documents into.
	Mounts map[string]string

	// MemoryLimitPages caps guest memory in 64KB pages. 0 means the
	// wazero default.
	MemoryLimitPages uint32
}

// WASMShim runs the CREngine shim compiled to wasm32-wasi under wazero.
//
// The guest module must export the five cre_* calls plus malloc and free
// for transfer buffers. A reactor-style _initialize export, if present, is
// run once at construction.
type WASMShim struct {
	ctx     context.Context
	runtime wazero.Runtime
	module  api.Module
	log     *zap.Logger

	open      api.Function
	close     api.Function
	layout    api.Function
	pageCount api.Function
	render    api.Function
	malloc    api.Function
	free      api.Function
}

var _ Shim = (*WASMShim)(nil)

// NewWASM instantiates the shim from a wasm binary. The context is retained
// and used for every shim call; it should outlive the returned backend.
func NewWASM(ctx context.Context, wasmBytes []byte, cfg *WASMConfig) (*WASMShim, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	r := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	wasi_snapshot_preview1.MustInstantiate(ctx, r)

	mounts := map[string]string{os.TempDir(): os.TempDir()}
	if cfg != nil && len(cfg.Mounts) > 0 {
		mounts = cfg.Mounts
	}
	fsCfg := wazero.NewFSConfig()
	for host, guest := range mounts {
		fsCfg = fsCfg.WithDirMount(host, guest)
	}

	modCfg := wazero.NewModuleConfig().
		WithFSConfig(fsCfg).
		WithStartFunctions() // reactor module; run _initialize manually below

	mod, err := r.InstantiateWithConfig(ctx, wasmBytes, modCfg)
	if err != nil {
		r.Close(ctx)
		return nil, errors.Wrap(errors.PhaseInit, errors.KindInternal, err, "instantiate wasm shim")
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			r.Close(ctx)
			return nil, errors.Wrap(errors.PhaseInit, errors.KindInternal, err, "run _initialize")
		}
	}

	w := &WASMShim{ctx: ctx, runtime: r, module: mod, log: Logger()}
	for _, exp := range []struct {
		name string
		fn   *api.Function
	}{
		{"cre_open_document", &w.open},
		{"cre_close_document", &w.close},
		{"cre_layout_document", &w.layout},
		{"cre_page_count", &w.pageCount},
		{"cre_render_page", &w.render},
		{"malloc", &w.malloc},
		{"free", &w.free},
	} {
		f := mod.ExportedFunction(exp.name)
		if f == nil {
			r.Close(ctx)
			return nil, errors.New(errors.PhaseInit, errors.KindUnsupportedTarget).
				Detail("wasm shim does not export %s", exp.name).Build()
		}
		*exp.fn = f
	}

	return w, nil
}

// Close releases the wazero runtime and all guest memory. Documents opened
// through this shim must be closed first.
func (w *WASMShim) Close() error {
	return w.runtime.Close(w.ctx)
}

func (w *WASMShim) alloc(size uint32) (uint32, error) {
	res, err := w.malloc.Call(w.ctx, uint64(size))
	if err != nil {
		return 0, err
	}
	ptr := uint32(res[0])
	if ptr == 0 {
		return 0, fmt.Errorf("guest malloc(%d) returned null", size)
	}
	return ptr, nil
}

func (w *WASMShim) release(ptr uint32) {
	if ptr == 0 {
		return
	}
	if _, err := w.free.Call(w.ctx, uint64(ptr)); err != nil {
		w.log.Warn("guest free failed", zap.Error(err))
	}
}

func (w *WASMShim) OpenDocument(path string) (Handle, Result) {
	mem := w.module.Memory()

	pathPtr, err := w.alloc(uint32(len(path)) + 1)
	if err != nil {
		return 0, ResultInternalError
	}
	defer w.release(pathPtr)
	if !mem.Write(pathPtr, append([]byte(path), 0)) {
		return 0, ResultInternalError
	}

	statusPtr, err := w.alloc(4)
	if err != nil {
		return 0, ResultInternalError
	}
	defer w.release(statusPtr)

	res, err := w.open.Call(w.ctx, uint64(pathPtr), uint64(statusPtr))
	if err != nil {
		w.log.Warn("cre_open_document trapped", zap.Error(err))
		return 0, ResultInternalError
	}
	status, ok := mem.ReadUint32Le(statusPtr)
	if !ok {
		return 0, ResultInternalError
	}
	return Handle(uint32(res[0])), Result(status)
}

func (w *WASMShim) CloseDocument(h Handle) {
	if h == 0 {
		return
	}
	if _, err := w.close.Call(w.ctx, uint64(h)); err != nil {
		w.log.Warn("cre_close_document trapped", zap.Error(err))
	}
}

func (w *WASMShim) LayoutDocument(h Handle, cfg crengine.LayoutConfig) Result {
	mem := w.module.Memory()

	cfgPtr, err := w.alloc(12)
	if err != nil {
		return ResultInternalError
	}
	defer w.release(cfgPtr)

	ok := mem.WriteUint32Le(cfgPtr, cfg.FontSize) &&
		mem.WriteUint32Le(cfgPtr+4, cfg.LineHeightPercent) &&
		mem.WriteUint32Le(cfgPtr+8, cfg.PageMarginDP)
	if !ok {
		return ResultInternalError
	}

	res, err := w.layout.Call(w.ctx, uint64(h), uint64(cfgPtr))
	if err != nil {
		w.log.Warn("cre_layout_document trapped", zap.Error(err))
		return ResultInternalError
	}
	return Result(uint32(res[0]))
}

func (w *WASMShim) PageCount(h Handle) (uint32, Result) {
	mem := w.module.Memory()

	outPtr, err := w.alloc(4)
	if err != nil {
		return 0, ResultInternalError
	}
	defer w.release(outPtr)

	res, err := w.pageCount.Call(w.ctx, uint64(h), uint64(outPtr))
	if err != nil {
		w.log.Warn("cre_page_count trapped", zap.Error(err))
		return 0, ResultInternalError
	}
	pages, ok := mem.ReadUint32Le(outPtr)
	if !ok {
		return 0, ResultInternalError
	}
	return pages, Result(uint32(res[0]))
}

func (w *WASMShim) RenderPage(h Handle, pageIndex uint32, surface *crengine.Surface) Result {
	mem := w.module.Memory()

	bufPtr, err := w.alloc(uint32(len(surface.Data)))
	if err != nil {
		return ResultInternalError
	}
	defer w.release(bufPtr)
	if !mem.Write(bufPtr, surface.Data) {
		return ResultInternalError
	}

	// CreRenderSurface on wasm32: data u32, stride u32, width u32,
	// height u32, format u32.
	surfPtr, err := w.alloc(20)
	if err != nil {
		return ResultInternalError
	}
	defer w.release(surfPtr)

	ok := mem.WriteUint32Le(surfPtr, bufPtr) &&
		mem.WriteUint32Le(surfPtr+4, surface.Stride) &&
		mem.WriteUint32Le(surfPtr+8, surface.Size.Width) &&
		mem.WriteUint32Le(surfPtr+12, surface.Size.Height) &&
		mem.WriteUint32Le(surfPtr+16, uint32(surface.Format))
	if !ok {
		return ResultInternalError
	}

	res, err := w.render.Call(w.ctx, uint64(h), uint64(pageIndex), uint64(surfPtr))
	if err != nil {
		w.log.Warn("cre_render_page trapped", zap.Error(err))
		return ResultInternalError
	}

	status := Result(uint32(res[0]))
	if status == ResultOK {
		rendered, ok := mem.Read(bufPtr, uint32(len(surface.Data)))
		if !ok {
			return ResultInternalError
		}
		copy(surface.Data, rendered)
	}
	return status
}
