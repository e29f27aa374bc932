//go:build darwin || linux || freebsd

package shim

import (
	"fmt"
	"os"
	"runtime"

	"github.com/ebitengine/purego"

	crengine "github.com/inkfold/crengine"
	"github.com/inkfold/crengine/errors"
)

// rawLayoutConfig mirrors CreLayoutConfig from shim.h.
type rawLayoutConfig struct {
	fontSize          uint32
	lineHeightPercent uint32
	pageMarginDP      uint32
}

// rawSize mirrors CreSize from shim.h.
type rawSize struct {
	width  uint32
	height uint32
}

// rawSurface mirrors CreRenderSurface from shim.h. The data field is a live
// Go pointer into the canvas buffer; the struct must stay reachable for the
// duration of the native call.
type rawSurface struct {
	data   *byte
	stride uint32
	size   rawSize
	format uint32
}

// lib binds the shim symbols out of a dlopen'd shared library.
type lib struct {
	handle uintptr

	open      func(path string, status *uint32) uintptr
	close     func(doc uintptr)
	layout    func(doc uintptr, cfg *rawLayoutConfig) uint32
	pageCount func(doc uintptr, out *uint32) uint32
	render    func(doc uintptr, pageIndex uint32, surface *rawSurface) uint32
}

var _ Shim = (*lib)(nil)

// Load binds the shim from the shared library at path.
func Load(path string) (Shim, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseInit, errors.KindUnsupportedTarget, err,
			fmt.Sprintf("dlopen %s", path))
	}

	l := &lib{handle: handle}
	for _, sym := range []struct {
		name string
		fn   any
	}{
		{"cre_open_document", &l.open},
		{"cre_close_document", &l.close},
		{"cre_layout_document", &l.layout},
		{"cre_page_count", &l.pageCount},
		{"cre_render_page", &l.render},
	} {
		addr, err := purego.Dlsym(handle, sym.name)
		if err != nil {
			purego.Dlclose(handle)
			return nil, errors.Wrap(errors.PhaseInit, errors.KindUnsupportedTarget, err,
				fmt.Sprintf("missing shim symbol %s", sym.name))
		}
		purego.RegisterFunc(sym.fn, addr)
	}

	debugf("bound shim library %s", path)
	return l, nil
}

// LoadDefault binds the shim from the CRENGINE_SHIM environment override or
// the platform's default library name.
func LoadDefault() (Shim, error) {
	if path := os.Getenv("CRENGINE_SHIM"); path != "" {
		return Load(path)
	}

	name := "libcrengine_shim.so"
	if runtime.GOOS == "darwin" {
		name = "libcrengine_shim.dylib"
	}
	return Load(name)
}

func (l *lib) OpenDocument(path string) (Handle, Result) {
	var status uint32
	doc := l.open(path, &status)
	debugf("cre_open_document(%q) = %#x status=%d", path, doc, status)
	return Handle(doc), Result(status)
}

func (l *lib) CloseDocument(h Handle) {
	if h == 0 {
		return
	}
	l.close(uintptr(h))
}

func (l *lib) LayoutDocument(h Handle, cfg crengine.LayoutConfig) Result {
	raw := rawLayoutConfig{
		fontSize:          cfg.FontSize,
		lineHeightPercent: cfg.LineHeightPercent,
		pageMarginDP:      cfg.PageMarginDP,
	}
	return Result(l.layout(uintptr(h), &raw))
}

func (l *lib) PageCount(h Handle) (uint32, Result) {
	var pages uint32
	status := l.pageCount(uintptr(h), &pages)
	return pages, Result(status)
}

func (l *lib) RenderPage(h Handle, pageIndex uint32, surface *crengine.Surface) Result {
	if len(surface.Data) == 0 {
		return ResultInvalidArgument
	}
	raw := rawSurface{
		data:   &surface.Data[0],
		stride: surface.Stride,
		size:   rawSize{width: surface.Size.Width, height: surface.Size.Height},
		format: uint32(surface.Format),
	}
	status := l.render(uintptr(h), pageIndex, &raw)
	runtime.KeepAlive(surface)
	return Result(status)
}

// Close releases the dlopen handle. Documents opened through this shim must
// be closed first.
func (l *lib) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := purego.Dlclose(l.handle)
	l.handle = 0
	if err != nil {
		return errors.Wrap(errors.PhaseClose, errors.KindInternal, err, "dlclose shim library")
	}
	return nil
}
