package reader

import (
	"os"

	crengine "github.com/inkfold/crengine"
	"github.com/inkfold/crengine/shim"
)

// fakeShim mimics the behavior of the real shim closely enough for wrapper
// tests: layout produces a fixed page count and render fills each row y of
// page i with the byte (i+y)&0xFF. Call counters let tests assert that
// rejected operations never reached the shim.
type fakeShim struct {
	opens      int
	closes     int
	layouts    int
	pageCounts int
	renders    int

	lastPath  string
	lastBytes []byte

	pagesPerLayout uint32
	pages          map[shim.Handle]uint32
	next           shim.Handle

	openStatus      shim.Result
	layoutStatus    shim.Result
	pageCountStatus shim.Result
	renderStatus    shim.Result
	nullHandle      bool
}

var _ shim.Shim = (*fakeShim)(nil)

func newFakeShim() *fakeShim {
	return &fakeShim{
		pagesPerLayout: 1,
		pages:          make(map[shim.Handle]uint32),
	}
}

func (f *fakeShim) OpenDocument(path string) (shim.Handle, shim.Result) {
	f.opens++
	f.lastPath = path

	// Capture the file contents at the instant of the open call, the way
	// the real engine reads the document from disk.
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, shim.ResultInvalidArgument
	}
	f.lastBytes = b

	if f.openStatus != shim.ResultOK {
		return 0, f.openStatus
	}
	if f.nullHandle {
		return 0, shim.ResultOK
	}

	f.next++
	f.pages[f.next] = 0
	return f.next, shim.ResultOK
}

func (f *fakeShim) CloseDocument(h shim.Handle) {
	if h == 0 {
		return
	}
	f.closes++
	delete(f.pages, h)
}

func (f *fakeShim) LayoutDocument(h shim.Handle, cfg crengine.LayoutConfig) shim.Result {
	f.layouts++
	if f.layoutStatus != shim.ResultOK {
		return f.layoutStatus
	}
	if _, ok := f.pages[h]; !ok {
		return shim.ResultInvalidArgument
	}
	f.pages[h] = f.pagesPerLayout
	return shim.ResultOK
}

func (f *fakeShim) PageCount(h shim.Handle) (uint32, shim.Result) {
	f.pageCounts++
	if f.pageCountStatus != shim.ResultOK {
		return 0, f.pageCountStatus
	}
	pages, ok := f.pages[h]
	if !ok {
		return 0, shim.ResultInvalidArgument
	}
	return pages, shim.ResultOK
}

func (f *fakeShim) RenderPage(h shim.Handle, pageIndex uint32, surface *crengine.Surface) shim.Result {
	f.renders++
	if f.renderStatus != shim.ResultOK {
		return f.renderStatus
	}
	if pageIndex >= f.pages[h] {
		return shim.ResultInvalidArgument
	}

	stride := int(surface.Stride)
	for y := 0; y < int(surface.Size.Height); y++ {
		value := byte((pageIndex + uint32(y)) & 0xFF)
		row := surface.Data[y*stride : y*stride+stride]
		for x := range row {
			row[x] = value
		}
	}
	return shim.ResultOK
}

func (f *fakeShim) calls() int {
	return f.opens + f.closes + f.layouts + f.pageCounts + f.renders
}
