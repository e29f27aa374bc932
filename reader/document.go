package reader

import (
	"os"
	"strings"

	"go.uber.org/zap"

	crengine "github.com/inkfold/crengine"
	"github.com/inkfold/crengine/errors"
	"github.com/inkfold/crengine/shim"
)

// Document owns a native document handle plus the temporary file the input
// bytes were materialized into. It is pinned to the goroutine that loaded
// it and must be closed exactly once when no longer needed.
type Document struct {
	shim     shim.Shim
	affinity affinity
	log      *zap.Logger

	raw      shim.Handle
	tempPath string

	// pages caches the count from the most recent successful Layout.
	// Rendering before any layout run reports out-of-bounds for every
	// index because the count is still zero.
	pages  uint32
	closed bool
}

func openFromBytes(s shim.Shim, aff affinity, log *zap.Logger, b []byte, suffix string) (*Document, error) {
	f, err := os.CreateTemp("", "cre-document-*."+suffix)
	if err != nil {
		return nil, errors.IO(errors.PhaseOpen, err, "create temp file")
	}
	path := f.Name()

	_, werr := f.Write(b)
	cerr := f.Close()
	if werr != nil {
		os.Remove(path)
		return nil, errors.IO(errors.PhaseOpen, werr, "write document bytes to temp file")
	}
	if cerr != nil {
		os.Remove(path)
		return nil, errors.IO(errors.PhaseOpen, cerr, "flush temp file")
	}

	// The shim takes a NUL-terminated C string; an embedded NUL would
	// silently truncate the path.
	if strings.IndexByte(path, 0) >= 0 {
		os.Remove(path)
		return nil, errors.Ffi(errors.PhaseOpen, "temp file path contains a NUL byte")
	}

	h, status := s.OpenDocument(path)
	if err := shim.MapStatus(errors.PhaseOpen, status); err != nil {
		os.Remove(path)
		return nil, err
	}
	if h == 0 {
		// A success status with a null handle is a shim bug; refuse
		// the handle rather than carry a null into later calls.
		os.Remove(path)
		return nil, errors.NullHandle(errors.PhaseOpen)
	}

	log.Debug("opened document",
		zap.String("path", path),
		zap.String("suffix", suffix),
		zap.Int("bytes", len(b)))

	return &Document{
		shim:     s,
		affinity: aff,
		log:      log,
		raw:      h,
		tempPath: path,
	}, nil
}

// Layout repaginates the document with the given preferences and returns
// the new page count. Safe to call repeatedly; each call fully recomputes
// pagination for the current config and refreshes the cached count.
func (d *Document) Layout(cfg crengine.LayoutConfig) (uint32, error) {
	if err := d.affinity.check(errors.PhaseLayout); err != nil {
		return 0, err
	}
	if d.closed {
		return 0, errors.Closed(errors.PhaseLayout)
	}

	if err := shim.MapStatus(errors.PhaseLayout, d.shim.LayoutDocument(d.raw, cfg)); err != nil {
		return 0, err
	}

	pages, status := d.shim.PageCount(d.raw)
	if err := shim.MapStatus(errors.PhaseLayout, status); err != nil {
		return 0, err
	}
	d.pages = pages

	d.log.Debug("layout complete", zap.Uint32("pages", pages))
	return pages, nil
}

// PageCount queries the shim for the page count produced by the most
// recent layout run, zero if the document was never laid out.
func (d *Document) PageCount() (uint32, error) {
	if err := d.affinity.check(errors.PhaseLayout); err != nil {
		return 0, err
	}
	if d.closed {
		return 0, errors.Closed(errors.PhaseLayout)
	}

	pages, status := d.shim.PageCount(d.raw)
	if err := shim.MapStatus(errors.PhaseLayout, status); err != nil {
		return 0, err
	}
	return pages, nil
}

// RenderPage renders one page into the caller's canvas. The canvas buffer
// is mutated in place; nothing is allocated per call. Index and surface
// bounds are validated before the shim is touched.
func (d *Document) RenderPage(index uint32, canvas *crengine.Canvas) error {
	if err := d.affinity.check(errors.PhaseRender); err != nil {
		return err
	}
	if d.closed {
		return errors.Closed(errors.PhaseRender)
	}

	if index >= d.pages {
		return errors.PageOutOfBounds(errors.PhaseRender, index, d.pages)
	}

	expected := canvas.Stride() * int(canvas.Size().Height)
	actual := len(canvas.Bytes())
	if actual < expected {
		return errors.SurfaceTooSmall(errors.PhaseRender, expected, actual)
	}

	surface := canvas.Surface()
	return shim.MapStatus(errors.PhaseRender, d.shim.RenderPage(d.raw, index, surface))
}

// Page returns a borrowed view of one page. The index is validated now and
// revalidated on every render, so a view held across a re-layout cannot
// reach the shim with a stale index.
func (d *Document) Page(index uint32) (*Page, error) {
	if err := d.affinity.check(errors.PhaseRender); err != nil {
		return nil, err
	}
	if d.closed {
		return nil, errors.Closed(errors.PhaseRender)
	}
	if index >= d.pages {
		return nil, errors.PageOutOfBounds(errors.PhaseRender, index, d.pages)
	}
	return &Page{doc: d, index: index}, nil
}

// TOC extracts the table of contents. Not implemented: the extraction
// calls the shim would need do not exist yet, so this always fails with an
// unsupported error rather than returning a wrong tree.
func (d *Document) TOC() ([]crengine.TocEntry, error) {
	if err := d.affinity.check(errors.PhaseExtract); err != nil {
		return nil, err
	}
	if d.closed {
		return nil, errors.Closed(errors.PhaseExtract)
	}
	return nil, errors.Unsupported(errors.PhaseExtract, "table of contents extraction is not implemented")
}

// ExtractText extracts the document's plain text. Not implemented; see TOC.
func (d *Document) ExtractText() (string, error) {
	if err := d.affinity.check(errors.PhaseExtract); err != nil {
		return "", err
	}
	if d.closed {
		return "", errors.Closed(errors.PhaseExtract)
	}
	return "", errors.Unsupported(errors.PhaseExtract, "text extraction is not implemented")
}

// Close releases the native handle and removes the backing temp file. The
// first call performs the teardown; later calls return nil. The native
// close runs before file removal so the engine never observes a document
// whose backing file vanished under it.
func (d *Document) Close() error {
	if err := d.affinity.check(errors.PhaseClose); err != nil {
		return err
	}
	if d.closed {
		return nil
	}
	d.closed = true

	d.shim.CloseDocument(d.raw)
	d.raw = 0

	if err := os.Remove(d.tempPath); err != nil && !os.IsNotExist(err) {
		return errors.IO(errors.PhaseClose, err, "remove temp file")
	}
	d.log.Debug("closed document", zap.String("path", d.tempPath))
	return nil
}
