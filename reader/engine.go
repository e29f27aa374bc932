package reader

import (
	"bytes"
	"runtime"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/inkfold/crengine/errors"
	"github.com/inkfold/crengine/shim"
)

// Config holds configuration for engine initialization.
type Config struct {
	// Shim selects the backend. Nil loads the platform's default shared
	// library (see shim.LoadDefault).
	Shim shim.Shim

	// Logger receives wrapper-level debug logging. Nil means no logging.
	Logger *zap.Logger
}

// Engine is the process-level token that permits document loading. It owns
// no native resource itself, but every Document it opens inherits its
// goroutine affinity.
type Engine struct {
	affinity affinity
	shim     shim.Shim
	log      *zap.Logger
	down     bool
}

// Initialize creates an engine pinned to the calling goroutine. The
// goroutine is locked to its OS thread for the lifetime of the engine.
//
// Initialization cannot fail today unless the shim backend cannot be
// loaded; the error return is kept because a future engine global-init
// step may fail.
func Initialize(cfg *Config) (*Engine, error) {
	var s shim.Shim
	var log *zap.Logger
	if cfg != nil {
		s = cfg.Shim
		log = cfg.Logger
	}
	if s == nil {
		var err error
		s, err = shim.LoadDefault()
		if err != nil {
			return nil, err
		}
	}
	if log == nil {
		log = zap.NewNop()
	}

	runtime.LockOSThread()
	return &Engine{
		affinity: currentAffinity(),
		shim:     s,
		log:      log,
	}, nil
}

// Shutdown releases the engine token and unpins the goroutine. The engine
// must not be used afterwards. No native teardown call exists to mirror
// initialization; this is an ownership marker.
func (e *Engine) Shutdown() error {
	if err := e.affinity.check(errors.PhaseClose); err != nil {
		return err
	}
	if e.down {
		return nil
	}
	e.down = true
	e.shim = nil
	runtime.UnlockOSThread()
	return nil
}

// LoadEPUBFromBytes opens an EPUB held in memory.
func (e *Engine) LoadEPUBFromBytes(b []byte) (*Document, error) {
	return e.load(b, "epub")
}

// LoadHTMLFromBytes opens an HTML document held in memory.
func (e *Engine) LoadHTMLFromBytes(b []byte) (*Document, error) {
	return e.load(b, "html")
}

// LoadMarkdownFromBytes converts Markdown to HTML and opens the result.
// The engine itself has no Markdown support; the conversion happens on the
// Go side and the document follows the HTML path from there.
func (e *Engine) LoadMarkdownFromBytes(b []byte) (*Document, error) {
	if err := e.affinity.check(errors.PhaseOpen); err != nil {
		return nil, err
	}

	var html bytes.Buffer
	if err := goldmark.Convert(b, &html); err != nil {
		return nil, errors.Wrap(errors.PhaseOpen, errors.KindInvalidInput, err, "convert markdown")
	}
	return e.load(html.Bytes(), "html")
}

// load is the shared open path: the engine dispatches on the file suffix,
// so both loaders differ only in the extension of the temp file.
func (e *Engine) load(b []byte, suffix string) (*Document, error) {
	if err := e.affinity.check(errors.PhaseOpen); err != nil {
		return nil, err
	}
	if e.down {
		return nil, errors.Closed(errors.PhaseOpen)
	}
	return openFromBytes(e.shim, e.affinity, e.log, b, suffix)
}
