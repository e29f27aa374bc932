package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/inkfold/crengine"
	"github.com/inkfold/crengine/reader"
	"github.com/inkfold/crengine/shim"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to input document (epub, html, md)")
		format      = flag.String("format", "", "Input format: epub, html or md (default: from extension)")
		shimLib     = flag.String("shim", "", "Path to native shim library (default: $CRENGINE_SHIM)")
		wasmFile    = flag.String("wasm", "", "Path to wasm shim module (overrides -shim)")
		outDir      = flag.String("out", ".", "Directory for rendered page PNGs")
		fontSize    = flag.Uint("font-size", 18, "Font size in pixels")
		lineHeight  = flag.Uint("line-height", 120, "Line height in percent")
		margin      = flag.Uint("margin", 12, "Page margin in dp")
		maxPages    = flag.Uint("pages", 0, "Render at most N pages (0 = all)")
		width       = flag.Uint("width", 480, "Render surface width")
		height      = flag.Uint("height", 800, "Render surface height")
		interactive = flag.Bool("i", false, "Interactive mode with TUI pager")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: crerun -in <document> [-out dir] [-shim lib | -wasm file.wasm]")
		fmt.Fprintln(os.Stderr, "       crerun -in <document> -i  (interactive pager)")
		os.Exit(1)
	}

	opts := renderOptions{
		inFile:   *inFile,
		format:   *format,
		shimLib:  *shimLib,
		wasmFile: *wasmFile,
		outDir:   *outDir,
		maxPages: uint32(*maxPages),
		size:     crengine.Size{Width: uint32(*width), Height: uint32(*height)},
		layout: crengine.LayoutConfig{
			FontSize:          uint32(*fontSize),
			LineHeightPercent: uint32(*lineHeight),
			PageMarginDP:      uint32(*margin),
		},
		verbose: *verbose,
	}

	if *interactive {
		if err := runInteractive(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type renderOptions struct {
	inFile   string
	format   string
	shimLib  string
	wasmFile string
	outDir   string
	maxPages uint32
	size     crengine.Size
	layout   crengine.LayoutConfig
	verbose  bool
}

// openBackend picks the shim implementation from the flags: an explicit wasm
// module, an explicit shared library, or the environment default.
func openBackend(opts renderOptions) (shim.Shim, error) {
	if opts.wasmFile != "" {
		data, err := os.ReadFile(opts.wasmFile)
		if err != nil {
			return nil, fmt.Errorf("read wasm shim: %w", err)
		}
		s, err := shim.NewWASM(context.Background(), data, nil)
		if err != nil {
			return nil, fmt.Errorf("load wasm shim: %w", err)
		}
		return s, nil
	}
	if opts.shimLib != "" {
		s, err := shim.Load(opts.shimLib)
		if err != nil {
			return nil, fmt.Errorf("load shim library: %w", err)
		}
		return s, nil
	}
	s, err := shim.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("load default shim: %w", err)
	}
	return s, nil
}

func closeBackend(s shim.Shim) {
	if c, ok := s.(io.Closer); ok {
		c.Close()
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// loadDocument opens the input through the format-specific entry point.
func loadDocument(eng *reader.Engine, opts renderOptions) (*reader.Document, error) {
	data, err := os.ReadFile(opts.inFile)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	format := opts.format
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.inFile)) {
		case ".epub":
			format = "epub"
		case ".html", ".htm", ".xhtml":
			format = "html"
		case ".md", ".markdown":
			format = "md"
		default:
			return nil, fmt.Errorf("cannot infer format from %q, use -format", opts.inFile)
		}
	}

	switch format {
	case "epub":
		return eng.LoadEPUBFromBytes(data)
	case "html":
		return eng.LoadHTMLFromBytes(data)
	case "md", "markdown":
		return eng.LoadMarkdownFromBytes(data)
	default:
		return nil, fmt.Errorf("unknown format %q (want epub, html or md)", format)
	}
}

func run(opts renderOptions) error {
	log, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	backend, err := openBackend(opts)
	if err != nil {
		return err
	}
	defer closeBackend(backend)

	eng, err := reader.Initialize(&reader.Config{Shim: backend, Logger: log})
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Shutdown()

	doc, err := loadDocument(eng, opts)
	if err != nil {
		return err
	}
	defer doc.Close()

	pages, err := doc.Layout(opts.layout)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	fmt.Printf("Document: %s\n", opts.inFile)
	fmt.Printf("Pages: %d\n", pages)

	if opts.maxPages > 0 && opts.maxPages < pages {
		pages = opts.maxPages
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	canvas := crengine.NewGray8(opts.size)
	for i := uint32(0); i < pages; i++ {
		if err := doc.RenderPage(i, canvas); err != nil {
			return fmt.Errorf("render page %d: %w", i, err)
		}
		name := filepath.Join(opts.outDir, fmt.Sprintf("page-%04d.png", i))
		if err := writePNG(name, canvas); err != nil {
			return fmt.Errorf("write page %d: %w", i, err)
		}
		fmt.Printf("  %s\n", name)
	}

	return nil
}

func writePNG(name string, canvas *crengine.Canvas) error {
	img := canvas.ToImage()
	if img == nil {
		return fmt.Errorf("canvas format %s cannot be exported as PNG", canvas.Format())
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
