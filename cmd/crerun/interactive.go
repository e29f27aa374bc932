package main

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
	"golang.org/x/term"

	"github.com/inkfold/crengine"
	"github.com/inkfold/crengine/reader"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	pageInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// pagerModel drives the terminal pager. Every engine call happens inside
// Update or View, which bubbletea runs on the goroutine that called Run;
// that is the goroutine the engine was initialized on, so the handles'
// thread affinity holds. Engine work must never move into a tea.Cmd,
// because commands execute on their own goroutines.
type pagerModel struct {
	doc     *reader.Document
	canvas  *crengine.Canvas
	err     error
	title   string
	frame   string
	gotoIn  textinput.Model
	pages   uint32
	current uint32
	termW   int
	termH   int
	gotoing bool
}

func (m *pagerModel) Init() tea.Cmd {
	return nil
}

func (m *pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termW = msg.Width
		m.termH = msg.Height
		m.refresh()

	case tea.KeyMsg:
		if m.gotoing {
			return m.updateGoto(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "left", "h", "pgup":
			if m.current > 0 {
				m.current--
				m.refresh()
			}

		case "right", "l", "pgdown", " ":
			if m.current+1 < m.pages {
				m.current++
				m.refresh()
			}

		case "home":
			m.current = 0
			m.refresh()

		case "end":
			if m.pages > 0 {
				m.current = m.pages - 1
				m.refresh()
			}

		case "g":
			ti := textinput.New()
			ti.Prompt = "go to page: "
			ti.Placeholder = fmt.Sprintf("1-%d", m.pages)
			ti.Width = 12
			ti.Focus()
			m.gotoIn = ti
			m.gotoing = true
		}
	}

	return m, nil
}

func (m *pagerModel) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.gotoing = false
		return m, nil

	case "enter":
		m.gotoing = false
		n, err := strconv.ParseUint(strings.TrimSpace(m.gotoIn.Value()), 10, 32)
		if err == nil && n >= 1 && uint32(n) <= m.pages {
			m.current = uint32(n) - 1
			m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoIn, cmd = m.gotoIn.Update(msg)
	return m, cmd
}

// refresh renders the current page and rebuilds the terminal frame.
func (m *pagerModel) refresh() {
	m.err = nil
	if m.pages == 0 {
		m.frame = ""
		return
	}
	if err := m.doc.RenderPage(m.current, m.canvas); err != nil {
		m.err = err
		m.frame = ""
		return
	}
	m.frame = frameString(m.canvas.ToImage(), m.termW, m.termH-3)
}

// frameString draws a grayscale image into terminal cells using the upper
// half block, one cell covering two vertically stacked pixels. The image is
// scaled to fit cols x 2*rows while keeping its aspect ratio.
func frameString(img *image.Gray, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	if srcW == 0 || srcH == 0 {
		return ""
	}

	maxW := cols
	maxH := rows * 2
	dstW := maxW
	dstH := srcH * dstW / srcW
	if dstH > maxH {
		dstH = maxH
		dstW = srcW * dstH / srcH
	}
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 2 {
		dstH = 2
	}

	scaled := image.NewGray(image.Rect(0, 0, dstW, dstH))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	for y := 0; y+1 < dstH; y += 2 {
		for x := 0; x < dstW; x++ {
			top := scaled.GrayAt(x, y).Y
			bot := scaled.GrayAt(x, y+1).Y
			b.WriteString(lipgloss.NewStyle().
				Foreground(grayColor(top)).
				Background(grayColor(bot)).
				Render("▀"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func grayColor(v uint8) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", v, v, v))
}

func (m *pagerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("crerun"))
	b.WriteString(" ")
	b.WriteString(m.title)
	b.WriteString("  ")
	b.WriteString(pageInfoStyle.Render(fmt.Sprintf("page %d/%d", m.current+1, m.pages)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else {
		b.WriteString(m.frame)
	}

	if m.gotoing {
		b.WriteString(m.gotoIn.View())
	} else {
		b.WriteString(helpStyle.Render("←/→ flip • g goto • q quit"))
	}

	return b.String()
}

func runInteractive(opts renderOptions) error {
	log, err := newLogger(false)
	if err != nil {
		return err
	}

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

	m := &pagerModel{
		doc:    doc,
		canvas: crengine.NewGray8(opts.size),
		title:  opts.inFile,
		pages:  pages,
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.termW = w
		m.termH = h
		m.refresh()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
