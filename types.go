package crengine

// Size is a logical width/height pair used for layout and surfaces.
type Size struct {
	Width  uint32
	Height uint32
}

// TargetSize is the canvas resolution of the X4 device.
var TargetSize = Size{Width: 480, Height: 800}

// SurfaceFormat identifies the pixel format of a rendering surface.
type SurfaceFormat uint32

const (
	// FormatGray8 is 8-bit linear grayscale, one byte per pixel.
	FormatGray8 SurfaceFormat = 1
	// FormatMonochrome is 1-bit monochrome, eight pixels per byte, MSB first.
	FormatMonochrome SurfaceFormat = 2
)

func (f SurfaceFormat) String() string {
	switch f {
	case FormatGray8:
		return "gray8"
	case FormatMonochrome:
		return "monochrome"
	default:
		return "invalid"
	}
}

// LayoutConfig holds the layout preferences passed to the engine.
type LayoutConfig struct {
	// FontSize is the base font size in device-independent pixels.
	FontSize uint32
	// LineHeightPercent is the line height multiplier (100 = normal).
	LineHeightPercent uint32
	// PageMarginDP is the margin applied around the page in
	// device-independent pixels.
	PageMarginDP uint32
}

// DefaultLayoutConfig returns the layout preferences the device ships with.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		FontSize:          18,
		LineHeightPercent: 120,
		PageMarginDP:      12,
	}
}

// TocEntry is one node of a document's table of contents.
type TocEntry struct {
	// Title is the display text of the node.
	Title string
	// Page is the target page number, or nil when the entry has no
	// resolved destination.
	Page *uint32
	// Children are the nested entries, in document order.
	Children []TocEntry
}
