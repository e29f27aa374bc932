package crengine

import "image"

// Canvas is a rendering target backed by an owned pixel buffer. A canvas is
// created once and rendered into repeatedly; no allocation happens per page.
type Canvas struct {
	buf    []byte
	size   Size
	stride int
	format SurfaceFormat
}

// Gray8Target creates a grayscale canvas sized to the X4's display.
func Gray8Target() *Canvas {
	return NewGray8(TargetSize)
}

// NewGray8 creates a zero-filled grayscale canvas with the given dimensions.
// The stride equals the width; the gray8 format has no row padding.
func NewGray8(size Size) *Canvas {
	stride := int(size.Width)
	return &Canvas{
		buf:    make([]byte, stride*int(size.Height)),
		size:   size,
		stride: stride,
		format: FormatGray8,
	}
}

// NewMonochrome creates a zero-filled 1-bit canvas with the given dimensions.
// Each row is packed MSB-first and padded to a whole byte.
func NewMonochrome(size Size) *Canvas {
	stride := (int(size.Width) + 7) / 8
	return &Canvas{
		buf:    make([]byte, stride*int(size.Height)),
		size:   size,
		stride: stride,
		format: FormatMonochrome,
	}
}

// NewWithBuffer wraps a caller-supplied buffer without copying. The caller
// is responsible for keeping buf at least stride*height bytes long; render
// calls verify this and fail with a surface_too_small error otherwise.
func NewWithBuffer(buf []byte, size Size, stride int, format SurfaceFormat) *Canvas {
	return &Canvas{
		buf:    buf,
		size:   size,
		stride: stride,
		format: format,
	}
}

// Size returns the logical dimensions of the canvas.
func (c *Canvas) Size() Size {
	return c.size
}

// Stride returns the number of bytes per row.
func (c *Canvas) Stride() int {
	return c.stride
}

// Format returns the pixel format of the canvas.
func (c *Canvas) Format() SurfaceFormat {
	return c.format
}

// Bytes returns the raw backing buffer. The slice aliases the canvas storage;
// writes through it are visible to subsequent renders and vice versa.
func (c *Canvas) Bytes() []byte {
	return c.buf
}

// Surface builds the transient descriptor handed to a render call. The
// descriptor aliases the canvas buffer mutably and must not be retained
// beyond the call it was built for.
func (c *Canvas) Surface() *Surface {
	return &Surface{
		Data:   c.buf,
		Stride: uint32(c.stride),
		Size:   c.size,
		Format: c.format,
	}
}

// ToImage copies the canvas into an image.Gray. Only valid for gray8
// canvases; other formats return nil.
func (c *Canvas) ToImage() *image.Gray {
	if c.format != FormatGray8 {
		return nil
	}
	img := image.NewGray(image.Rect(0, 0, int(c.size.Width), int(c.size.Height)))
	for y := 0; y < int(c.size.Height); y++ {
		copy(img.Pix[y*img.Stride:], c.buf[y*c.stride:y*c.stride+int(c.size.Width)])
	}
	return img
}

// Surface describes a caller-owned pixel buffer for one native render call.
// It is a borrowed view: Data aliases the originating canvas.
type Surface struct {
	Data   []byte
	Stride uint32
	Size   Size
	Format SurfaceFormat
}
