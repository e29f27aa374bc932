// Package encoder packs rendered gray8 pages into the 1bpp monochrome
// format the device panel consumes.
//
// Pixels darker than the threshold become set bits (ink); rows are packed
// MSB-first and padded to whole bytes. DitherPercent blends a 4x4 ordered
// (Bayer) dither into the threshold: 0 is a hard cut at mid-gray, 100 is
// the full dither amplitude.
package encoder

import (
	crengine "github.com/inkfold/crengine"
	"github.com/inkfold/crengine/errors"
)

// Config holds encoding preferences.
type Config struct {
	// DitherPercent is the ordered-dither strength, 0..100.
	DitherPercent uint8 `json:"dither_percent"`
}

// bayer4 is the standard 4x4 ordered-dither index matrix.
var bayer4 = [4][4]int{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// EncodePage packs one gray8 page into 1bpp monochrome. The input must
// hold at least width*height bytes, one per pixel, row-major with no
// padding. The output stride is (width+7)/8.
func EncodePage(cfg Config, gray []byte, size crengine.Size) ([]byte, error) {
	if cfg.DitherPercent > 100 {
		return nil, errors.InvalidInput(errors.PhaseEncode, "dither percent must be 0..100")
	}
	if len(gray) == 0 {
		return nil, errors.InvalidInput(errors.PhaseEncode, "empty input buffer")
	}
	width, height := int(size.Width), int(size.Height)
	if len(gray) < width*height {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Detail("input holds %d bytes, %dx%d needs %d", len(gray), width, height, width*height).
			Build()
	}

	stride := (width + 7) / 8
	out := make([]byte, stride*height)
	strength := int(cfg.DitherPercent)

	for y := 0; y < height; y++ {
		row := gray[y*width : y*width+width]
		for x := 0; x < width; x++ {
			// Bayer offsets span roughly -120..+120 at full strength.
			offset := (bayer4[y&3][x&3]*16 - 120) * strength / 100
			if int(row[x]) < 128+offset {
				out[y*stride+x/8] |= 0x80 >> (x & 7)
			}
		}
	}
	return out, nil
}

// EncodeCanvas packs a gray8 canvas. Canvases in other formats are
// rejected; they are already packed.
func EncodeCanvas(cfg Config, canvas *crengine.Canvas) ([]byte, error) {
	if canvas.Format() != crengine.FormatGray8 {
		return nil, errors.InvalidInput(errors.PhaseEncode, "only gray8 canvases can be encoded")
	}
	return EncodePage(cfg, canvas.Bytes(), canvas.Size())
}
