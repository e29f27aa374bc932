package encoder

import (
	"bytes"
	stderrors "errors"
	"math/bits"
	"testing"

	crengine "github.com/inkfold/crengine"
	"github.com/inkfold/crengine/errors"
)

func TestEncodePage_RejectsEmptyInput(t *testing.T) {
	_, err := EncodePage(Config{}, nil, crengine.Size{Width: 8, Height: 8})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindInvalidInput}) {
		t.Fatalf("encode = %v, want invalid_input", err)
	}
}

func TestEncodePage_RejectsShortInput(t *testing.T) {
	_, err := EncodePage(Config{}, make([]byte, 10), crengine.Size{Width: 8, Height: 8})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindInvalidInput}) {
		t.Fatalf("encode = %v, want invalid_input", err)
	}
}

func TestEncodePage_RejectsBadDitherPercent(t *testing.T) {
	_, err := EncodePage(Config{DitherPercent: 101}, make([]byte, 64), crengine.Size{Width: 8, Height: 8})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindInvalidInput}) {
		t.Fatalf("encode = %v, want invalid_input", err)
	}
}

func TestEncodePage_HardThreshold(t *testing.T) {
	// Top row black, bottom row white.
	gray := append(bytes.Repeat([]byte{0x00}, 8), bytes.Repeat([]byte{0xFF}, 8)...)

	out, err := EncodePage(Config{DitherPercent: 0}, gray, crengine.Size{Width: 8, Height: 2})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("output length = %d, want 2", len(out))
	}
	if out[0] != 0xFF {
		t.Errorf("black row = %#08b, want all bits set", out[0])
	}
	if out[1] != 0x00 {
		t.Errorf("white row = %#08b, want all bits clear", out[1])
	}
}

func TestEncodePage_StridePadsToWholeBytes(t *testing.T) {
	// 10 pixels wide: stride is 2 bytes, the trailing 6 bits stay clear.
	gray := bytes.Repeat([]byte{0x00}, 10)

	out, err := EncodePage(Config{}, gray, crengine.Size{Width: 10, Height: 1})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("output length = %d, want 2", len(out))
	}
	if out[0] != 0xFF || out[1] != 0xC0 {
		t.Errorf("packed row = %#08b %#08b, want 11111111 11000000", out[0], out[1])
	}
}

func TestEncodePage_DitherBreaksUpMidGray(t *testing.T) {
	gray := bytes.Repeat([]byte{128}, 8*8)
	size := crengine.Size{Width: 8, Height: 8}

	// A hard threshold turns uniform mid-gray into a solid field.
	hard, err := EncodePage(Config{DitherPercent: 0}, gray, size)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Full dither must produce a mix of set and clear bits instead.
	dithered, err := EncodePage(Config{DitherPercent: 100}, gray, size)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	count := func(b []byte) int {
		n := 0
		for _, v := range b {
			n += bits.OnesCount8(v)
		}
		return n
	}

	if c := count(hard); c != 0 {
		t.Errorf("hard threshold of 128 set %d bits, want 0 (128 is not darker than mid-gray)", c)
	}
	c := count(dithered)
	if c == 0 || c == 8*8 {
		t.Errorf("dithered mid-gray set %d of 64 bits, want an even mix", c)
	}
}

func TestEncodeCanvas(t *testing.T) {
	canvas := crengine.NewGray8(crengine.Size{Width: 8, Height: 2})
	out, err := EncodeCanvas(Config{}, canvas)
	if err != nil {
		t.Fatalf("encode canvas: %v", err)
	}
	// Zero-filled canvas is all black ink.
	if out[0] != 0xFF || out[1] != 0xFF {
		t.Errorf("packed canvas = %v, want all bits set", out)
	}

	if _, err := EncodeCanvas(Config{}, crengine.NewMonochrome(crengine.Size{Width: 8, Height: 2})); err == nil {
		t.Error("encoding a monochrome canvas should fail")
	}
}
