// Package xtc reads and writes the XTC container: one book's metadata plus
// its pre-encoded monochrome pages, ready to drop onto a device.
//
// Layout, all integers little-endian u32:
//
//	"XTC1" | meta length | meta JSON | page count | (page length | page bytes)*
package xtc

import (
	"encoding/binary"
	"encoding/json"
	"io"

	"github.com/inkfold/crengine/errors"
)

// Metadata describes the book stored in a container.
type Metadata struct {
	Title string `json:"title"`
}

var magic = [4]byte{'X', 'T', 'C', '1'}

// maxBlockLen and maxPages bound the block sizes and page count accepted
// by Decode so a corrupt header cannot drive a huge allocation.
const (
	maxBlockLen = 64 << 20
	maxPages    = 1 << 20
)

// Encode writes a container holding meta and the given pre-encoded pages.
func Encode(w io.Writer, meta Metadata, pages [][]byte) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidInput, err, "marshal metadata")
	}

	if _, err := w.Write(magic[:]); err != nil {
		return errors.IO(errors.PhaseEncode, err, "write container magic")
	}
	if err := writeBlock(w, metaJSON); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(pages))); err != nil {
		return err
	}
	for _, page := range pages {
		if err := writeBlock(w, page); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a container back into metadata and page blobs.
func Decode(r io.Reader) (Metadata, [][]byte, error) {
	var meta Metadata

	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return meta, nil, errors.IO(errors.PhaseEncode, err, "read container magic")
	}
	if head != magic {
		return meta, nil, errors.InvalidInput(errors.PhaseEncode, "not an XTC container")
	}

	metaJSON, err := readBlock(r)
	if err != nil {
		return meta, nil, err
	}
	if err := json.Unmarshal(metaJSON, &meta); err != nil {
		return meta, nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidInput, err, "unmarshal metadata")
	}

	count, err := readU32(r)
	if err != nil {
		return meta, nil, err
	}
	if count > maxPages {
		return meta, nil, errors.InvalidInput(errors.PhaseEncode, "container page count exceeds limit")
	}

	// Grow as records arrive; the count is untrusted input and must not
	// size an allocation on its own.
	var pages [][]byte
	for i := uint32(0); i < count; i++ {
		page, err := readBlock(r)
		if err != nil {
			return meta, nil, err
		}
		pages = append(pages, page)
	}
	return meta, pages, nil
}

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	if _, err := w.Write(buf[:]); err != nil {
		return errors.IO(errors.PhaseEncode, err, "write container field")
	}
	return nil
}

func writeBlock(w io.Writer, b []byte) error {
	if err := writeU32(w, uint32(len(b))); err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return errors.IO(errors.PhaseEncode, err, "write container block")
	}
	return nil
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.IO(errors.PhaseEncode, err, "read container field")
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readBlock(r io.Reader) ([]byte, error) {
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}
	if n > maxBlockLen {
		return nil, errors.InvalidInput(errors.PhaseEncode, "container block length exceeds limit")
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.IO(errors.PhaseEncode, err, "read container block")
	}
	return b, nil
}
