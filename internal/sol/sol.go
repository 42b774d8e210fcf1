// Package sol decodes the header of Neverball's binary level format, just
// far enough to answer dependency questions: the metadata dictionary
// (shot, song, grad, back, ...) and the material name table. Geometry,
// lumps and paths beyond the material block are never read.
package sol

import (
	"encoding/binary"
	"fmt"

	"github.com/parasti/neverball-checker/internal/textutil"
)

const (
	// Magic is the little-endian "SOL\0" tag at offset zero.
	Magic = 0x4c4f53
	// Version is the only format revision this decoder understands.
	Version = 7

	countN   = 21  // count table entries after magic and version
	pathMax  = 64  // material name field width
	mtrlSize = 136 // 4x4 color floats + exponent + flags + name
)

// Meta is the decoded slice of a level file that matters for auditing.
type Meta struct {
	Version   int
	Fields    map[string]string // full metadata dictionary
	Materials []string          // material names, in file order
}

// Field returns the named dictionary value, or "" when absent. The keys
// the checker cares about are "shot", "song", "grad" and "back".
func (m *Meta) Field(key string) string {
	if m == nil || m.Fields == nil {
		return ""
	}
	return m.Fields[key]
}

// Decode parses the SOL header, dictionary and material table from raw
// level-file bytes. Anything malformed or truncated is an error; callers
// treat a failed decode as a broken level, never as a partial result.
func Decode(data []byte) (*Meta, error) {
	r := &reader{buf: data}

	magic, err := r.int32()
	if err != nil {
		return nil, fmt.Errorf("sol: header: %w", err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("sol: bad magic 0x%x", magic)
	}
	version, err := r.int32()
	if err != nil {
		return nil, fmt.Errorf("sol: header: %w", err)
	}
	if version != Version {
		return nil, fmt.Errorf("sol: unsupported version %d", version)
	}

	var counts [countN]int
	for i := range counts {
		n, err := r.int32()
		if err != nil {
			return nil, fmt.Errorf("sol: count table: %w", err)
		}
		if n < 0 {
			return nil, fmt.Errorf("sol: negative count %d", n)
		}
		counts[i] = int(n)
	}
	ac, dc, mc := counts[0], counts[1], counts[2]

	pool, err := r.bytes(ac)
	if err != nil {
		return nil, fmt.Errorf("sol: text pool: %w", err)
	}

	fields := make(map[string]string, dc)
	for i := 0; i < dc; i++ {
		ai, err := r.int32()
		if err != nil {
			return nil, fmt.Errorf("sol: dict: %w", err)
		}
		aj, err := r.int32()
		if err != nil {
			return nil, fmt.Errorf("sol: dict: %w", err)
		}
		key := textutil.CString(pool, int(ai))
		if key == "" {
			continue
		}
		fields[key] = textutil.CString(pool, int(aj))
	}

	materials := make([]string, 0, mc)
	for i := 0; i < mc; i++ {
		rec, err := r.bytes(mtrlSize)
		if err != nil {
			return nil, fmt.Errorf("sol: material %d: %w", i, err)
		}
		materials = append(materials, textutil.CString(rec[mtrlSize-pathMax:], 0))
	}

	return &Meta{Version: int(version), Fields: fields, Materials: materials}, nil
}

type reader struct {
	buf []byte
	off int
}

func (r *reader) int32() (int32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.buf) {
		return nil, fmt.Errorf("truncated at offset %d (want %d bytes of %d)", r.off, n, len(r.buf))
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}
