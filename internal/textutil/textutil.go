package textutil

import (
	"bytes"
	"strings"
)

// NormalizeLF converts CRLF and lone CR to LF so line-oriented formats
// (set manifests, map files) parse identically regardless of the
// line-ending convention they were authored with.
func NormalizeLF(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	return b
}

// Lines splits normalized text into lines without the trailing separator.
// A trailing newline does not produce a final empty element.
func Lines(b []byte) []string {
	s := string(NormalizeLF(b))
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// CString returns the NUL-terminated string starting at off within pool,
// or "" when off is out of range.
func CString(pool []byte, off int) string {
	if off < 0 || off >= len(pool) {
		return ""
	}
	end := bytes.IndexByte(pool[off:], 0)
	if end < 0 {
		return string(pool[off:])
	}
	return string(pool[off : off+end])
}
