package assets

import (
	"github.com/parasti/neverball-checker/internal/textutil"
)

// Set-manifest line layout. Lines 0-2 carry the set's display name,
// description and author, line 4 the score table; none of those reference
// assets.
const (
	setLineShot   = 3
	setLineLevels = 5
)

// ExtractSet parses the raw text of a level-set manifest and returns its
// direct references: the optional screenshot and the listed level files.
// Blank lines among the level entries are tolerated. setName is recorded as
// the parent on every produced reference.
func ExtractSet(setName string, data []byte) *Bundle {
	b := NewBundle()
	lines := textutil.Lines(data)
	for i, line := range lines {
		switch {
		case i == setLineShot:
			if line != "" {
				b.AddImage(line, setName)
			}
		case i >= setLineLevels:
			if line != "" {
				b.AddLevel(line, setName)
			}
		}
	}
	return b
}
