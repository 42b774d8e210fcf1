// Package pack derives the minimal distributable archive for a level set:
// only the addon files with no base-store counterpart, written as a
// reproducible zip.
package pack

import (
	"sort"

	"github.com/parasti/neverball-checker/internal/overlay"
)

// Item pairs a physical source file with its archive-relative name.
type Item struct {
	Source string // physical path of the addon copy
	Name   string // archive name, equal to the logical path
}

// Select returns the addon files worth shipping, sorted by archive name.
// Shadowed paths are excluded: the base store already carries that logical
// path, so the addon copy is not genuinely new.
func Select(res *overlay.Resolver) []Item {
	var items []Item
	for _, rec := range res.Records() {
		if rec.Origin != overlay.OriginAddon || rec.Shadowed {
			continue
		}
		items = append(items, Item{Source: rec.Physical, Name: rec.Logical})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}
