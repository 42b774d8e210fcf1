package report

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/parasti/neverball-checker/internal/overlay"
)

// Text formats eligible for override diffing. Binary overrides (images,
// audio, compiled levels) are only ever reported as shadowed.
var diffableExts = map[string]struct{}{
	".map": {},
	".txt": {},
}

// diffContext is the number of context lines in unified hunks.
const diffContext = 3

// PrintOverrides writes one line per shadowed logical path and, when
// showDiffs is set, a unified diff of the base copy against the addon copy
// for text formats. Byte-identical overrides are called out as redundant:
// shipping them bloats the package without changing the game.
func PrintOverrides(w io.Writer, res *overlay.Resolver, read func(string) ([]byte, error), showDiffs bool) int {
	shadowed := 0
	for _, rec := range res.Records() {
		if !rec.Shadowed {
			continue
		}
		shadowed++
		fmt.Fprintf(w, "OVERRIDE %s\n", rec.Logical)
		if err := describeOverride(w, rec, read, showDiffs); err != nil {
			fmt.Fprintf(w, "  (diff unavailable: %v)\n", err)
		}
	}
	return shadowed
}

func describeOverride(w io.Writer, rec overlay.Record, read func(string) ([]byte, error), showDiffs bool) error {
	baseBody, err := read(rec.BaseCopy)
	if err != nil {
		return err
	}
	addonBody, err := read(rec.Physical)
	if err != nil {
		return err
	}
	if bytes.Equal(baseBody, addonBody) {
		fmt.Fprintf(w, "  identical to the base copy; redundant in the addon\n")
		return nil
	}
	if !showDiffs {
		return nil
	}
	if _, ok := diffableExts[path.Ext(rec.Logical)]; !ok {
		fmt.Fprintf(w, "  differs from the base copy (binary, no diff)\n")
		return nil
	}

	u := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(baseBody)),
		B:        difflib.SplitLines(string(addonBody)),
		FromFile: "base/" + rec.Logical,
		ToFile:   "addon/" + rec.Logical,
		Context:  diffContext,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	return nil
}
