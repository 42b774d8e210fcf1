// Package report renders audit outcomes for humans: a colored found/missing
// listing, a summary line, and optional unified diffs for shadowed
// overrides.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/parasti/neverball-checker/internal/audit"
)

var (
	foundTag   = color.New(color.FgGreen).SprintFunc()
	missingTag = color.New(color.FgRed, color.Bold).SprintFunc()
	dimText    = color.New(color.Faint).SprintFunc()
)

// Options controls report verbosity.
type Options struct {
	// ShowFound lists found assets too; by default only misses print.
	ShowFound bool
}

// Print writes the audit outcome to w and returns the number of missing
// entries.
func Print(w io.Writer, o *audit.Outcome, opt Options) int {
	if opt.ShowFound {
		for _, e := range o.Found {
			fmt.Fprintf(w, "%s %-14s %s%s\n", foundTag("FOUND  "), e.Kind, e.Path, parentSuffix(e.Parent))
		}
	}
	for _, e := range o.Missing {
		fmt.Fprintf(w, "%s %-14s %s%s\n", missingTag("MISSING"), e.Kind, e.Path, parentSuffix(e.Parent))
	}
	fmt.Fprintf(w, "%d found, %d missing\n", len(o.Found), len(o.Missing))
	return len(o.Missing)
}

func parentSuffix(parent string) string {
	if parent == "" {
		return ""
	}
	return dimText(" (referenced by " + parent + ")")
}
