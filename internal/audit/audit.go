// Package audit turns a closed asset bundle into a found/missing verdict.
// Every entry records the asset kind, logical path and the referencing
// parent, so the report can say not just what is absent but who wanted it.
package audit

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/parasti/neverball-checker/internal/assets"
	"github.com/parasti/neverball-checker/internal/mapfile"
	"github.com/parasti/neverball-checker/internal/overlay"
	"github.com/parasti/neverball-checker/internal/sortutil"
)

// Entry is one classified asset.
type Entry struct {
	Kind   assets.Kind
	Path   string
	Parent string // empty when referenced by the set manifest itself
}

// Outcome is the audit verdict: two disjoint classified lists.
type Outcome struct {
	Found   []Entry
	Missing []Entry
}

// OK reports whether the audit passed, i.e. nothing is missing.
func (o *Outcome) OK() bool { return len(o.Missing) == 0 }

// Auditor drives resolution, level decoding, material lookup and companion
// model discovery into a single Outcome.
type Auditor struct {
	res    *overlay.Resolver
	x      *assets.LevelExtractor
	logger *log.Logger
}

// New builds an Auditor over the resolver and level extractor that produced
// the bundle being audited, so every check reuses the run's memoized
// resolutions.
func New(res *overlay.Resolver, x *assets.LevelExtractor) *Auditor {
	return &Auditor{res: res, x: x, logger: log.New(io.Discard)}
}

// SetLogger installs a logger for audit tracing.
func (a *Auditor) SetLogger(l *log.Logger) {
	if l != nil {
		a.logger = l
	}
}

// Audit classifies every asset in the closed bundle, plus the derived
// companion map and model assets, as found or missing. Order is
// deterministic: bundle order for direct assets, sorted paths for the
// deduplicated model set.
func (a *Auditor) Audit(closed *assets.Bundle) *Outcome {
	out := &Outcome{}

	for _, r := range closed.Images() {
		a.classify(out, r, a.res.Exists(r.Path))
	}
	for _, r := range closed.Audio() {
		a.classify(out, r, a.res.Exists(r.Path))
	}

	// Levels: decode check plus companion map, collecting model references
	// from every readable companion for the final pass.
	models := make(map[string]string, 8) // model path -> first referencing map
	for _, r := range closed.Levels() {
		a.auditLevel(out, r, models)
	}

	for _, r := range closed.Materials() {
		a.auditMaterial(out, r)
	}

	for _, path := range sortutil.SortedKeys(models) {
		r := assets.Ref{Kind: assets.KindModel, Path: path, Parent: models[path]}
		a.classify(out, r, a.res.Exists(path))
	}
	return out
}

func (a *Auditor) auditLevel(out *Outcome, r assets.Ref, models map[string]string) {
	if _, err := a.x.Decode(r.Path); err != nil {
		a.logger.Debug("level failed decode", "level", r.Path, "err", err)
		out.Missing = append(out.Missing, Entry{Kind: assets.KindLevel, Path: r.Path, Parent: r.Parent})
	} else {
		out.Found = append(out.Found, Entry{Kind: assets.KindLevel, Path: r.Path, Parent: r.Parent})
	}

	// The companion map is checked regardless of the decode outcome; a
	// missing companion is reported under the level's own path.
	mapPath := mapfile.CompanionPath(r.Path)
	data, err := a.res.ReadFile(mapPath)
	if err != nil {
		out.Missing = append(out.Missing, Entry{Kind: assets.KindMap, Path: r.Path, Parent: r.Parent})
		return
	}
	out.Found = append(out.Found, Entry{Kind: assets.KindMap, Path: mapPath, Parent: r.Path})
	for _, model := range mapfile.ExtractModels(data) {
		if _, dup := models[model]; !dup {
			models[model] = mapPath
		}
	}
}

func (a *Auditor) auditMaterial(out *Outcome, r assets.Ref) {
	if path, ok := assets.ResolveMaterialFile(a.res, r.Path); ok {
		out.Found = append(out.Found, Entry{Kind: assets.KindMaterial, Path: path, Parent: r.Parent})
	} else {
		out.Missing = append(out.Missing, Entry{Kind: assets.KindMaterial, Path: r.Path, Parent: r.Parent})
	}
	if path, ok := assets.ResolveMaterialImage(a.res, r.Path); ok {
		out.Found = append(out.Found, Entry{Kind: assets.KindMaterialImage, Path: path, Parent: r.Parent})
	} else {
		// No single candidate is authoritative, so the miss is reported
		// under the material's own name.
		out.Missing = append(out.Missing, Entry{Kind: assets.KindMaterialImage, Path: r.Path, Parent: r.Parent})
	}
}

func (a *Auditor) classify(out *Outcome, r assets.Ref, found bool) {
	e := Entry{Kind: r.Kind, Path: r.Path, Parent: r.Parent}
	if found {
		out.Found = append(out.Found, e)
	} else {
		out.Missing = append(out.Missing, e)
	}
}
