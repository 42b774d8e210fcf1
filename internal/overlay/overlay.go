// Package overlay resolves logical asset paths against the two-tier
// Neverball data layout: an addon directory (the level set's own files)
// layered over the stock base data directory. The addon copy always wins;
// when both stores carry the same logical path the resolution is marked
// shadowed, which later drives the minimal-packaging decision.
//
// A Resolver memoizes every probe for the lifetime of one audit run, so a
// logical path touched by several components (level decode, material
// lookup, packaging) costs at most two filesystem stats.
package overlay

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
)

// Origin identifies which store satisfied a resolution.
type Origin int

const (
	// OriginAddon means the addon directory provided the file.
	OriginAddon Origin = iota
	// OriginBase means only the base data directory provided the file.
	OriginBase
)

func (o Origin) String() string {
	if o == OriginAddon {
		return "addon"
	}
	return "base"
}

// Record is the per-logical-path resolution bookkeeping retained across an
// audit run.
type Record struct {
	Logical  string // slash-separated path relative to both roots
	Physical string // winning physical path
	Origin   Origin
	Shadowed bool   // present in both stores; base copy is redundant
	BaseCopy string // physical base path when Shadowed
}

// FS is the injected filesystem capability surface. Tests substitute maps;
// production uses OSFS.
type FS struct {
	Stat     func(path string) bool
	ReadFile func(path string) ([]byte, error)
}

// OSFS probes and reads the real filesystem. Stat only accepts regular files
// so a directory at an asset path does not count as found.
func OSFS() FS {
	return FS{
		Stat: func(path string) bool {
			fi, err := os.Stat(path)
			return err == nil && fi.Mode().IsRegular()
		},
		ReadFile: os.ReadFile,
	}
}

// Resolver maps logical asset paths onto the addon/base overlay. All state
// is scoped to one value; independent audits never interfere.
type Resolver struct {
	baseDir  string
	addonDir string
	fsys     FS
	logger   *log.Logger

	memo map[string]*Record // logical -> record; nil value = known absent
}

// New returns a Resolver over baseDir and addonDir using the given FS.
func New(baseDir, addonDir string, fsys FS) *Resolver {
	return &Resolver{
		baseDir:  baseDir,
		addonDir: addonDir,
		fsys:     fsys,
		logger:   log.New(io.Discard),
		memo:     make(map[string]*Record, 64),
	}
}

// SetLogger installs a logger for resolution tracing.
func (r *Resolver) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}

// AddonDir returns the addon directory this resolver probes.
func (r *Resolver) AddonDir() string { return r.addonDir }

// Resolve maps a logical path to its physical location, addon first.
// The second return is false when the path exists in neither store.
// Resolution is idempotent: repeated calls return the memoized record.
func (r *Resolver) Resolve(logical string) (string, bool) {
	rec := r.lookup(logical)
	if rec == nil {
		return "", false
	}
	return rec.Physical, true
}

// Exists reports whether the logical path resolves, with the same
// memoization side effect as Resolve.
func (r *Resolver) Exists(logical string) bool {
	return r.lookup(logical) != nil
}

// ReadFile resolves the logical path and reads the winning physical copy.
func (r *Resolver) ReadFile(logical string) ([]byte, error) {
	rec := r.lookup(logical)
	if rec == nil {
		return nil, os.ErrNotExist
	}
	return r.fsys.ReadFile(rec.Physical)
}

// Record returns the memoized record for a logical path, if it resolved.
func (r *Resolver) Record(logical string) (Record, bool) {
	if rec, ok := r.memo[logical]; ok && rec != nil {
		return *rec, true
	}
	return Record{}, false
}

// Records returns every successful resolution of this run, sorted by
// logical path for deterministic consumption.
func (r *Resolver) Records() []Record {
	out := make([]Record, 0, len(r.memo))
	for _, rec := range r.memo {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Logical < out[j].Logical })
	return out
}

func (r *Resolver) lookup(logical string) *Record {
	if rec, ok := r.memo[logical]; ok {
		return rec
	}
	rec := r.probe(logical)
	r.memo[logical] = rec
	if rec == nil {
		r.logger.Debug("unresolved", "path", logical)
	} else {
		r.logger.Debug("resolved", "path", logical, "origin", rec.Origin, "shadowed", rec.Shadowed)
	}
	return rec
}

func (r *Resolver) probe(logical string) *Record {
	rel := filepath.FromSlash(logical)
	addonPhys := filepath.Join(r.addonDir, rel)
	basePhys := filepath.Join(r.baseDir, rel)

	if r.fsys.Stat(addonPhys) {
		rec := &Record{Logical: logical, Physical: addonPhys, Origin: OriginAddon}
		if r.fsys.Stat(basePhys) {
			rec.Shadowed = true
			rec.BaseCopy = basePhys
		}
		return rec
	}
	if r.fsys.Stat(basePhys) {
		return &Record{Logical: logical, Physical: basePhys, Origin: OriginBase}
	}
	return nil
}
