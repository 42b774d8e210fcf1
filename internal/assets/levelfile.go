package assets

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/parasti/neverball-checker/internal/overlay"
	"github.com/parasti/neverball-checker/internal/sol"
)

// Sentinel material names meaning "no material"; exact, case-sensitive.
const (
	mtrlNone    = "NULL"
	mtrlDefault = "default"
)

// DecodeFunc turns raw level-file bytes into decoded metadata. Production
// wires sol.Decode; tests inject fakes.
type DecodeFunc func([]byte) (*sol.Meta, error)

// LevelExtractor reads level files through the overlay resolver and yields
// their direct asset references.
type LevelExtractor struct {
	res    *overlay.Resolver
	decode DecodeFunc
	logger *log.Logger
}

// NewLevelExtractor builds an extractor over res. A nil decode defaults to
// the SOL decoder.
func NewLevelExtractor(res *overlay.Resolver, decode DecodeFunc) *LevelExtractor {
	if decode == nil {
		decode = sol.Decode
	}
	return &LevelExtractor{res: res, decode: decode, logger: log.New(io.Discard)}
}

// SetLogger installs a logger for extraction tracing.
func (e *LevelExtractor) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// Decode resolves, reads and decodes the level at the given logical path.
func (e *LevelExtractor) Decode(levelPath string) (*sol.Meta, error) {
	data, err := e.res.ReadFile(levelPath)
	if err != nil {
		return nil, err
	}
	return e.decode(data)
}

// Extract returns the direct references of one level file. A level that
// cannot be located or decoded yields an empty bundle; the auditor reports
// the breakage when it re-reads the level itself.
func (e *LevelExtractor) Extract(levelPath string) *Bundle {
	b := NewBundle()
	m, err := e.Decode(levelPath)
	if err != nil {
		e.logger.Debug("level unreadable, skipping extraction", "level", levelPath, "err", err)
		return b
	}
	if shot := m.Field("shot"); shot != "" {
		b.AddImage(shot, levelPath)
	}
	if grad := m.Field("grad"); grad != "" {
		b.AddImage(grad, levelPath)
	}
	if song := m.Field("song"); song != "" {
		b.AddAudio(song, levelPath)
	}
	if back := m.Field("back"); back != "" {
		b.AddLevel(back, levelPath)
	}
	for _, name := range m.Materials {
		if name == mtrlNone || name == mtrlDefault {
			continue
		}
		b.AddMaterial(name, levelPath)
	}
	return b
}
