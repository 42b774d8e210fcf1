package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/parasti/neverball-checker/internal/assets"
	"github.com/parasti/neverball-checker/internal/audit"
	"github.com/parasti/neverball-checker/internal/config"
	"github.com/parasti/neverball-checker/internal/overlay"
)

// session holds the per-invocation collaborators: one resolver, one
// extractor, one outcome. Nothing survives the command.
type session struct {
	setPath string // physical path of the set manifest
	setName string // manifest base name, used as logical name and parent tag
	logger  *log.Logger

	res *overlay.Resolver
	x   *assets.LevelExtractor
}

// newSession validates the input configuration (base directory and manifest
// must exist; anything else is recoverable) and builds the audit
// collaborators. The addon directory is the manifest's parent directory.
func newSession(setArg string) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	dataDir := flagData
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	if fi, err := os.Stat(dataDir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("base data directory not found: %s", dataDir)
	}
	if fi, err := os.Stat(setArg); err != nil || fi.IsDir() {
		return nil, fmt.Errorf("set file not found: %s", setArg)
	}

	logger := log.New(os.Stderr)
	if flagVerbose || cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	s := &session{
		setPath: setArg,
		setName: filepath.Base(setArg),
		logger:  logger,
	}
	logger.Debug("stores", "base", dataDir, "addon", filepath.Dir(setArg))
	s.res = overlay.New(dataDir, filepath.Dir(setArg), overlay.OSFS())
	s.res.SetLogger(logger)
	s.x = assets.NewLevelExtractor(s.res, nil)
	s.x.SetLogger(logger)
	return s, nil
}

// audit runs the full pipeline: manifest extraction, closure, existence
// audit.
func (s *session) audit() (*audit.Outcome, error) {
	data, err := os.ReadFile(s.setPath)
	if err != nil {
		return nil, fmt.Errorf("read set file: %w", err)
	}
	start := assets.ExtractSet(s.setName, data)
	s.logger.Debug("manifest extracted",
		"levels", len(start.Levels()), "images", len(start.Images()))

	closed := s.x.Closure(start)
	s.logger.Debug("closure computed", "refs", closed.Len())

	a := audit.New(s.res, s.x)
	a.SetLogger(s.logger)
	return a.Audit(closed), nil
}
