package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parasti/neverball-checker/internal/overlay"
	"github.com/parasti/neverball-checker/internal/sol"
)

// fakeStore builds a resolver over in-memory stores and a decoder that maps
// level-file contents to canned metadata.
type fakeStore struct {
	files map[string]string    // "addon/..." or "base/..." -> content
	metas map[string]*sol.Meta // content marker -> decoded meta
}

func (s fakeStore) resolver() *overlay.Resolver {
	fsys := overlay.FS{
		Stat: func(path string) bool {
			_, ok := s.files[filepath.ToSlash(path)]
			return ok
		},
		ReadFile: func(path string) ([]byte, error) {
			body, ok := s.files[filepath.ToSlash(path)]
			if !ok {
				return nil, os.ErrNotExist
			}
			return []byte(body), nil
		},
	}
	return overlay.New("base", "addon", fsys)
}

func (s fakeStore) decode(data []byte) (*sol.Meta, error) {
	if m, ok := s.metas[string(data)]; ok {
		return m, nil
	}
	return nil, errors.New("undecodable")
}

func (s fakeStore) extractor() *LevelExtractor {
	return NewLevelExtractor(s.resolver(), s.decode)
}

func paths(refs []Ref) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Path)
	}
	return out
}

// --- set manifest ------------------------------------------------------------

func TestExtractSetLayout(t *testing.T) {
	manifest := "Easy Levels\nThe stock easy set.\nNeverball Team\n" +
		"shot-easy/easy.jpg\n75 150 300\n" +
		"map-easy/bumps.sol\n\nmap-easy/coins.sol\n"
	b := ExtractSet("set-easy.txt", []byte(manifest))

	require.Equal(t, []string{"shot-easy/easy.jpg"}, paths(b.Images()))
	assert.Equal(t, "set-easy.txt", b.Images()[0].Parent)
	assert.Equal(t, []string{"map-easy/bumps.sol", "map-easy/coins.sol"}, paths(b.Levels()))
	assert.Empty(t, b.Audio())
	assert.Empty(t, b.Materials())
}

func TestExtractSetEmptyScreenshotAndCRLF(t *testing.T) {
	manifest := "n\r\nd\r\na\r\n\r\nscores\r\nmap/a.sol\r\n"
	b := ExtractSet("set.txt", []byte(manifest))
	assert.Empty(t, b.Images())
	assert.Equal(t, []string{"map/a.sol"}, paths(b.Levels()))
}

func TestExtractSetShortManifest(t *testing.T) {
	b := ExtractSet("set.txt", []byte("name\ndesc\n"))
	assert.Zero(t, b.Len())
}

// --- level extraction --------------------------------------------------------

func TestExtractLevelFieldsAndSentinels(t *testing.T) {
	s := fakeStore{
		files: map[string]string{"base/map-easy/bumps.sol": "LEVEL-A"},
		metas: map[string]*sol.Meta{
			"LEVEL-A": {
				Fields: map[string]string{
					"shot": "screenshots/bumps.png",
					"grad": "back/land.png",
					"song": "bgm/track1.ogg",
					"back": "map-back/jupiter.sol",
				},
				Materials: []string{"mtrl/edge", "NULL", "default", "mtrl/brick"},
			},
		},
	}
	b := s.extractor().Extract("map-easy/bumps.sol")

	assert.ElementsMatch(t, []string{"screenshots/bumps.png", "back/land.png"}, paths(b.Images()))
	assert.Equal(t, []string{"bgm/track1.ogg"}, paths(b.Audio()))
	assert.Equal(t, []string{"map-back/jupiter.sol"}, paths(b.Levels()))
	assert.Equal(t, []string{"mtrl/edge", "mtrl/brick"}, paths(b.Materials()),
		"sentinel material names must be dropped")
	for _, r := range b.Materials() {
		assert.Equal(t, "map-easy/bumps.sol", r.Parent)
	}
}

func TestExtractLevelFailuresYieldEmptyBundle(t *testing.T) {
	s := fakeStore{
		files: map[string]string{"base/map/broken.sol": "GARBAGE"},
		metas: map[string]*sol.Meta{},
	}
	x := s.extractor()

	assert.Zero(t, x.Extract("map/missing.sol").Len(), "absent level")
	assert.Zero(t, x.Extract("map/broken.sol").Len(), "undecodable level")
}

// --- closure -----------------------------------------------------------------

func TestClosureFollowsBackgroundChain(t *testing.T) {
	s := fakeStore{
		files: map[string]string{
			"base/map/a.sol": "A",
			"base/map/b.sol": "B",
		},
		metas: map[string]*sol.Meta{
			"A": {Fields: map[string]string{"back": "map/b.sol", "song": "bgm/a.ogg"}},
			"B": {Fields: map[string]string{"shot": "shot/b.png"}},
		},
	}
	start := NewBundle()
	start.AddLevel("map/a.sol", "set.txt")

	closed := s.extractor().Closure(start)
	assert.Equal(t, []string{"map/a.sol", "map/b.sol"}, paths(closed.Levels()))
	assert.Equal(t, []string{"bgm/a.ogg"}, paths(closed.Audio()))
	assert.Equal(t, []string{"shot/b.png"}, paths(closed.Images()))
}

func TestClosureTerminatesOnCycle(t *testing.T) {
	s := fakeStore{
		files: map[string]string{
			"base/map/a.sol": "A",
			"base/map/b.sol": "B",
		},
		metas: map[string]*sol.Meta{
			"A": {Fields: map[string]string{"back": "map/b.sol"}},
			"B": {Fields: map[string]string{"back": "map/a.sol"}},
		},
	}
	start := NewBundle()
	start.AddLevel("map/a.sol", "set.txt")

	closed := s.extractor().Closure(start)
	assert.ElementsMatch(t, []string{"map/a.sol", "map/b.sol"}, paths(closed.Levels()))
}

func TestClosureSelfReferenceTerminates(t *testing.T) {
	s := fakeStore{
		files: map[string]string{"base/map/a.sol": "A"},
		metas: map[string]*sol.Meta{
			"A": {Fields: map[string]string{"back": "map/a.sol"}},
		},
	}
	start := NewBundle()
	start.AddLevel("map/a.sol", "set.txt")

	closed := s.extractor().Closure(start)
	assert.Equal(t, []string{"map/a.sol"}, paths(closed.Levels()))
}

func TestClosureRetainsFirstParent(t *testing.T) {
	s := fakeStore{
		files: map[string]string{
			"base/map/a.sol": "A",
			"base/map/b.sol": "B",
		},
		metas: map[string]*sol.Meta{
			// Both levels reference the same song.
			"A": {Fields: map[string]string{"song": "bgm/shared.ogg", "back": "map/b.sol"}},
			"B": {Fields: map[string]string{"song": "bgm/shared.ogg"}},
		},
	}
	start := NewBundle()
	start.AddLevel("map/a.sol", "set.txt")

	closed := s.extractor().Closure(start)
	require.Len(t, closed.Audio(), 1)
	assert.Equal(t, "map/a.sol", closed.Audio()[0].Parent)
}

func TestClosureDepthFirstBeforeNextListedLevel(t *testing.T) {
	s := fakeStore{
		files: map[string]string{
			"base/map/a.sol":    "A",
			"base/map/aback.sol": "AB",
			"base/map/c.sol":    "C",
		},
		metas: map[string]*sol.Meta{
			"A":  {Fields: map[string]string{"back": "map/aback.sol"}},
			"AB": {},
			"C":  {},
		},
	}
	start := NewBundle()
	start.AddLevel("map/a.sol", "set.txt")
	start.AddLevel("map/c.sol", "set.txt")

	closed := s.extractor().Closure(start)
	// a's background chain is fully expanded before c would add anything,
	// but the accumulated level order keeps manifest entries first.
	assert.Equal(t, []string{"map/a.sol", "map/c.sol", "map/aback.sol"}, paths(closed.Levels()))
}

// --- bundle semantics --------------------------------------------------------

func TestBundleMergeIsIdempotent(t *testing.T) {
	a := NewBundle()
	a.AddImage("shot.png", "x.sol")
	b := NewBundle()
	b.AddImage("shot.png", "y.sol")
	b.AddImage("other.png", "y.sol")

	a.Merge(b)
	a.Merge(b)
	require.Len(t, a.Images(), 2)
	assert.Equal(t, "x.sol", a.Images()[0].Parent, "first insertion's parent wins")
}

// --- materials ---------------------------------------------------------------

func TestResolveMaterialFileOrder(t *testing.T) {
	s := fakeStore{files: map[string]string{
		"base/textures/mtrl/brick": "m",
		"base/mtrl/brick":          "m",
	}}
	res := s.resolver()
	p, ok := ResolveMaterialFile(res, "mtrl/brick")
	require.True(t, ok)
	assert.Equal(t, "textures/mtrl/brick", p, "textures/ candidate is preferred")

	s2 := fakeStore{files: map[string]string{"base/mtrl/brick": "m"}}
	p, ok = ResolveMaterialFile(s2.resolver(), "mtrl/brick")
	require.True(t, ok)
	assert.Equal(t, "mtrl/brick", p)

	_, ok = ResolveMaterialFile(fakeStore{}.resolver(), "mtrl/brick")
	assert.False(t, ok)
}

func TestResolveMaterialImageOrder(t *testing.T) {
	s := fakeStore{files: map[string]string{
		"base/textures/mtrl/brick.jpg": "i",
		"base/mtrl/brick.png":          "i",
	}}
	p, ok := ResolveMaterialImage(s.resolver(), "mtrl/brick")
	require.True(t, ok)
	assert.Equal(t, "textures/mtrl/brick.jpg", p)

	s2 := fakeStore{files: map[string]string{"base/mtrl/brick.jpg": "i"}}
	p, ok = ResolveMaterialImage(s2.resolver(), "mtrl/brick")
	require.True(t, ok)
	assert.Equal(t, "mtrl/brick.jpg", p)

	_, ok = ResolveMaterialImage(fakeStore{}.resolver(), "mtrl/brick")
	assert.False(t, ok)
}

func TestMaterialFileAndImageAreIndependent(t *testing.T) {
	s := fakeStore{files: map[string]string{"base/textures/mtrl/brick": "m"}}
	res := s.resolver()

	_, fileOK := ResolveMaterialFile(res, "mtrl/brick")
	_, imgOK := ResolveMaterialImage(res, "mtrl/brick")
	assert.True(t, fileOK)
	assert.False(t, imgOK)
}
