// Package mapfile handles the text-format .map companion of a compiled
// level. Model references only exist here: the compiler does not carry
// them into the binary level file, so the checker has to read the map
// source that ships alongside it.
package mapfile

import (
	"regexp"
	"strings"

	"github.com/parasti/neverball-checker/internal/textutil"
)

const (
	solSuffix = ".sol"
	mapSuffix = ".map"
)

// CompanionPath derives the companion map path for a level path by suffix
// substitution. A path without the expected suffix is returned unchanged
// and will simply fail to resolve.
func CompanionPath(levelPath string) string {
	if !strings.HasSuffix(levelPath, solSuffix) {
		return levelPath
	}
	return strings.TrimSuffix(levelPath, solSuffix) + mapSuffix
}

// A model reference is an entity key/value pair: "model" "path/to/file".
// Whitespace between key and value varies by editor; everything else on the
// line is irrelevant.
var reModel = regexp.MustCompile(`"model"\s+"([^"]+)"`)

// ExtractModels scans map-file text for model entity references. The result
// is deduplicated, in order of first appearance.
func ExtractModels(data []byte) []string {
	matches := reModel.FindAllSubmatch(textutil.NormalizeLF(data), -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		path := string(m[1])
		if path == "" {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	return out
}
