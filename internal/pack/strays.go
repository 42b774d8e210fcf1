package pack

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/parasti/neverball-checker/internal/sortutil"
)

// Strays walks the addon directory and returns the logical paths of regular
// files that the audit never referenced, sorted. Dotfiles, dot-directories
// and the paths named in skip (the set manifest itself, typically) are
// ignored. Walk errors on individual entries are skipped; an unreadable
// addon root returns the error.
func Strays(addonDir string, referenced map[string]struct{}, skip map[string]struct{}) ([]string, error) {
	var strays []string
	err := filepath.WalkDir(addonDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == addonDir {
				return err
			}
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != addonDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, rerr := filepath.Rel(addonDir, path)
		if rerr != nil {
			return nil
		}
		logical := filepath.ToSlash(rel)
		if _, ok := referenced[logical]; ok {
			return nil
		}
		if _, ok := skip[logical]; ok {
			return nil
		}
		strays = append(strays, logical)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sortutil.StablePathSort(strays), nil
}
