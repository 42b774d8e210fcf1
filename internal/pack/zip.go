package pack

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fixedZipTime ensures byte-for-byte reproducible archives (1980-01-01 UTC).
var fixedZipTime = time.Unix(315532800, 0).UTC()

// WriteArchive writes the selected items as a zip at zipPath. The write is
// atomic: a temp file in the destination directory is renamed into place,
// so readers never observe a partial archive. Entry names are sanitized and
// deduplicated; timestamps are fixed for reproducibility.
func WriteArchive(zipPath string, items []Item) (err error) {
	dir := filepath.Dir(zipPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(zipPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	zw := zip.NewWriter(tmp)
	used := make(map[string]struct{}, len(items))
	for _, it := range items {
		name := ensureUniqueName(sanitizePath(it.Name), used)
		if werr := writeFileEntry(zw, name, it.Source); werr != nil {
			_ = zw.Close()
			_ = tmp.Close()
			return werr
		}
	}
	if err = zw.Close(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, zipPath)
}

// writeFileEntry streams the file at src into the archive under name.
func writeFileEntry(zw *zip.Writer, name, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	h := &zip.FileHeader{Name: name, Method: zip.Deflate}
	h.SetMode(0o644)
	h.Modified = fixedZipTime
	w, err := zw.CreateHeader(h)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// sanitizePath normalizes zip entry paths (forward slashes, no drive, no
// leading '/') and removes '.' and '..' segments without escaping the root.
func sanitizePath(p string) string {
	s := filepath.ToSlash(p)
	if len(s) > 1 && s[1] == ':' {
		s = s[2:]
	}
	s = strings.TrimLeft(s, "/")
	parts := strings.Split(s, "/")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, part)
	}
	s = strings.Join(stack, "/")
	if s == "" {
		return "entry"
	}
	return s
}

// ensureUniqueName returns a unique name by appending -1, -2, ... when needed.
func ensureUniqueName(name string, used map[string]struct{}) string {
	if _, ok := used[name]; !ok {
		used[name] = struct{}{}
		return name
	}
	base, ext := name, ""
	if i := strings.LastIndex(name, "."); i > 0 {
		base, ext = name[:i], name[i:]
	}
	for n := 1; ; n++ {
		alt := fmt.Sprintf("%s-%d%s", base, n, ext)
		if _, ok := used[alt]; !ok {
			used[alt] = struct{}{}
			return alt
		}
	}
}
