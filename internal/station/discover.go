package station

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the file types the audio subsystem can decode.
var DefaultExtensions = []string{".mp3", ".wav"}

// Discover walks root in lexical order and returns every file whose
// extension matches one of exts (DefaultExtensions when empty).
func Discover(root string, exts ...string) ([]Source, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	var out []Source
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(d.Name())
		if !hasExt(ext, exts) {
			return nil
		}
		out = append(out, Source{
			Path: path,
			Name: strings.TrimSuffix(d.Name(), ext),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	return out, nil
}

func hasExt(ext string, exts []string) bool {
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
