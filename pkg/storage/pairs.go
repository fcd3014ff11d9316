package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DocumentPair is a structured YAML document and its Markdown rendering.
type DocumentPair struct {
	Name         string
	YAMLPath     string
	MarkdownPath string
}

// DiscoverPairs lists the document pairs in dir. Every *.yaml or *.yml file is
// paired with the first .md file, in name order, whose name starts with the
// YAML base name. YAML files without a rendering are skipped. A missing
// directory yields no pairs. Pair paths are joined onto dir as given, so they
// resolve through ReadFile the same way dir did.
func (r *FilesystemRepository) DiscoverPairs(dir string) ([]DocumentPair, error) {
	path, err := r.ResolvePath(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	var yamls, markdowns []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			yamls = append(yamls, e.Name())
		case ".md":
			markdowns = append(markdowns, e.Name())
		}
	}
	sort.Strings(yamls)
	sort.Strings(markdowns)

	var pairs []DocumentPair
	for _, y := range yamls {
		base := strings.TrimSuffix(y, filepath.Ext(y))
		for _, m := range markdowns {
			if strings.HasPrefix(m, base) {
				pairs = append(pairs, DocumentPair{
					Name:         base,
					YAMLPath:     filepath.Join(dir, y),
					MarkdownPath: filepath.Join(dir, m),
				})
				break
			}
		}
	}
	return pairs, nil
}
