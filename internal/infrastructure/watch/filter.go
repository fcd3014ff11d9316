package watch

import (
	"path/filepath"
	"strings"
)

// DocumentPatterns match structured and rendered requirement documents.
var DocumentPatterns = []string{"*.yaml", "*.yml", "*.md"}

// scratchPatterns match editor swap and backup files.
var scratchPatterns = []string{"*.swp", "*.swx", "*~", ".#*", "*.tmp"}

// Filter decides which paths trigger a re-run. Only base names are matched,
// case-insensitively.
type Filter struct {
	include []string
	exclude []string
}

// NewFilter builds a filter. Nil include means DocumentPatterns.
func NewFilter(include, exclude []string) *Filter {
	if include == nil {
		include = DocumentPatterns
	}
	return &Filter{include: include, exclude: append(append([]string{}, scratchPatterns...), exclude...)}
}

func (f *Filter) Matches(path string) bool {
	base := strings.ToLower(filepath.Base(path))

	for _, p := range f.exclude {
		if ok, _ := filepath.Match(p, base); ok {
			return false
		}
	}
	for _, p := range f.include {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}
