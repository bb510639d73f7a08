package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"garage/internal/domain"
)

// FileSource reads corpus documents from JSON files under a directory. Each
// file holds either a single document or an array of documents. A missing
// directory is an empty corpus, and unreadable or malformed files are
// skipped with a warning rather than failing the whole listing.
type FileSource struct {
	dir      string
	includes []string
}

// NewFileSource creates a file-backed document source.
func NewFileSource(dir string, includes []string) *FileSource {
	if len(includes) == 0 {
		includes = []string{"**/*.json"}
	}
	return &FileSource{dir: dir, includes: includes}
}

func (s *FileSource) ListDocuments(_ context.Context) ([]domain.Document, error) {
	if _, err := os.Stat(s.dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	fsys := os.DirFS(s.dir)
	var paths []string
	for _, pattern := range s.includes {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("bad include pattern %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	var docs []domain.Document
	seen := make(map[string]bool)
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true

		data, err := os.ReadFile(filepath.Join(s.dir, p))
		if err != nil {
			log.Warn("skipping unreadable corpus file", "path", p, "err", err)
			continue
		}

		parsed, err := parseDocuments(data)
		if err != nil {
			log.Warn("skipping malformed corpus file", "path", p, "err", err)
			continue
		}
		docs = append(docs, parsed...)
	}

	return docs, nil
}

// parseDocuments accepts either one document object or an array of them.
func parseDocuments(data []byte) ([]domain.Document, error) {
	var list []domain.Document
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single domain.Document
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []domain.Document{single}, nil
}
