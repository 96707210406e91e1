package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"appstore_reviews/internal/domain"
)

// Writer persists review lists as JSON files in a single directory.
// The core always hands it a fully-formed in-memory result, so a failed
// write never corrupts collected data.
type Writer struct {
	dir string
}

func New(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir}
}

// WriteStorefront saves one storefront's list to <appID>-<cc>.json.
// An empty list still produces a file containing [].
func (w *Writer) WriteStorefront(appID, country string, rs []domain.Review) (string, error) {
	name := fmt.Sprintf("%s-%s.json", appID, strings.ToLower(country))
	return w.write(name, rs)
}

// WriteMerged saves the deduplicated cross-storefront list to <appID>-all.json.
func (w *Writer) WriteMerged(appID string, rs []domain.Review) (string, error) {
	return w.write(appID+"-all.json", rs)
}

func (w *Writer) write(name string, rs []domain.Review) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if rs == nil {
		rs = []domain.Review{}
	}
	b, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
