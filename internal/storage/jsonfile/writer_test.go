package jsonfile_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"appstore_reviews/internal/domain"
	"appstore_reviews/internal/storage/jsonfile"
)

func mustTS(t *testing.T, s string) domain.Timestamp {
	t.Helper()
	v, err := domain.ParseTimestamp(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func TestWriteStorefront_NameAndContent(t *testing.T) {
	dir := t.TempDir()
	w := jsonfile.New(dir)

	rs := []domain.Review{
		{ID: "2", Country: "US", Date: mustTS(t, "2024-05-02T10:00:00-07:00")},
		{ID: "1", Country: "US", Date: mustTS(t, "2024-05-01T10:00:00-07:00")},
	}
	path, err := w.WriteStorefront("123", "US", rs)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != "123-us.json" {
		t.Fatalf("unexpected file name %q", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var back []domain.Review
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 2 || back[0].ID != "2" || back[1].ID != "1" {
		t.Fatalf("order not preserved: %+v", back)
	}
}

func TestWriteStorefront_EmptyListWritesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	w := jsonfile.New(dir)

	path, err := w.WriteStorefront("123", "fr", nil)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got := strings.TrimSpace(string(b)); got != "[]" {
		t.Fatalf("expected [], got %q", got)
	}
}

func TestWriteMerged_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	w := jsonfile.New(dir)

	path, err := w.WriteMerged("123", []domain.Review{})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != "123-all.json" {
		t.Fatalf("unexpected file name %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
}
