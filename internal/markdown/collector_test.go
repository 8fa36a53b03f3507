package markdown

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"
)

func TestCollectorSortsAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"c.md":           {Data: []byte("# C")},
		"a.md":           {Data: []byte("# A")},
		"b.md":           {Data: []byte("# B")},
		"notes.txt":      {Data: []byte("not markdown")},
		"README.MD":      {Data: []byte("case differs")},
		"nested/d.md":    {Data: []byte("# D")},
		"folder.md/e.md": {Data: []byte("# E")},
	}

	paths, err := NewCollector(fsys, CollectorConfig{}).Collect(context.Background(), ".")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []string{"a.md", "b.md", "c.md"}
	if !slices.Equal(paths, want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
}

func TestCollectorRecursive(t *testing.T) {
	fsys := fstest.MapFS{
		"z.md":          {Data: []byte("# Z")},
		"guides/b.md":   {Data: []byte("# B")},
		"guides/a.md":   {Data: []byte("# A")},
		"guides/x.yaml": {Data: []byte("k: v")},
	}

	paths, err := NewCollector(fsys, CollectorConfig{Recursive: true}).Collect(context.Background(), ".")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []string{"guides/a.md", "guides/b.md", "z.md"}
	if !slices.Equal(paths, want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
}

func TestCollectorSubdirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"top.md":      {Data: []byte("# Top")},
		"guides/a.md": {Data: []byte("# A")},
	}

	paths, err := NewCollector(fsys, CollectorConfig{}).Collect(context.Background(), "guides")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if !slices.Equal(paths, []string{"guides/a.md"}) {
		t.Fatalf("unexpected paths %v", paths)
	}
}

func TestCollectorMissingDirectoryYieldsEmpty(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	paths, err := NewCollector(os.DirFS(missing), CollectorConfig{}).Collect(context.Background(), ".")
	if err != nil {
		t.Fatalf("expected no error for missing directory, got %v", err)
	}
	if paths == nil || len(paths) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", paths)
	}
}

func TestCollectorEmptyDirectory(t *testing.T) {
	paths, err := NewCollector(os.DirFS(t.TempDir()), CollectorConfig{}).Collect(context.Background(), ".")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no paths, got %v", paths)
	}
}

func TestCollectorOnDisk(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.md", "a.md", "c.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# "+name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	paths, err := NewCollector(os.DirFS(dir), CollectorConfig{}).Collect(context.Background(), ".")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if !slices.Equal(paths, []string{"a.md", "b.md", "c.md"}) {
		t.Fatalf("expected sorted paths, got %v", paths)
	}
}

func TestCollectorCustomPattern(t *testing.T) {
	fsys := fstest.MapFS{
		"a.markdown": {Data: []byte("# A")},
		"b.md":       {Data: []byte("# B")},
	}

	paths, err := NewCollector(fsys, CollectorConfig{Pattern: "*.markdown"}).Collect(context.Background(), ".")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if !slices.Equal(paths, []string{"a.markdown"}) {
		t.Fatalf("unexpected paths %v", paths)
	}
}

func TestCollectorRejectsBadPattern(t *testing.T) {
	_, err := NewCollector(fstest.MapFS{}, CollectorConfig{Pattern: "[md"}).Collect(context.Background(), ".")
	if !errors.Is(err, ErrPatternInvalid) {
		t.Fatalf("expected ErrPatternInvalid, got %v", err)
	}
}

func TestCollectorHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCollector(fstest.MapFS{"a.md": {}}, CollectorConfig{}).Collect(ctx, ".")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
