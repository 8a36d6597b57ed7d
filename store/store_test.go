package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/memmesh/memmesh/core"
)

func TestLoad_MissingFileReturnsEmpty(t *testing.T) {
	s := New()
	snap := s.Load(t.TempDir())
	if snap == nil || len(snap.Chunks) != 0 {
		t.Fatalf("expected fresh empty snapshot, got %#v", snap)
	}
	if snap.Version != core.SchemaVersion {
		t.Fatalf("unexpected version %q", snap.Version)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := New()
	root := t.TempDir()

	snap := core.NewSnapshot()
	snap.Chunks = append(snap.Chunks, core.Chunk{
		ID:          "c1",
		Content:     "remembered text",
		ContentHash: core.HashContent("remembered text"),
		Embedding:   []float64{0.1, 0.2},
		Timestamp:   "2026-01-02T03:04:05Z",
		DocID:       "doc-1",
	})
	if err := s.Save(root, snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if snap.TotalChunks != 1 || snap.LastUpdated == "" {
		t.Fatalf("save did not stamp snapshot: %#v", snap)
	}

	loaded := s.Load(root)
	if len(loaded.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(loaded.Chunks))
	}
	got := loaded.Chunks[0]
	if got.ID != "c1" || got.Content != "remembered text" || got.DocID != "doc-1" {
		t.Fatalf("chunk mismatch: %#v", got)
	}
	if len(got.Embedding) != 2 {
		t.Fatalf("embedding lost: %#v", got.Embedding)
	}
	if loaded.TotalChunks != 1 || loaded.Version != core.SchemaVersion {
		t.Fatalf("snapshot metadata mismatch: %#v", loaded)
	}
}

func TestLoad_CorruptFileReturnsEmpty(t *testing.T) {
	s := New()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Dir(Path(root)), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(root), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	snap := s.Load(root)
	if len(snap.Chunks) != 0 {
		t.Fatalf("expected empty snapshot for corrupt file, got %d chunks", len(snap.Chunks))
	}
}

func TestSave_CreatesDirectoryAndReplacesAtomically(t *testing.T) {
	s := New()
	root := t.TempDir()

	if err := s.Save(root, core.NewSnapshot()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(Path(root)); err != nil {
		t.Fatalf("memory file not created: %v", err)
	}
	if _, err := os.Stat(Path(root) + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}

	// A second save overwrites in place.
	snap := core.NewSnapshot()
	snap.Chunks = append(snap.Chunks, core.Chunk{ID: "x", Content: "y", ContentHash: core.HashContent("y")})
	if err := s.Save(root, snap); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if got := s.Load(root); len(got.Chunks) != 1 {
		t.Fatalf("overwrite lost data: %#v", got)
	}
}
