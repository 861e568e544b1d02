package corpus

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Paintersrp/qs/internal/switcher"
	"github.com/Paintersrp/qs/internal/vault"
)

func writeTestNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func findByID(items []switcher.Item, id string) (switcher.Item, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return switcher.Item{}, false
}

func TestServiceAcquireSnapshotAppliesPendingUpdates(t *testing.T) {
	dir := t.TempDir()
	note := writeTestNote(t, dir, "note.md", "---\ntitle: First\n---\nOriginal content")

	svc := NewService(vault.New(dir, vault.Config{}))
	items, err := svc.AcquireSnapshot()
	if err != nil {
		t.Fatalf("AcquireSnapshot returned error: %v", err)
	}
	got, ok := findByID(items, "note.md")
	if !ok {
		t.Fatalf("expected note.md in corpus, got %+v", items)
	}
	if got.DisplayName != "First" {
		t.Fatalf("display name = %q, want First", got.DisplayName)
	}

	updated := "---\ntitle: Renamed\n---\nUpdated content"
	if err := os.WriteFile(note, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite note: %v", err)
	}

	svc.QueueUpdate("note.md")
	if got := svc.Stats().Pending; got != 1 {
		t.Fatalf("expected pending queue size 1, got %d", got)
	}

	items, err = svc.AcquireSnapshot()
	if err != nil {
		t.Fatalf("AcquireSnapshot with pending returned error: %v", err)
	}
	got, ok = findByID(items, "note.md")
	if !ok {
		t.Fatalf("expected note.md after update, got %+v", items)
	}
	if got.DisplayName != "Renamed" {
		t.Fatalf("display name = %q, want Renamed", got.DisplayName)
	}
	if svc.Stats().Pending != 0 {
		t.Fatalf("pending queue not drained: %d", svc.Stats().Pending)
	}
}

func TestServiceSnapshotReflectsRemovals(t *testing.T) {
	dir := t.TempDir()
	writeTestNote(t, dir, "keep.md", "# Keep")
	gone := writeTestNote(t, dir, "gone.md", "# Gone")

	svc := NewService(vault.New(dir, vault.Config{}))
	items, err := svc.AcquireSnapshot()
	if err != nil {
		t.Fatalf("AcquireSnapshot: %v", err)
	}
	if _, ok := findByID(items, "gone.md"); !ok {
		t.Fatal("expected gone.md before removal")
	}

	if err := os.Remove(gone); err != nil {
		t.Fatal(err)
	}
	svc.QueueUpdate("gone.md")

	items, err = svc.AcquireSnapshot()
	if err != nil {
		t.Fatalf("AcquireSnapshot after removal: %v", err)
	}
	if _, ok := findByID(items, "gone.md"); ok {
		t.Fatal("gone.md should have been dropped")
	}
	if _, ok := findByID(items, "keep.md"); !ok {
		t.Fatal("keep.md missing after removal pass")
	}
}

func TestServiceRebuildsStaleSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeTestNote(t, dir, "note.md", "# Note")

	svc := NewService(vault.New(dir, vault.Config{}))
	current := time.Now()
	svc.now = func() time.Time { return current }
	svc.maxAge = time.Minute

	if _, err := svc.AcquireSnapshot(); err != nil {
		t.Fatalf("AcquireSnapshot: %v", err)
	}
	first := svc.Stats().LastRebuild

	writeTestNote(t, dir, "later.md", "# Later")
	current = current.Add(2 * time.Minute)

	items, err := svc.AcquireSnapshot()
	if err != nil {
		t.Fatalf("AcquireSnapshot after stale window: %v", err)
	}
	if _, ok := findByID(items, "later.md"); !ok {
		t.Fatal("stale snapshot was not rebuilt")
	}
	if !svc.Stats().LastRebuild.After(first) {
		t.Fatal("last rebuild timestamp did not advance")
	}
}

func TestServiceCloseRejectsFurtherUse(t *testing.T) {
	dir := t.TempDir()
	writeTestNote(t, dir, "note.md", "# Note")

	svc := NewService(vault.New(dir, vault.Config{}))
	if _, err := svc.AcquireSnapshot(); err != nil {
		t.Fatalf("AcquireSnapshot: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := svc.AcquireSnapshot(); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}

	// QueueUpdate after close is a no-op, not a panic.
	svc.QueueUpdate("note.md")
}
