package vault

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Paintersrp/qs/internal/switcher"
)

func writeNote(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
	return path
}

func findItem(t *testing.T, items []switcher.Item, id string) switcher.Item {
	t.Helper()
	for _, item := range items {
		if item.ID == id {
			return item
		}
	}
	t.Fatalf("item %s not found in %d items", id, len(items))
	return switcher.Item{}
}

const roadmapNote = `---
title: Project Roadmap
aliases:
  - plan
  - the plan
tags:
  - planning
status: active
priority: 2
updated: 2025-04-01
---

# Milestones

Work links to [[Budget 2025]] and [[missing note|ghost]].

## Next quarter

More detail in [external docs](https://example.com/docs).
See the #strategy notes too.
`

func TestSnapshotLoadsNoteMetadata(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNote(t, dir, "projects/roadmap.md", roadmapNote)
	writeNote(t, dir, "Budget 2025.md", "# Numbers\n")

	v := New(dir, Config{StarredPaths: []string{"projects/roadmap.md"}})
	items, err := v.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}

	item := findItem(t, items, "projects/roadmap.md")

	if item.DisplayName != "Project Roadmap" {
		t.Errorf("display name %q, want %q", item.DisplayName, "Project Roadmap")
	}
	if !reflect.DeepEqual(item.Aliases, []string{"plan", "the plan"}) {
		t.Errorf("aliases %v", item.Aliases)
	}
	if !reflect.DeepEqual(item.Tags, []string{"planning", "strategy"}) {
		t.Errorf("tags %v", item.Tags)
	}
	if !reflect.DeepEqual(item.Headers, []string{"Milestones", "Next quarter"}) {
		t.Errorf("headers %v", item.Headers)
	}
	if !item.Starred {
		t.Errorf("expected starred item")
	}
	if item.Phantom {
		t.Errorf("real note marked phantom")
	}

	if got := item.Properties["status"]; got != "active" {
		t.Errorf("status property %v", got)
	}
	if got := item.Properties["priority"]; got != 2 {
		t.Errorf("priority property %v (%T)", got, got)
	}

	// The updated frontmatter key overrides the file modification time.
	want := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	if !item.ModifiedAt.Equal(want) {
		t.Errorf("modified at %v, want %v", item.ModifiedAt, want)
	}

	links := item.Links
	for _, wantLink := range []string{"Budget 2025", "missing note", "external docs"} {
		found := false
		for _, link := range links {
			if link == wantLink {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("link %q missing from %v", wantLink, links)
		}
	}
}

func TestSnapshotCreatesPhantomsForUnresolvedLinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNote(t, dir, "projects/roadmap.md", roadmapNote)
	writeNote(t, dir, "Budget 2025.md", "# Numbers\n")

	items, err := New(dir, Config{}).Snapshot()
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}

	phantom := findItem(t, items, "missing note")
	if !phantom.Phantom {
		t.Fatalf("unresolved link target should be phantom")
	}
	if !phantom.ModifiedAt.IsZero() {
		t.Fatalf("phantom item carries a modification time")
	}

	// Resolved links never become phantoms.
	for _, item := range items {
		if item.Phantom && item.ID == "Budget 2025" {
			t.Fatalf("resolved link produced a phantom item")
		}
	}
}

func TestSnapshotSkipsIgnoredFolders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNote(t, dir, "keep.md", "kept\n")
	writeNote(t, dir, "archive/old.md", "ignored\n")
	writeNote(t, dir, ".obsidian/internal.md", "hidden\n")

	items, err := New(dir, Config{IgnoredFolders: []string{"archive"}}).Snapshot()
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}

	if len(items) != 1 || items[0].ID != "keep.md" {
		ids := make([]string, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ID)
		}
		t.Fatalf("expected only keep.md, got %v", ids)
	}
}

func TestSnapshotUntitledNoteUsesFileStem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNote(t, dir, "inbox/quick thought.md", "no frontmatter here\n")

	items, err := New(dir, Config{}).Snapshot()
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}

	item := findItem(t, items, "inbox/quick thought.md")
	if item.DisplayName != "quick thought" {
		t.Fatalf("display name %q, want file stem", item.DisplayName)
	}
}

func TestLoadItemReloadsSingleNote(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNote(t, dir, "note.md", "---\ntitle: Before\n---\n")

	v := New(dir, Config{})
	item, err := v.LoadItem("note.md")
	if err != nil {
		t.Fatalf("LoadItem returned error: %v", err)
	}
	if item.DisplayName != "Before" {
		t.Fatalf("display name %q", item.DisplayName)
	}

	writeNote(t, dir, "note.md", "---\ntitle: After\n---\n")
	item, err = v.LoadItem("note.md")
	if err != nil {
		t.Fatalf("LoadItem after rewrite returned error: %v", err)
	}
	if item.DisplayName != "After" {
		t.Fatalf("display name %q after rewrite", item.DisplayName)
	}
}
