package picker

import (
	"testing"

	"github.com/Paintersrp/qs/internal/switcher"
)

func testResults(ids ...string) []*switcher.Candidate {
	results := make([]*switcher.Candidate, 0, len(ids))
	for _, id := range ids {
		results = append(results, &switcher.Candidate{
			Item: &switcher.Item{ID: id, DisplayName: id},
		})
	}
	return results
}

func TestResultsRestoreLastSelection(t *testing.T) {
	results := testResults("a.md", "b.md", "c.md")

	m := &Model{restoreID: "b.md"}
	updated, _ := m.Update(resultsMsg{results: results})
	got := updated.(*Model)

	if got.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", got.cursor)
	}
	if got.restoreID != "" {
		t.Fatalf("restoreID = %q, want cleared", got.restoreID)
	}

	// Later refreshes leave the cursor where the user moved it.
	got.cursor = 2
	updated, _ = got.Update(resultsMsg{results: results})
	got = updated.(*Model)
	if got.cursor != 2 {
		t.Fatalf("cursor after refresh = %d, want 2", got.cursor)
	}
}

func TestResultsRestoreUnknownSelection(t *testing.T) {
	m := &Model{restoreID: "gone.md"}
	updated, _ := m.Update(resultsMsg{results: testResults("a.md", "b.md")})
	got := updated.(*Model)

	if got.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", got.cursor)
	}
	if got.restoreID != "" {
		t.Fatalf("restoreID = %q, want cleared", got.restoreID)
	}
}

func TestStaleResultsDropped(t *testing.T) {
	m := &Model{searchSeq: 2, restoreID: "a.md"}
	updated, _ := m.Update(resultsMsg{seq: 1, results: testResults("a.md")})
	got := updated.(*Model)

	if len(got.results) != 0 {
		t.Fatalf("stale results were applied")
	}
	if got.restoreID != "a.md" {
		t.Fatalf("stale results consumed restoreID")
	}
}
