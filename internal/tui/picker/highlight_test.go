package picker

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/qs/internal/fuzzy"
	"github.com/Paintersrp/qs/internal/switcher"
)

func TestHighlightTextPreservesRunes(t *testing.T) {
	// Plain styles in tests: lipgloss drops ANSI when not a TTY, so the
	// output should be the input text with spans in place.
	base := lipgloss.NewStyle()
	match := lipgloss.NewStyle()

	out := highlightText("Meeting Notes", []fuzzy.Span{{Start: 0, End: 3}}, base, match)
	if !strings.Contains(out, "Meeting Notes") && out != "Meeting Notes" {
		t.Errorf("highlight mangled text: %q", out)
	}
}

func TestHighlightTextClampsOutOfRangeSpans(t *testing.T) {
	base := lipgloss.NewStyle()
	match := lipgloss.NewStyle()

	out := highlightText("abc", []fuzzy.Span{{Start: -2, End: 10}}, base, match)
	if !strings.Contains(out, "abc") {
		t.Errorf("clamped highlight lost text: %q", out)
	}

	out = highlightText("abc", []fuzzy.Span{{Start: 5, End: 7}}, base, match)
	if !strings.Contains(out, "abc") {
		t.Errorf("out-of-range span lost text: %q", out)
	}
}

func TestDisplaySpansOnlyCollectsSortTextOutcomes(t *testing.T) {
	item := &switcher.Item{ID: "plan.md", DisplayName: "Plan"}
	c := &switcher.Candidate{
		Item: item,
		Outcomes: []fuzzy.Outcome{
			{Kind: fuzzy.PrefixName, MatchedText: "Plan", Spans: []fuzzy.Span{{Start: 0, End: 1}}},
			{Kind: fuzzy.Tag, MatchedText: "work", Spans: []fuzzy.Span{{Start: 0, End: 3}}},
		},
	}

	spans := displaySpans(c)
	if len(spans) != 1 {
		t.Fatalf("spans = %v, want only the display-name span", spans)
	}
	if spans[0].Start != 0 || spans[0].End != 1 {
		t.Errorf("span = %+v", spans[0])
	}
}

func TestWikiLink(t *testing.T) {
	real := &switcher.Item{ID: "notes/plan.md", DisplayName: "Plan"}
	if got := wikiLink(real); got != "[[notes/plan]]" {
		t.Errorf("wikiLink = %q", got)
	}

	phantom := &switcher.Item{ID: "Future Work", DisplayName: "Future Work", Phantom: true}
	if got := wikiLink(phantom); got != "[[Future Work]]" {
		t.Errorf("phantom wikiLink = %q", got)
	}
}
