package picker

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/qs/internal/fuzzy"
	"github.com/Paintersrp/qs/internal/switcher"
)

// highlightText styles the runes covered by the merged spans. Span indices
// are rune offsets into text, end-inclusive.
func highlightText(text string, spans []fuzzy.Span, base, match lipgloss.Style) string {
	if len(spans) == 0 {
		return base.Render(text)
	}

	merged := fuzzy.MergeSpans(spans)
	runes := []rune(text)

	var b strings.Builder
	cursor := 0
	for _, span := range merged {
		start, end := span.Start, span.End
		if start < 0 {
			start = 0
		}
		if end >= len(runes) {
			end = len(runes) - 1
		}
		if start > end || start >= len(runes) {
			continue
		}

		if cursor < start {
			b.WriteString(base.Render(string(runes[cursor:start])))
		}
		b.WriteString(match.Render(string(runes[start : end+1])))
		cursor = end + 1
	}
	if cursor < len(runes) {
		b.WriteString(base.Render(string(runes[cursor:])))
	}

	return b.String()
}

// displaySpans collects the spans of every outcome that matched against the
// candidate's sort text, so multi-token queries highlight all their hits.
func displaySpans(c *switcher.Candidate) []fuzzy.Span {
	text := c.SortText()
	var spans []fuzzy.Span
	for _, o := range c.Outcomes {
		if o.MatchedText != text {
			continue
		}
		spans = append(spans, o.Spans...)
	}
	return spans
}
