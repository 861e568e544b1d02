package fuzzy

import "sort"

// Span is an end-inclusive range of rune indices to highlight in the matched
// value.
type Span struct {
	Start int
	End   int
}

// MergeSpans collapses overlapping and adjacent spans into contiguous
// ranges. The input may be unordered; the result is sorted and
// non-overlapping.
func MergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := make([]Span, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if next.Start <= current.End+1 {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

// Contains reports whether the rune index falls inside the span.
func (s Span) Contains(idx int) bool {
	return idx >= s.Start && idx <= s.End
}
