package switcher

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Paintersrp/qs/internal/fuzzy"
)

// RankContext carries the auxiliary read-only data some comparators need.
type RankContext struct {
	// RecencyRank maps item identifiers to how recently they were opened;
	// lower is more recent. Items absent from the map sort after all
	// ranked items.
	RecencyRank map[string]int
}

// Rank stable-sorts candidates by the given comparator chain: the first
// spec that distinguishes two candidates decides their order, ties fall
// through to the next spec, and candidates tying on every spec keep their
// input order. Each candidate's Order field is set to its final position.
func Rank(candidates []*Candidate, specs []SortSpec, ctx RankContext) []*Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		for _, spec := range specs {
			if c := compare(candidates[i], candidates[j], spec, ctx); c != 0 {
				return c < 0
			}
		}
		return false
	})

	for i, cand := range candidates {
		cand.Order = i
	}
	return candidates
}

// compare returns a negative value when a ranks before b under the spec.
func compare(a, b *Candidate, spec SortSpec, ctx RankContext) int {
	switch spec.Kind {
	case SortPrefixNameCount:
		return descInts(a.KindCount(fuzzy.PrefixName), b.KindCount(fuzzy.PrefixName))
	case SortNameCount:
		return descInts(a.KindCount(fuzzy.Name), b.KindCount(fuzzy.Name))
	case SortTagCount:
		return descInts(a.KindCount(fuzzy.Tag), b.KindCount(fuzzy.Tag))
	case SortHeaderCount:
		return descInts(a.KindCount(fuzzy.Header), b.KindCount(fuzzy.Header))
	case SortLinkCount:
		return descInts(a.KindCount(fuzzy.Link), b.KindCount(fuzzy.Link))
	case SortPerfectWordCount:
		return descInts(perfectWordCount(a), perfectWordCount(b))
	case SortDisplayLength:
		return ascInts(utf8.RuneCountInString(a.SortText()), utf8.RuneCountInString(b.SortText()))
	case SortLastModified:
		switch {
		case a.Item.ModifiedAt.After(b.Item.ModifiedAt):
			return -1
		case b.Item.ModifiedAt.After(a.Item.ModifiedAt):
			return 1
		default:
			return 0
		}
	case SortLastOpened:
		return ascInts(recencyRank(ctx, a.Item.ID), recencyRank(ctx, b.Item.ID))
	case SortStarred:
		switch {
		case a.Item.Starred == b.Item.Starred:
			return 0
		case a.Item.Starred:
			return -1
		default:
			return 1
		}
	case SortAlphabetical:
		return strings.Compare(foldedSortText(a), foldedSortText(b))
	case SortAlphabeticalReverse:
		return -strings.Compare(foldedSortText(a), foldedSortText(b))
	case SortProperty:
		return compareProperty(a, b, spec)
	case SortTagOverlap:
		return descInts(tagOverlap(a.Item, spec.Tags), tagOverlap(b.Item, spec.Tags))
	default:
		return 0
	}
}

func ascInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func descInts(a, b int) int {
	return ascInts(b, a)
}

func recencyRank(ctx RankContext, id string) int {
	if rank, ok := ctx.RecencyRank[id]; ok {
		return rank
	}
	return int(^uint(0) >> 1)
}

func foldedSortText(c *Candidate) string {
	return strings.ToLower(c.SortText())
}

// compareProperty orders by the property value, arrays by their first
// element. Items lacking the property sort after items that have it no
// matter the requested direction; a malformed value counts as lacking
// rather than failing the sort.
func compareProperty(a, b *Candidate, spec SortSpec) int {
	av, aOK := propertySortValue(a.Item, spec.Key)
	bv, bOK := propertySortValue(b.Item, spec.Key)

	if aOK != bOK {
		if aOK {
			return -1
		}
		return 1
	}
	if !aOK {
		return 0
	}

	c := compareScalars(av, bv)
	if spec.Desc {
		c = -c
	}
	return c
}

func tagOverlap(item *Item, tags []string) int {
	count := 0
	for _, want := range tags {
		for _, have := range item.Tags {
			if strings.EqualFold(have, want) {
				count++
				break
			}
		}
	}
	return count
}

// perfectWordCount counts outcomes whose highlight exactly covers a whole
// word of the matched text.
func perfectWordCount(c *Candidate) int {
	count := 0
	for _, o := range c.Outcomes {
		if len(o.Spans) == 1 && coversWholeWord(o.MatchedText, o.Spans[0]) {
			count++
		}
	}
	return count
}

func coversWholeWord(text string, span fuzzy.Span) bool {
	if text == "" {
		return false
	}
	runes := []rune(text)
	if span.Start < 0 || span.End >= len(runes) {
		return false
	}
	if span.Start > 0 && isWordRune(runes[span.Start-1]) {
		return false
	}
	if span.End+1 < len(runes) && isWordRune(runes[span.End+1]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
