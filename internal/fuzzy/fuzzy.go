// Package fuzzy classifies how a single query token matches a single text
// value. It produces the prefix, substring and fuzzy-subsequence kinds; the
// remaining kinds are assigned by the classifier, which runs the same
// primitive against other note fields.
package fuzzy

import (
	"github.com/Paintersrp/qs/internal/textnorm"
)

// Kind identifies how a token matched a value. Higher values are stronger
// matches; NotFound is the zero value.
type Kind int

const (
	NotFound Kind = iota
	Fuzzy
	Property
	Link
	Header
	Tag
	Directory
	Name
	PrefixName
)

var kindNames = map[Kind]string{
	NotFound:   "not-found",
	Fuzzy:      "fuzzy",
	Property:   "property",
	Link:       "link",
	Header:     "header",
	Tag:        "tag",
	Directory:  "directory",
	Name:       "name",
	PrefixName: "prefix-name",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Outcome records the result of testing one token against one value. Spans
// are rune indices into the original, unfolded value. A NotFound outcome
// carries no score and no spans.
type Outcome struct {
	Kind        Kind
	MatchedText string
	Score       float64
	Spans       []Span
}

// Matched reports whether the outcome represents any match at all.
func (o Outcome) Matched() bool {
	return o.Kind != NotFound
}

// Match runs the prefix → substring → fuzzy-subsequence waterfall for token
// against value, folding both with the provided options. The first kind that
// succeeds wins. Fuzzy matches below minFuzzy collapse to NotFound; pass 0 to
// accept any fuzzy hit, or a negative minFuzzy to disable fuzzy matching
// entirely.
func Match(value, token string, opts textnorm.Options, minFuzzy float64) Outcome {
	foldedValue, indexMap := textnorm.FoldWithMap(value, opts)
	foldedToken := textnorm.Fold(token, opts)

	vr := []rune(foldedValue)
	tr := []rune(foldedToken)
	if len(tr) == 0 || len(tr) > len(vr) {
		return Outcome{}
	}

	if at := indexOfRunes(vr, tr); at >= 0 {
		kind := Name
		if at == 0 {
			kind = PrefixName
		}
		return Outcome{
			Kind:        kind,
			MatchedText: value,
			Score:       contiguousScore(kind, at, len(tr), len(vr)),
			Spans:       []Span{{Start: indexMap[at], End: indexMap[at+len(tr)-1]}},
		}
	}

	if minFuzzy < 0 {
		return Outcome{}
	}

	hits, ok := subsequence(vr, tr)
	if !ok {
		return Outcome{}
	}

	score := fuzzyScore(hits, len(tr), len(vr))
	if score < minFuzzy {
		return Outcome{}
	}

	spans := make([]Span, 0, len(hits))
	for _, h := range hits {
		spans = append(spans, Span{Start: indexMap[h], End: indexMap[h]})
	}
	return Outcome{
		Kind:        Fuzzy,
		MatchedText: value,
		Score:       score,
		Spans:       MergeSpans(spans),
	}
}

// indexOfRunes returns the rune index of the first occurrence of needle in
// haystack, or -1.
func indexOfRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if haystack[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}

// subsequence greedily consumes each rune of token at its earliest occurrence
// in value, left to right. It returns the consumed value indices when every
// token rune was placed.
func subsequence(value, token []rune) ([]int, bool) {
	hits := make([]int, 0, len(token))
	ti := 0
	for vi := 0; vi < len(value) && ti < len(token); vi++ {
		if value[vi] == token[ti] {
			hits = append(hits, vi)
			ti++
		}
	}
	if ti < len(token) {
		return nil, false
	}
	return hits, true
}

// Score bands keep the kind ordering strict: every prefix match outranks
// every substring match, which outranks every fuzzy match. Within a band the
// score rewards covering more of the value, matching earlier, and (for
// fuzzy) tighter runs of consumed characters. The exact constants are
// calibration details pinned by the golden tests.
const (
	prefixBase = 3.0
	nameBase   = 2.0
	fuzzyBase  = 1.0
)

func contiguousScore(kind Kind, start, tokenLen, valueLen int) float64 {
	coverage := float64(tokenLen) / float64(valueLen)
	switch kind {
	case PrefixName:
		return prefixBase + coverage
	default:
		return nameBase + 0.5*coverage + 0.5/float64(1+start)
	}
}

func fuzzyScore(hits []int, tokenLen, valueLen int) float64 {
	window := hits[len(hits)-1] - hits[0] + 1
	tightness := float64(tokenLen) / float64(window)
	coverage := float64(tokenLen) / float64(valueLen)
	earliness := 1.0 / float64(1+hits[0])
	return fuzzyBase + 0.5*tightness + 0.3*coverage + 0.2*earliness
}
