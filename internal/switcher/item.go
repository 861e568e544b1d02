// Package switcher implements the matching and ranking engine behind the
// quick switcher: per-token classification of notes against a query, a
// comparator-chain sort over the survivors, and the pipeline tying the two
// together. The package never mutates the corpus it is handed; every search
// is a pure function of (corpus, query, profile, context).
package switcher

import (
	"time"

	"github.com/Paintersrp/qs/internal/fuzzy"
)

// Item is one searchable unit of the corpus. ID is the stable identifier
// (the vault-relative path for real notes, the link text for phantom ones).
type Item struct {
	ID          string
	DisplayName string
	Aliases     []string
	Tags        []string
	Headers     []string
	Links       []string
	Properties  map[string]any
	ModifiedAt  time.Time
	Starred     bool

	// Phantom marks an item that exists only as an unresolved link target.
	// Phantom items are searchable but carry a zero ModifiedAt so recency
	// sorts place them last.
	Phantom bool
}

// Candidate is an item that survived classification, carrying one outcome
// per query token. An empty-query search keeps every item with no outcomes.
type Candidate struct {
	Item     *Item
	Outcomes []fuzzy.Outcome

	// MatchedAlias records the alias that produced a match, when one did.
	// Sorting by display length or alphabetically prefers it over the
	// display name.
	MatchedAlias string

	// Order is the final position assigned after ranking.
	Order int
}

// TotalScore sums the per-token scores.
func (c *Candidate) TotalScore() float64 {
	total := 0.0
	for _, o := range c.Outcomes {
		total += o.Score
	}
	return total
}

// SortText returns the text used for length and alphabetical comparisons.
func (c *Candidate) SortText() string {
	if c.MatchedAlias != "" {
		return c.MatchedAlias
	}
	return c.Item.DisplayName
}

// KindCount counts outcomes of the given kind.
func (c *Candidate) KindCount(kind fuzzy.Kind) int {
	n := 0
	for _, o := range c.Outcomes {
		if o.Kind == kind {
			n++
		}
	}
	return n
}
