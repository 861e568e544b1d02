package switcher

import (
	"github.com/Paintersrp/qs/internal/query"
)

// Pipeline binds a profile and a sort-priority chain into a reusable
// query-to-ranked-list function.
type Pipeline struct {
	profile Profile
	specs   []SortSpec
}

// NewPipeline builds a pipeline. The spec chain must already be validated
// via ParseSortSpecs; invalid configurations never reach this point.
func NewPipeline(profile Profile, specs []SortSpec) *Pipeline {
	return &Pipeline{profile: profile, specs: specs}
}

// Search classifies every corpus item against the raw query, ranks the
// survivors, and truncates to the profile's limit. The keep predicate, when
// non-nil, prefilters items by identifier (search-target modes and
// include/exclude path patterns are compiled into it by the caller). The
// corpus is never mutated; candidates reference items in place.
//
// An empty query keeps every item and drops match-count comparators from
// the chain, since no tokens exist to count - this is the recency-biased
// "unfiltered recents" path.
func (p *Pipeline) Search(corpus []Item, rawQuery string, ctx RankContext, keep func(id string) bool) []*Candidate {
	tokens := query.Split(rawQuery)

	specs := p.specs
	if len(tokens) == 0 {
		specs = FilterQueryFree(specs)
	}

	candidates := make([]*Candidate, 0, len(corpus))
	for i := range corpus {
		item := &corpus[i]
		if keep != nil && !keep(item.ID) {
			continue
		}
		if cand, ok := Classify(item, tokens, p.profile); ok {
			candidates = append(candidates, cand)
		}
	}

	Rank(candidates, specs, ctx)

	if p.profile.Limit > 0 && len(candidates) > p.profile.Limit {
		candidates = candidates[:p.profile.Limit]
	}
	return candidates
}
