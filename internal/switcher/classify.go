package switcher

import (
	"path"
	"strings"

	"github.com/Paintersrp/qs/internal/fuzzy"
	"github.com/Paintersrp/qs/internal/query"
	"github.com/Paintersrp/qs/internal/textnorm"
)

// Profile selects which note fields participate in matching and how text is
// folded. Profiles come from configuration and stay fixed for the lifetime
// of one search call.
type Profile struct {
	SearchTags       bool
	SearchHeaders    bool
	SearchLinks      bool
	SearchProperties bool

	// PropertyKeys is the allow-list of frontmatter keys consulted when
	// SearchProperties is set.
	PropertyKeys []string

	AllowFuzzy    bool
	MinFuzzyScore float64

	// StripDiacritics folds accented characters before comparing. Costs a
	// few times more per item, so profiles opt in.
	StripDiacritics bool

	// CaseSensitive keeps capital letters significant.
	CaseSensitive bool

	// Limit truncates the ranked result list. Zero means no truncation.
	Limit int
}

func (p Profile) foldOptions() textnorm.Options {
	return textnorm.Options{
		Lowercase:       !p.CaseSensitive,
		StripDiacritics: p.StripDiacritics,
	}
}

func (p Profile) fuzzyThreshold() float64 {
	if !p.AllowFuzzy {
		return -1
	}
	return p.MinFuzzyScore
}

// Classify evaluates every token against the item. It returns a candidate
// only when each token matched; a single unmatched token drops the item.
// With no tokens every item is kept, carrying no outcomes.
func Classify(item *Item, tokens []string, profile Profile) (*Candidate, bool) {
	cand := &Candidate{Item: item}
	if len(tokens) == 0 {
		return cand, true
	}

	cand.Outcomes = make([]fuzzy.Outcome, 0, len(tokens))
	for _, token := range tokens {
		outcome := classifyToken(cand, item, token, profile)
		if !outcome.Matched() {
			return nil, false
		}
		cand.Outcomes = append(cand.Outcomes, outcome)
	}
	return cand, true
}

// classifyToken runs the kind waterfall for one token and returns the first
// hit: tag filter, name prefix/substring, alias prefix/substring, name
// fuzzy, path, header, link, property.
func classifyToken(cand *Candidate, item *Item, token string, profile Profile) fuzzy.Outcome {
	opts := profile.foldOptions()

	// A tag-marker token matches against the tag set and nothing else.
	if stripped, isTag := query.IsTagToken(token); isTag {
		if !profile.SearchTags {
			return fuzzy.Outcome{}
		}
		return bestFieldMatch(item.Tags, stripped, opts, fuzzy.Tag)
	}

	// A separator in the token pins the parent directory and matches only
	// the remainder against the name fields.
	if dir, rest, ok := splitPathToken(token); ok {
		if !directoryMatches(item.ID, dir, opts) {
			return fuzzy.Outcome{}
		}
		if rest == "" {
			return pathOutcome(item.ID, dir, opts)
		}
		token = rest
	}

	if out := fuzzy.Match(item.DisplayName, token, opts, -1); out.Matched() {
		return out
	}

	if out, alias := bestAliasMatch(item.Aliases, token, opts); out.Matched() {
		if cand.MatchedAlias == "" {
			cand.MatchedAlias = alias
		}
		return out
	}

	if profile.AllowFuzzy {
		if out := fuzzy.Match(item.DisplayName, token, opts, profile.fuzzyThreshold()); out.Kind == fuzzy.Fuzzy {
			return out
		}
	}

	if out := pathOutcome(item.ID, token, opts); out.Matched() {
		return out
	}

	if profile.SearchHeaders {
		if out := bestFieldMatch(item.Headers, token, opts, fuzzy.Header); out.Matched() {
			return out
		}
	}

	if profile.SearchLinks {
		if out := bestFieldMatch(item.Links, token, opts, fuzzy.Link); out.Matched() {
			return out
		}
	}

	if profile.SearchProperties {
		if out := propertyMatch(item, token, opts, profile.PropertyKeys); out.Matched() {
			return out
		}
	}

	return fuzzy.Outcome{}
}

// bestFieldMatch tries the token against each value and keeps the highest
// scoring prefix or substring hit, reporting it under the given kind.
func bestFieldMatch(values []string, token string, opts textnorm.Options, kind fuzzy.Kind) fuzzy.Outcome {
	var best fuzzy.Outcome
	for _, value := range values {
		out := fuzzy.Match(value, token, opts, -1)
		if !out.Matched() {
			continue
		}
		if out.Score > best.Score {
			best = out
		}
	}
	if !best.Matched() {
		return fuzzy.Outcome{}
	}
	best.Kind = kind
	return best
}

// bestAliasMatch prefers the shortest matching alias, first-seen order
// breaking ties.
func bestAliasMatch(aliases []string, token string, opts textnorm.Options) (fuzzy.Outcome, string) {
	var best fuzzy.Outcome
	bestAlias := ""
	for _, alias := range aliases {
		out := fuzzy.Match(alias, token, opts, -1)
		if !out.Matched() {
			continue
		}
		if bestAlias == "" || len(alias) < len(bestAlias) {
			best = out
			bestAlias = alias
		}
	}
	return best, bestAlias
}

// pathOutcome matches the token against the item's full path.
func pathOutcome(id, token string, opts textnorm.Options) fuzzy.Outcome {
	out := fuzzy.Match(id, token, opts, -1)
	if !out.Matched() {
		return fuzzy.Outcome{}
	}
	out.Kind = fuzzy.Directory
	return out
}

// splitPathToken splits a token at its last path separator. It reports
// ok=false for tokens without a separator and for tag tokens.
func splitPathToken(token string) (dir, rest string, ok bool) {
	idx := strings.LastIndex(token, "/")
	if idx < 0 {
		return "", "", false
	}
	return token[:idx], token[idx+1:], true
}

// directoryMatches reports whether the folded parent directory of id
// contains the folded dir fragment.
func directoryMatches(id, dir string, opts textnorm.Options) bool {
	if dir == "" {
		return true
	}
	parent := path.Dir(strings.ReplaceAll(id, "\\", "/"))
	if parent == "." {
		parent = ""
	}
	return strings.Contains(textnorm.Fold(parent, opts), textnorm.Fold(dir, opts))
}

func propertyMatch(item *Item, token string, opts textnorm.Options, keys []string) fuzzy.Outcome {
	var best fuzzy.Outcome
	for _, key := range keys {
		value, ok := item.Properties[key]
		if !ok {
			continue
		}
		for _, text := range propertyStrings(value) {
			out := fuzzy.Match(text, token, opts, -1)
			if out.Matched() && out.Score > best.Score {
				best = out
			}
		}
	}
	if !best.Matched() {
		return fuzzy.Outcome{}
	}
	best.Kind = fuzzy.Property
	return best
}
