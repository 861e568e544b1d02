package switcher

import (
	"fmt"
	"strings"
)

// SortKind enumerates the closed set of comparators a profile may chain.
type SortKind int

const (
	SortPrefixNameCount SortKind = iota
	SortNameCount
	SortTagCount
	SortHeaderCount
	SortLinkCount
	SortPerfectWordCount
	SortDisplayLength
	SortLastModified
	SortLastOpened
	SortStarred
	SortAlphabetical
	SortAlphabeticalReverse
	SortProperty
	SortTagOverlap
)

// SortSpec is one entry of a sort-priority chain. Key and Desc apply to
// SortProperty; Tags applies to SortTagOverlap.
type SortSpec struct {
	Kind SortKind
	Key  string
	Desc bool
	Tags []string
}

var sortKindsByName = map[string]SortKind{
	"prefix-name-count":    SortPrefixNameCount,
	"name-count":           SortNameCount,
	"tag-count":            SortTagCount,
	"header-count":         SortHeaderCount,
	"link-count":           SortLinkCount,
	"perfect-word-count":   SortPerfectWordCount,
	"display-length":       SortDisplayLength,
	"last-modified":        SortLastModified,
	"last-opened":          SortLastOpened,
	"starred":              SortStarred,
	"alphabetical":         SortAlphabetical,
	"alphabetical-reverse": SortAlphabeticalReverse,
}

// InvalidSortSpecsError reports every unparseable sort spec in a
// configuration at once, so a host can surface them together.
type InvalidSortSpecsError struct {
	Specs []string
}

func (e *InvalidSortSpecsError) Error() string {
	return fmt.Sprintf(
		"invalid sort priorities: %s",
		strings.Join(e.Specs, "; "),
	)
}

// ParseSortSpecs translates configuration strings into the closed SortSpec
// enumeration. Recognized forms:
//
//	name                   one of the fixed comparator names
//	@key, @key:asc|desc    property-value comparator
//	tags(a,b,c)            tag-set-overlap comparator
//
// Every invalid entry is collected and reported in one error.
func ParseSortSpecs(raw []string) ([]SortSpec, error) {
	specs := make([]SortSpec, 0, len(raw))
	var invalid []string

	for _, entry := range raw {
		spec, err := parseSortSpec(entry)
		if err != nil {
			invalid = append(invalid, fmt.Sprintf("%q (%v)", entry, err))
			continue
		}
		specs = append(specs, spec)
	}

	if len(invalid) > 0 {
		return nil, &InvalidSortSpecsError{Specs: invalid}
	}
	return specs, nil
}

func parseSortSpec(entry string) (SortSpec, error) {
	trimmed := strings.TrimSpace(entry)
	if trimmed == "" {
		return SortSpec{}, fmt.Errorf("empty spec")
	}

	if strings.HasPrefix(trimmed, "@") {
		return parsePropertySpec(trimmed)
	}

	if strings.HasPrefix(trimmed, "tags(") {
		return parseTagOverlapSpec(trimmed)
	}

	kind, ok := sortKindsByName[trimmed]
	if !ok {
		return SortSpec{}, fmt.Errorf("unknown comparator")
	}
	return SortSpec{Kind: kind}, nil
}

func parsePropertySpec(entry string) (SortSpec, error) {
	body := strings.TrimPrefix(entry, "@")
	key := body
	direction := "asc"
	if idx := strings.Index(body, ":"); idx >= 0 {
		key = body[:idx]
		direction = body[idx+1:]
	}

	if key == "" {
		return SortSpec{}, fmt.Errorf("missing property key")
	}

	switch direction {
	case "asc":
		return SortSpec{Kind: SortProperty, Key: key}, nil
	case "desc":
		return SortSpec{Kind: SortProperty, Key: key, Desc: true}, nil
	default:
		return SortSpec{}, fmt.Errorf("direction must be asc or desc, got %q", direction)
	}
}

func parseTagOverlapSpec(entry string) (SortSpec, error) {
	if !strings.HasSuffix(entry, ")") {
		return SortSpec{}, fmt.Errorf("unterminated tag list")
	}
	body := strings.TrimSuffix(strings.TrimPrefix(entry, "tags("), ")")

	var tags []string
	for _, tag := range strings.Split(body, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return SortSpec{}, fmt.Errorf("empty tag list")
	}
	return SortSpec{Kind: SortTagOverlap, Tags: tags}, nil
}

// queryFree reports whether the comparator is meaningful without query
// tokens. Match-count comparators are not: with no tokens every count is
// zero.
func (s SortSpec) queryFree() bool {
	switch s.Kind {
	case SortPrefixNameCount, SortNameCount, SortTagCount, SortHeaderCount,
		SortLinkCount, SortPerfectWordCount:
		return false
	default:
		return true
	}
}

// FilterQueryFree drops comparators that need query tokens; used when the
// query is empty.
func FilterQueryFree(specs []SortSpec) []SortSpec {
	out := make([]SortSpec, 0, len(specs))
	for _, s := range specs {
		if s.queryFree() {
			out = append(out, s)
		}
	}
	return out
}
