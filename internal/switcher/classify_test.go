package switcher

import (
	"testing"
	"time"

	"github.com/Paintersrp/qs/internal/fuzzy"
)

func testProfile() Profile {
	return Profile{
		SearchTags:       true,
		SearchHeaders:    true,
		SearchLinks:      true,
		SearchProperties: true,
		PropertyKeys:     []string{"status", "project"},
		AllowFuzzy:       true,
	}
}

func testItem(id, name string) *Item {
	return &Item{
		ID:          id,
		DisplayName: name,
		ModifiedAt:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func classifyKind(t *testing.T, item *Item, token string, profile Profile) fuzzy.Kind {
	t.Helper()
	cand, ok := Classify(item, []string{token}, profile)
	if !ok {
		return fuzzy.NotFound
	}
	return cand.Outcomes[0].Kind
}

func TestClassifyWaterfallPrecedence(t *testing.T) {
	t.Parallel()

	profile := testProfile()

	item := testItem("work/projects/roadmap.md", "Roadmap")
	item.Aliases = []string{"plan"}
	item.Headers = []string{"Quarterly goals"}
	item.Links = []string{"budget"}
	item.Properties = map[string]any{"status": "active"}
	item.Tags = []string{"planning"}

	cases := []struct {
		token string
		want  fuzzy.Kind
	}{
		{"road", fuzzy.PrefixName},
		{"oadma", fuzzy.Name},
		{"rdmp", fuzzy.Fuzzy},
		{"plan", fuzzy.PrefixName}, // alias prefix beats display-name fuzzy
		{"projects", fuzzy.Directory},
		{"quarterly", fuzzy.Header},
		{"budget", fuzzy.Link},
		{"active", fuzzy.Property},
		{"#plan", fuzzy.Tag},
		{"zzz", fuzzy.NotFound},
	}

	for _, tc := range cases {
		if got := classifyKind(t, item, tc.token, profile); got != tc.want {
			t.Errorf("token %q classified as %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestClassifyTagTokenBypassesOtherFields(t *testing.T) {
	t.Parallel()

	profile := testProfile()
	item := testItem("inbox.md", "#important reminders")

	// The display name contains the literal text, but a tag token only
	// consults the tag set.
	if got := classifyKind(t, item, "#important", profile); got != fuzzy.NotFound {
		t.Fatalf("tag token matched %v on an untagged item", got)
	}

	item.Tags = []string{"important"}
	if got := classifyKind(t, item, "#import", profile); got != fuzzy.Tag {
		t.Fatalf("tag token classified as %v, want %v", got, fuzzy.Tag)
	}
}

func TestClassifyANDSemantics(t *testing.T) {
	t.Parallel()

	profile := testProfile()
	item := testItem("meetings/standup.md", "Daily Standup")
	item.Tags = []string{"meeting"}

	if _, ok := Classify(item, []string{"daily", "#meeting"}, profile); !ok {
		t.Fatalf("expected both tokens to match")
	}
	if _, ok := Classify(item, []string{"daily", "#absent"}, profile); ok {
		t.Fatalf("one unmatched token must drop the item")
	}

	// Removing a token can only grow the candidate set.
	if _, ok := Classify(item, []string{"daily"}, profile); !ok {
		t.Fatalf("the surviving token alone must still match")
	}
}

func TestClassifyEmptyTokensKeepsEverything(t *testing.T) {
	t.Parallel()

	cand, ok := Classify(testItem("a.md", "A"), nil, testProfile())
	if !ok {
		t.Fatalf("empty token list must keep the item")
	}
	if len(cand.Outcomes) != 0 {
		t.Fatalf("match-all candidates carry no outcomes, got %d", len(cand.Outcomes))
	}
	if cand.TotalScore() != 0 {
		t.Fatalf("match-all candidates carry no score, got %v", cand.TotalScore())
	}
}

func TestClassifyShortestAliasWins(t *testing.T) {
	t.Parallel()

	profile := testProfile()
	item := testItem("gtd.md", "Getting Things Done")
	item.Aliases = []string{"organization system", "gtd method", "gtd"}

	cand, ok := Classify(item, []string{"gtd"}, profile)
	if !ok {
		t.Fatalf("expected alias match")
	}
	if cand.MatchedAlias != "gtd" {
		t.Fatalf("matched alias %q, want shortest %q", cand.MatchedAlias, "gtd")
	}
}

func TestClassifyPathSeparatorToken(t *testing.T) {
	t.Parallel()

	profile := testProfile()
	item := testItem("work/projects/roadmap.md", "Roadmap")

	cand, ok := Classify(item, []string{"projects/road"}, profile)
	if !ok {
		t.Fatalf("expected directory-scoped token to match")
	}
	if got := cand.Outcomes[0].Kind; got != fuzzy.PrefixName {
		t.Fatalf("remainder classified as %v, want %v", got, fuzzy.PrefixName)
	}

	// The directory fragment must match the parent path.
	if _, ok := Classify(item, []string{"archive/road"}, profile); ok {
		t.Fatalf("mismatched directory fragment must drop the item")
	}

	// A bare trailing separator matches the directory alone.
	cand, ok = Classify(item, []string{"projects/"}, profile)
	if !ok {
		t.Fatalf("expected bare directory token to match")
	}
	if got := cand.Outcomes[0].Kind; got != fuzzy.Directory {
		t.Fatalf("bare directory token classified as %v, want %v", got, fuzzy.Directory)
	}
}

func TestClassifyProfileToggles(t *testing.T) {
	t.Parallel()

	item := testItem("note.md", "Note")
	item.Headers = []string{"Shopping list"}
	item.Links = []string{"groceries"}
	item.Properties = map[string]any{"status": "draft"}
	item.Tags = []string{"errand"}

	profile := testProfile()
	profile.SearchHeaders = false
	profile.SearchLinks = false
	profile.SearchProperties = false
	profile.SearchTags = false
	profile.AllowFuzzy = false

	for _, token := range []string{"shopping", "groceries", "draft", "#errand", "nte"} {
		if got := classifyKind(t, item, token, profile); got != fuzzy.NotFound {
			t.Errorf("token %q matched %v with its field disabled", token, got)
		}
	}
}

func TestClassifyPropertyAllowList(t *testing.T) {
	t.Parallel()

	item := testItem("note.md", "Note")
	item.Properties = map[string]any{"secret": "hunter2", "status": "draft"}

	profile := testProfile()
	profile.PropertyKeys = []string{"status"}

	if got := classifyKind(t, item, "hunter2", profile); got != fuzzy.NotFound {
		t.Fatalf("non-allow-listed property matched %v", got)
	}
	if got := classifyKind(t, item, "draft", profile); got != fuzzy.Property {
		t.Fatalf("allow-listed property classified as %v, want %v", got, fuzzy.Property)
	}
}

func TestClassifyArrayPropertyValues(t *testing.T) {
	t.Parallel()

	item := testItem("note.md", "Note")
	item.Properties = map[string]any{"project": []string{"atlas", "borealis"}}

	if got := classifyKind(t, item, "borealis", testProfile()); got != fuzzy.Property {
		t.Fatalf("array property element classified as %v, want %v", got, fuzzy.Property)
	}
}
