package vault

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

var (
	frontMatterRe = regexp.MustCompile(`(?ms)^---\s*\n(.*?)\n---\s*\n?`)
	wikiLinkRe    = regexp.MustCompile(`\[\[(.+?)\]\]`)
	inlineTagRe   = regexp.MustCompile(`(^|\s)#([\p{L}\p{N}/_-]+)`)
)

// note is the parsed representation of one markdown file before it becomes
// a corpus item.
type note struct {
	Title      string
	Aliases    []string
	Tags       []string
	Headers    []string
	Links      []string
	Properties map[string]any
	ModifiedAt time.Time
}

func loadNote(path string) (note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return note{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return note{}, err
	}

	fm, body := splitFrontMatter(data)

	n := note{ModifiedAt: info.ModTime().UTC()}
	if err := n.applyFrontMatter(fm); err != nil {
		return note{}, fmt.Errorf("parse front matter: %w", err)
	}
	n.applyBody(body)
	return n, nil
}

func splitFrontMatter(data []byte) ([]byte, []byte) {
	loc := frontMatterRe.FindSubmatchIndex(data)
	if len(loc) < 4 {
		return nil, data
	}
	return data[loc[2]:loc[3]], data[loc[1]:]
}

// applyFrontMatter decodes the YAML block into typed properties and lifts
// the well-known keys out: title, aliases, tags, and a date override for the
// modification time.
func (n *note) applyFrontMatter(fm []byte) error {
	if len(fm) == 0 {
		return nil
	}

	props := make(map[string]any)
	if err := yaml.Unmarshal(fm, &props); err != nil {
		return err
	}
	n.Properties = props

	if title, ok := props["title"].(string); ok {
		n.Title = strings.TrimSpace(title)
	}
	n.Aliases = stringValues(props["aliases"])
	if len(n.Aliases) == 0 {
		n.Aliases = stringValues(props["alias"])
	}
	n.Tags = stringValues(props["tags"])

	for _, key := range []string{"updated", "modified"} {
		switch raw := props[key].(type) {
		case time.Time:
			// yaml.v3 resolves ISO timestamps natively.
			n.ModifiedAt = raw.UTC()
			return nil
		case string:
			if parsed, err := dateparse.ParseAny(raw); err == nil {
				n.ModifiedAt = parsed.UTC()
				return nil
			}
		}
	}
	return nil
}

// applyBody extracts headers, outgoing link texts, and inline hashtags.
func (n *note) applyBody(body []byte) {
	md := goldmark.DefaultParser()
	doc := md.Parse(text.NewReader(body))

	links := make(map[string]struct{})

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := node.(type) {
		case *ast.Heading:
			heading := strings.TrimSpace(string(typed.Text(body)))
			if heading != "" {
				n.Headers = append(n.Headers, heading)
			}
		case *ast.Link:
			linkText := strings.TrimSpace(string(typed.Text(body)))
			if linkText != "" {
				links[linkText] = struct{}{}
			}
		}
		return ast.WalkContinue, nil
	})

	// Goldmark has no wikilink node; harvest [[target]] and [[target|alias]]
	// references directly.
	for _, match := range wikiLinkRe.FindAllSubmatch(body, -1) {
		target := cleanWikiTarget(string(match[1]))
		if target != "" {
			links[target] = struct{}{}
		}
	}

	for link := range links {
		n.Links = append(n.Links, link)
	}
	sort.Strings(n.Links)

	for _, match := range inlineTagRe.FindAllSubmatch(body, -1) {
		tag := string(match[2])
		if !containsFold(n.Tags, tag) {
			n.Tags = append(n.Tags, tag)
		}
	}
}

// cleanWikiTarget strips the alias and section parts of a wikilink target.
func cleanWikiTarget(target string) string {
	if pipe := strings.Index(target, "|"); pipe >= 0 {
		target = target[:pipe]
	}
	if hash := strings.Index(target, "#"); hash >= 0 {
		target = target[:hash]
	}
	return strings.TrimSpace(target)
}

func stringValues(raw any) []string {
	switch v := raw.(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
