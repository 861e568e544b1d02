package fzf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/qs/internal/switcher"
)

// ErrNoSelection is returned when the finder exits without a pick.
var ErrNoSelection = fmt.Errorf("no note selected")

// FuzzyFinder wraps go-fuzzyfinder as a lightweight alternative to the full
// switcher TUI: a flat character-level fuzzy pick over the corpus with a
// rendered markdown preview.
type FuzzyFinder struct {
	vaultDir string
	header   string
	items    []switcher.Item
}

func NewFuzzyFinder(vaultDir, header string) *FuzzyFinder {
	return &FuzzyFinder{vaultDir: vaultDir, header: header}
}

// Run presents the items and returns the selected one. Phantom items are
// skipped; they have no file to open.
func (f *FuzzyFinder) Run(items []switcher.Item, query string) (switcher.Item, error) {
	f.items = f.items[:0]
	for _, item := range items {
		if item.Phantom {
			continue
		}
		f.items = append(f.items, item)
	}

	if len(f.items) == 0 {
		return switcher.Item{}, ErrNoSelection
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.header))
	}

	idx, err := fuzzyfinder.Find(f.items, func(i int) string {
		return formatLabel(f.items[i])
	}, options...)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return switcher.Item{}, ErrNoSelection
		}
		return switcher.Item{}, err
	}

	return f.items[idx], nil
}

func formatLabel(item switcher.Item) string {
	if len(item.Tags) == 0 {
		return fmt.Sprintf("%s [No tags] ", item.DisplayName)
	}
	return fmt.Sprintf(
		"%s [Tags: %s] ",
		item.DisplayName,
		strings.Join(item.Tags, ", "),
	)
}

func (f *FuzzyFinder) renderMarkdownPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	path := filepath.Join(f.vaultDir, filepath.FromSlash(f.items[i].ID))
	content, err := os.ReadFile(path)
	if err != nil {
		return "Error reading file"
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(100),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}

	return markdown
}
