package picker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/qs/internal/cache"
	"github.com/Paintersrp/qs/internal/switcher"
)

const previewCacheSize = 64

type previewCache struct {
	vaultDir string
	rendered *cache.LRU[string, string]
}

func newPreviewCache(vaultDir string) *previewCache {
	return &previewCache{
		vaultDir: vaultDir,
		rendered: cache.NewLRU[string, string](previewCacheSize),
	}
}

// invalidate drops the cached render for a note that changed on disk.
func (p *previewCache) invalidate(rel string) {
	p.rendered.Remove(rel)
}

func (p *previewCache) render(c *switcher.Candidate, width int) string {
	if c == nil {
		return ""
	}
	if c.Item.Phantom {
		return phantomStyle.Render(
			fmt.Sprintf("%q has no note yet.\nPress enter to create it.", c.Item.DisplayName),
		)
	}

	if cached, ok := p.rendered.Get(c.Item.ID); ok {
		return cached
	}

	path := filepath.Join(p.vaultDir, filepath.FromSlash(c.Item.ID))
	content, err := os.ReadFile(path)
	if err != nil {
		return "Error reading file"
	}

	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "Error rendering markdown"
	}

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}

	p.rendered.Put(c.Item.ID, markdown)
	return markdown
}
