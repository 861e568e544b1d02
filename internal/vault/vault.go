// Package vault turns a directory of markdown notes into the corpus the
// switcher engine searches: one item per note plus phantom items for link
// targets that do not resolve to a file.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Paintersrp/qs/internal/pathutil"
	"github.com/Paintersrp/qs/internal/switcher"
)

// Config controls which files participate in the corpus.
type Config struct {
	// IgnoredFolders lists directory names skipped while walking.
	IgnoredFolders []string
	// StarredPaths marks vault-relative note paths as starred.
	StarredPaths []string
}

// Vault loads corpus snapshots from a notes directory.
type Vault struct {
	root string
	cfg  Config
}

// New constructs a vault rooted at the provided directory.
func New(root string, cfg Config) *Vault {
	return &Vault{root: pathutil.NormalizePath(root), cfg: cfg}
}

// Root returns the normalized vault directory.
func (v *Vault) Root() string {
	return v.root
}

// Snapshot walks the vault and loads every note into a corpus item. Items
// are ordered by identifier so repeated snapshots of an unchanged vault are
// identical; phantom items for unresolved links follow the real notes.
func (v *Vault) Snapshot() ([]switcher.Item, error) {
	if v.root == "" {
		return nil, errors.New("vault directory cannot be empty")
	}

	paths, err := v.collectNotePaths()
	if err != nil {
		return nil, err
	}

	starred := make(map[string]struct{}, len(v.cfg.StarredPaths))
	for _, p := range v.cfg.StarredPaths {
		starred[filepath.ToSlash(p)] = struct{}{}
	}

	items := make([]switcher.Item, 0, len(paths))
	for _, path := range paths {
		rel, err := pathutil.VaultRelative(v.root, path)
		if err != nil {
			continue
		}

		n, err := loadNote(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("vault: loading %s: %w", rel, err)
		}

		_, isStarred := starred[rel]
		items = append(items, switcher.Item{
			ID:          rel,
			DisplayName: displayName(rel, n.Title),
			Aliases:     n.Aliases,
			Tags:        n.Tags,
			Headers:     n.Headers,
			Links:       n.Links,
			Properties:  n.Properties,
			ModifiedAt:  n.ModifiedAt,
			Starred:     isStarred,
		})
	}

	return append(items, phantomItems(items)...), nil
}

// LoadItem reloads a single note by vault-relative path.
func (v *Vault) LoadItem(rel string) (switcher.Item, error) {
	abs := filepath.Join(v.root, filepath.FromSlash(rel))
	n, err := loadNote(abs)
	if err != nil {
		return switcher.Item{}, err
	}

	starred := false
	for _, p := range v.cfg.StarredPaths {
		if filepath.ToSlash(p) == rel {
			starred = true
			break
		}
	}

	return switcher.Item{
		ID:          rel,
		DisplayName: displayName(rel, n.Title),
		Aliases:     n.Aliases,
		Tags:        n.Tags,
		Headers:     n.Headers,
		Links:       n.Links,
		Properties:  n.Properties,
		ModifiedAt:  n.ModifiedAt,
		Starred:     starred,
	}, nil
}

func (v *Vault) collectNotePaths() ([]string, error) {
	ignored := make(map[string]struct{}, len(v.cfg.IgnoredFolders))
	for _, dir := range v.cfg.IgnoredFolders {
		ignored[strings.ToLower(dir)] = struct{}{}
	}

	paths := make([]string, 0)
	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := strings.ToLower(d.Name())
			if strings.HasPrefix(name, ".") && path != v.root {
				return filepath.SkipDir
			}
			if _, skip := ignored[name]; skip {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// displayName prefers the frontmatter title and falls back to the file stem.
func displayName(rel, title string) string {
	if title != "" {
		return title
	}
	return pathutil.Stem(rel)
}

// phantomItems creates a searchable item for every outgoing link that
// resolves to no real note. Phantom items carry a zero modification time so
// recency-based comparators place them last.
func phantomItems(items []switcher.Item) []switcher.Item {
	known := make(map[string]struct{}, len(items)*3)
	for _, item := range items {
		known[strings.ToLower(item.DisplayName)] = struct{}{}
		known[strings.ToLower(item.ID)] = struct{}{}
		known[strings.ToLower(strings.TrimSuffix(item.ID, filepath.Ext(item.ID)))] = struct{}{}
		for _, alias := range item.Aliases {
			known[strings.ToLower(alias)] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	var phantoms []switcher.Item
	for _, item := range items {
		for _, link := range item.Links {
			key := strings.ToLower(strings.TrimSpace(link))
			if key == "" || strings.Contains(key, "://") {
				continue
			}
			if _, ok := known[key]; ok {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			phantoms = append(phantoms, switcher.Item{
				ID:          link,
				DisplayName: link,
				Phantom:     true,
			})
		}
	}

	sort.Slice(phantoms, func(i, j int) bool { return phantoms[i].ID < phantoms[j].ID })
	return phantoms
}
