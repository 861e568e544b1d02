package note

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Note is a markdown note addressed relative to the vault root. It covers the
// create-from-query flow: when the switcher finds nothing, the query becomes
// the title of a fresh note.
type Note struct {
	VaultDir string
	Rel      string
	Title    string
	Tags     []string
}

// NewFromQuery builds a note whose filename is the slugified query and whose
// title is the query verbatim.
func NewFromQuery(vaultDir, query string) *Note {
	title := strings.TrimSpace(query)
	return &Note{
		VaultDir: vaultDir,
		Rel:      Slugify(title) + ".md",
		Title:    title,
	}
}

// Slugify lowers a title into a filesystem-safe stem.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "untitled"
	}
	return slug
}

func (n *Note) Path() string {
	return filepath.Join(n.VaultDir, filepath.FromSlash(n.Rel))
}

func (n *Note) Exists() (bool, error) {
	_, err := os.Stat(n.Path())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Create writes the note file with frontmatter. It refuses to overwrite an
// existing note.
func (n *Note) Create() error {
	exists, err := n.Exists()
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("note already exists: %s", n.Rel)
	}

	path := n.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", n.Title)
	fmt.Fprintf(&b, "date: %s\n", time.Now().Format("2006-01-02"))
	if len(n.Tags) > 0 {
		b.WriteString("tags:\n")
		for _, tag := range n.Tags {
			fmt.Fprintf(&b, "  - %s\n", tag)
		}
	}
	b.WriteString("---\n\n")

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// Open launches the configured editor on the note and waits for it to exit.
func (n *Note) Open(editor string) error {
	if strings.TrimSpace(editor) == "" {
		editor = "nvim"
	}

	args := strings.Fields(editor)
	args = append(args, n.Path())

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q: %w", editor, err)
	}
	return nil
}
