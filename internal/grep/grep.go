package grep

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Paintersrp/qs/internal/textnorm"
)

// DefaultExecutable is used when the config does not name a grep tool.
const DefaultExecutable = "rg"

// Match is one full-text hit inside the vault.
type Match struct {
	Path string
	Line int
	// Column is the 1-based byte column reported by the external tool.
	Column int
	Text   string
	// RuneOffset is Column converted to a rune index into Text, so callers
	// can highlight the hit alongside rune-based switcher spans.
	RuneOffset int
}

// Grep shells out to a ripgrep-style executable for full-text search across
// the vault body text, which the switcher itself does not index.
type Grep struct {
	executable string
}

func New(executable string) *Grep {
	if strings.TrimSpace(executable) == "" {
		executable = DefaultExecutable
	}
	return &Grep{executable: executable}
}

// Search runs the external tool over the vault root and parses its matches.
// A pattern with no hits returns an empty slice, not an error.
func (g *Grep) Search(ctx context.Context, root, pattern string) ([]Match, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, nil
	}

	cmd := exec.CommandContext(
		ctx,
		g.executable,
		"--with-filename",
		"--line-number",
		"--column",
		"--no-heading",
		"--color=never",
		"--type", "md",
		"--", pattern, root,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// ripgrep exits 1 when nothing matched.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s: %s", g.executable, msg)
		}
		return nil, fmt.Errorf("%s: %w", g.executable, err)
	}

	return ParseMatches(&stdout)
}

// ParseMatches reads `path:line:column:text` lines as emitted by
// `rg --line-number --column --no-heading`.
func ParseMatches(r io.Reader) ([]Match, error) {
	var matches []Match

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		match, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

func parseLine(line string) (Match, error) {
	parts := strings.SplitN(line, ":", 4)
	if len(parts) < 4 {
		return Match{}, fmt.Errorf("malformed grep line %q", line)
	}

	lineNo, err := strconv.Atoi(parts[1])
	if err != nil {
		return Match{}, fmt.Errorf("malformed line number in %q", line)
	}
	column, err := strconv.Atoi(parts[2])
	if err != nil {
		return Match{}, fmt.Errorf("malformed column in %q", line)
	}

	text := parts[3]
	return Match{
		Path:       parts[0],
		Line:       lineNo,
		Column:     column,
		Text:       text,
		RuneOffset: textnorm.ByteToRuneOffset(text, column-1),
	}, nil
}
