package grep

import (
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/qs/internal/grep"
	"github.com/Paintersrp/qs/internal/state"
)

func NewCmdGrep(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "grep [pattern]",
		Aliases: []string{"g"},
		Short:   "Full-text search across note bodies.",
		Long: heredoc.Doc(`
			Searches the body text of every note with an external ripgrep
			style tool. The switcher only matches names and metadata; grep is
			the escape hatch for content.
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), s, strings.Join(args, " "))
		},
	}

	return cmd
}

func run(ctx context.Context, s *state.State, pattern string) error {
	g := grep.New(s.Config.GrepExecutable)
	matches, err := g.Search(ctx, s.Vault.Root(), pattern)
	if err != nil {
		return err
	}

	for _, m := range matches {
		fmt.Printf("%s:%d:%d\t%s\n", m.Path, m.Line, m.Column, m.Text)
	}
	return nil
}
