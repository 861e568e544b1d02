package fzf

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/qs/internal/fzf"
	"github.com/Paintersrp/qs/internal/note"
	"github.com/Paintersrp/qs/internal/state"
)

func NewCmdFzf(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fzf [query]",
		Aliases: []string{"f"},
		Short:   "Pick a note with a plain fuzzy finder.",
		Long: heredoc.Doc(`
			A flat character-level fuzzy pick over every note, with a
			markdown preview. No ranking profiles, no classifier; when you
			just want fzf over the vault, this is it.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, strings.Join(args, " "))
		},
	}

	return cmd
}

func run(s *state.State, query string) error {
	items, err := s.Corpus.AcquireSnapshot()
	if err != nil {
		return err
	}

	finder := fzf.NewFuzzyFinder(s.Vault.Root(), "Notes")
	selected, err := finder.Run(items, query)
	if err != nil {
		return err
	}

	if err := s.Recency.RecordOpen(selected.ID); err != nil {
		return err
	}

	n := &note.Note{VaultDir: s.Vault.Root(), Rel: selected.ID}
	return n.Open(s.Config.Editor)
}
