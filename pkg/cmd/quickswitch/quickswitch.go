package quickswitch

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Paintersrp/qs/internal/logging"
	"github.com/Paintersrp/qs/internal/note"
	"github.com/Paintersrp/qs/internal/state"
	"github.com/Paintersrp/qs/internal/tui/picker"
)

func NewCmdSwitch(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "switch",
		Aliases: []string{"s"},
		Short:   "Open the interactive quick switcher.",
		Long: heredoc.Doc(`
			Opens the quick switcher over your vault. Matches are ranked by
			the active profile's sort priorities; enter opens the selection
			in your editor, and a query with no matches becomes a new note.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s)
		},
	}

	return cmd
}

func run(s *state.State) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the switcher needs an interactive terminal; use `qs search` in scripts")
	}

	if err := s.ApplyProfile(viper.GetString("profile")); err != nil {
		return err
	}

	logger, closeLog, err := logging.Setup(s.Home, viper.GetString("loglevel"))
	if err != nil {
		return err
	}
	defer closeLog()

	model, err := picker.NewModel(s, logger)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	m, ok := final.(*picker.Model)
	if !ok {
		return nil
	}

	switch m.Action {
	case picker.ActionOpen:
		id := m.Selected.Item.ID
		if err := s.Recency.RecordOpen(id); err != nil {
			logger.Warn().Err(err).Str("note", id).Msg("failed to record open")
		}
		n := &note.Note{VaultDir: s.Vault.Root(), Rel: id}
		return n.Open(s.Config.Editor)

	case picker.ActionCreate:
		n := note.NewFromQuery(s.Vault.Root(), m.Query)
		if err := n.Create(); err != nil {
			return err
		}
		if err := s.Recency.RecordOpen(n.Rel); err != nil {
			logger.Warn().Err(err).Str("note", n.Rel).Msg("failed to record open")
		}
		return n.Open(s.Config.Editor)
	}

	return nil
}
