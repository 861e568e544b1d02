package search

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/qs/internal/state"
	"github.com/Paintersrp/qs/internal/switcher"
)

func NewCmdSearch(s *state.State) *cobra.Command {
	var limit int
	var showScores bool

	cmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"q"},
		Short:   "Run one switcher query and print the ranked results.",
		Long: heredoc.Doc(`
			Runs the switcher pipeline once, non-interactively, and prints
			the ranked matches. Useful for scripting and for checking what a
			profile's sort priorities actually do.

			  qs search "roadmap"
			  qs search '#project plan'
			  qs search 'journal/ standup' --scores
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, strings.Join(args, " "), limit, showScores)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Max results (0 uses the profile limit)")
	cmd.Flags().BoolVar(&showScores, "scores", false, "Show match kind and score per result")

	return cmd
}

func run(s *state.State, query string, limit int, showScores bool) error {
	if err := s.ApplyProfile(viper.GetString("profile")); err != nil {
		return err
	}

	profile := s.Profile
	if limit > 0 {
		profile.Limit = limit
	}

	specs, err := profile.SortSpecs()
	if err != nil {
		return err
	}

	items, err := s.Corpus.AcquireSnapshot()
	if err != nil {
		return err
	}

	pipeline := switcher.NewPipeline(profile.EngineProfile(), specs)
	results := pipeline.Search(items, query, s.RankContext(), profile.PathFilter())

	for _, c := range results {
		if showScores {
			fmt.Printf("%s\t%s\t%s\t%.3f\n", c.Item.ID, c.SortText(), kinds(c), c.TotalScore())
			continue
		}
		fmt.Println(c.Item.ID)
	}

	return nil
}

func kinds(c *switcher.Candidate) string {
	if len(c.Outcomes) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(c.Outcomes))
	for _, o := range c.Outcomes {
		parts = append(parts, o.Kind.String())
	}
	return strings.Join(parts, ",")
}
