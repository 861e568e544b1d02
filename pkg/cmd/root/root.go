/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/qs/internal/constants"
	"github.com/Paintersrp/qs/internal/state"
	"github.com/Paintersrp/qs/pkg/cmd/fzf"
	"github.com/Paintersrp/qs/pkg/cmd/grep"
	"github.com/Paintersrp/qs/pkg/cmd/initialize"
	"github.com/Paintersrp/qs/pkg/cmd/quickswitch"
	"github.com/Paintersrp/qs/pkg/cmd/search"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	switchCmd := quickswitch.NewCmdSwitch(s)

	cmd := &cobra.Command{
		Use:     "qs",
		Version: constants.Version,
		Aliases: []string{"quick-switcher"},
		Short:   "Jump between markdown notes with a fuzzy quick switcher.",
		Long: heredoc.Doc(`
			qs is a quick switcher for a vault of markdown notes. Type a few
			characters and jump: name prefixes rank first, then substrings,
			then fuzzy subsequences, with tags, headers, links, and
			frontmatter properties as fallbacks.

			Running qs with no subcommand opens the interactive switcher.
		`),
		RunE: switchCmd.RunE,
	}

	cmd.PersistentFlags().
		StringP("profile", "p", "", "Search profile to use for this command.")
	viper.BindPFlag("profile", cmd.PersistentFlags().Lookup("profile"))

	cmd.AddCommand(
		initialize.NewCmdInit(),
		switchCmd,
		search.NewCmdSearch(s),
		grep.NewCmdGrep(s),
		fzf.NewCmdFzf(s),
	)

	return cmd, nil
}
