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
package initialize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/qs/internal/config"
)

func NewCmdInit() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "initialize",
		Aliases: []string{"i", "init"},
		Short:   "Initialize the qs configuration.",
		Long: heredoc.Doc(`
			Walks you through pointing qs at your vault of markdown notes and
			picking an editor, then writes the config with a default search
			profile you can tune later.
		`),
		Example: "qs init",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	return cmd
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	vaultInput := textinput.New("Vault directory:")
	vaultInput.InitialValue = filepath.Join(home, "notes")
	vaultDir, err := vaultInput.RunPrompt()
	if err != nil {
		return err
	}

	if info, err := os.Stat(vaultDir); err != nil || !info.IsDir() {
		return fmt.Errorf("vault directory %q does not exist", vaultDir)
	}

	editorSel := selection.New(
		"Please select an editor option.",
		[]string{"nvim", "vim", "hx", "code"},
	)
	editorSel.Filter = nil
	editor, err := editorSel.RunPrompt()
	if err != nil {
		return err
	}

	cfg := config.NewDefault(vaultDir)
	cfg.Editor = editor
	if err := cfg.Save(home); err != nil {
		return err
	}

	fmt.Println("Initialization complete!")
	return nil
}
