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
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/qs/internal/config"
	"github.com/Paintersrp/qs/internal/constants"
	"github.com/Paintersrp/qs/internal/state"
	"github.com/Paintersrp/qs/internal/switcher"
	"github.com/Paintersrp/qs/pkg/cmd/initialize"
	"github.com/Paintersrp/qs/pkg/cmd/root"
)

func Execute() {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	cobra.CheckErr(config.EnsureConfigExists(home))

	s, stateErr := state.NewState("")
	if stateErr != nil {
		// No usable config yet. Offer init, and explain bad sort specs in
		// full instead of dying on the first one.
		var specErr *switcher.InvalidSortSpecsError
		if errors.As(stateErr, &specErr) {
			fmt.Fprintln(os.Stderr, specErr.Error())
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "qs is not configured yet: %v\n", stateErr)
		initCmd := initialize.NewCmdInit()
		if err := initCmd.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}
	defer s.Close()

	rootCmd, rootErr := root.NewCmdRoot(s)
	if rootErr != nil {
		fmt.Fprintln(os.Stderr, rootErr)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
