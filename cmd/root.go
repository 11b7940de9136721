// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd is the main command file for Cobra
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacioli/pacioli/cmd/balance"
	"github.com/pacioli/pacioli/cmd/check"
	"github.com/pacioli/pacioli/cmd/completion"
	"github.com/pacioli/pacioli/cmd/format"
	"github.com/pacioli/pacioli/cmd/print"
)

// CreateCmd creates the root command.
func CreateCmd() *cobra.Command {
	var verbose bool

	c := &cobra.Command{
		Use:   "pacioli",
		Short: "pacioli is a plain text double-entry ledger",
		Long:  `pacioli replays a plain text ledger of accounts, transactions and balance assertions, and reports the resulting balances.`,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	c.PersistentFlags().String("config", "", "path to a YAML configuration file")
	c.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	c.PersistentFlags().Bool("lenient-tags", false, "ignore poptags of inactive tags")

	c.AddCommand(balance.CreateCmd())
	c.AddCommand(check.CreateCmd())
	c.AddCommand(format.CreateCmd())
	c.AddCommand(print.CreateCmd())
	c.AddCommand(completion.CreateCmd(c))
	return c
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd := CreateCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
