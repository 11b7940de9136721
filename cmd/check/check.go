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

package check

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/pacioli/pacioli/cmd/flags"
	"github.com/pacioli/pacioli/lib/engine"
)

// CreateCmd creates the command.
func CreateCmd() *cobra.Command {
	var r runner

	return &cobra.Command{
		Use:   "check",
		Short: "validate ledgers",
		Long:  `Parse and replay the given ledgers, reporting the first failing item of each.`,
		Args:  cobra.MinimumNArgs(1),
		Run:   r.run,
	}
}

const concurrency = 10

type runner struct{}

func (r *runner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *runner) execute(cmd *cobra.Command, args []string) error {
	c, err := flags.Config(cmd)
	if err != nil {
		return err
	}
	var (
		g    errgroup.Group
		errs = make([]error, len(args))
	)
	g.SetLimit(concurrency)
	for i, arg := range args {
		i, arg := i, arg
		g.Go(func() error {
			errs[i] = checkFile(c.Engine(), arg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, arg := range args {
		if errs[i] == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", arg)
		}
	}
	return multierr.Combine(errs...)
}

func checkFile(cfg engine.Config, path string) error {
	e := engine.New(cfg)
	if err := e.LoadFile(path); err != nil {
		return err
	}
	if err := e.Run(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("ledger checked", "path", path, "items", len(e.Ledger().Items))
	return nil
}
