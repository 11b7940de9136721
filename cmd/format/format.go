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

package format

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/pacioli/pacioli/cmd/flags"
	"github.com/pacioli/pacioli/lib/account"
	"github.com/pacioli/pacioli/lib/engine"
	"github.com/pacioli/pacioli/lib/ledger"
	"github.com/pacioli/pacioli/lib/parser"
	"github.com/pacioli/pacioli/lib/printer"
)

// CreateCmd creates the command.
func CreateCmd() *cobra.Command {
	var r runner

	c := &cobra.Command{
		Use:   "format",
		Short: "Format the given ledgers",
		Long: `Format the given ledgers in-place. Comment lines are dropped and the
active tags are written to each transaction.`,
		Args: cobra.MinimumNArgs(1),
		Run:  r.run,
	}
	c.Flags().BoolVar(&r.resolve, "resolve", false, "sort the items and write inferred amounts")
	return c
}

const concurrency = 10

type runner struct {
	resolve bool
}

func (r *runner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *runner) execute(cmd *cobra.Command, args []string) (errors error) {
	c, err := flags.Config(cmd)
	if err != nil {
		return err
	}
	var (
		mu   sync.Mutex
		sema = make(chan bool, concurrency)
	)
	for _, arg := range args {
		arg := arg
		sema <- true
		go func() {
			defer func() { <-sema }()
			if err := r.formatFile(c.Engine(), arg); err != nil {
				mu.Lock()
				defer mu.Unlock()
				errors = multierr.Append(errors, err)
			}
		}()
	}
	for i := 0; i < concurrency; i++ {
		sema <- true
	}
	return errors
}

func (r *runner) formatFile(cfg engine.Config, target string) error {
	l, err := r.readLedger(cfg, target)
	if err != nil {
		return err
	}
	tmpDestFile, err := os.CreateTemp(filepath.Dir(target), "format-")
	if err != nil {
		return err
	}
	dest := bufio.NewWriter(tmpDestFile)
	_, err = printer.New(dest).PrintLedger(l)
	err = multierr.Combine(err, dest.Flush(), tmpDestFile.Close())
	if err != nil {
		return multierr.Append(err, os.Remove(tmpDestFile.Name()))
	}
	return atomic.ReplaceFile(tmpDestFile.Name(), target)
}

func (r *runner) readLedger(cfg engine.Config, target string) (ledger.Ledger, error) {
	if !r.resolve {
		return parser.FromPath(account.NewTree(cfg.Roots...), target, cfg.Parser)
	}
	e := engine.New(cfg)
	if err := e.LoadFile(target); err != nil {
		return ledger.Ledger{}, err
	}
	if err := e.Run(); err != nil {
		return ledger.Ledger{}, fmt.Errorf("%s: %w", target, err)
	}
	return e.Ledger(), nil
}
