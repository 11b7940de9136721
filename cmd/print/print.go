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

package print

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/pacioli/pacioli/cmd/flags"
	"github.com/pacioli/pacioli/lib/engine"
	"github.com/pacioli/pacioli/lib/printer"
)

// CreateCmd creates the command.
func CreateCmd() *cobra.Command {
	var r runner

	cmd := &cobra.Command{
		Use:   "print",
		Short: "print the resolved ledger",
		Long:  `Print the given ledger sorted by date up to the end of the period, with the amounts of balancing and booking postings filled in.`,

		Args: cobra.ExactArgs(1),

		Run: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type runner struct {
	period flags.PeriodFlags
	checks bool
	pad    string
}

func (r *runner) setupFlags(c *cobra.Command) {
	r.period.Setup(c)
	c.Flags().BoolVar(&r.checks, "checks", false, "append balance assertions for the balances at the end of the period")
	c.Flags().StringVar(&r.pad, "pad", "", "pad the appended balance assertions against this account")
}

func (r *runner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *runner) execute(cmd *cobra.Command, args []string) (err error) {
	c, err := flags.Config(cmd)
	if err != nil {
		return err
	}
	r.period.Apply(&c)
	e := engine.New(c.Engine())
	if err := e.LoadFile(args[0]); err != nil {
		return err
	}
	if err := e.Run(); err != nil {
		return err
	}
	w := bufio.NewWriter(cmd.OutOrStdout())
	defer func() { err = multierr.Append(err, w.Flush()) }()

	p := printer.New(w)
	if _, err := p.PrintLedger(e.Ledger().Until(c.Period.End.Time)); err != nil {
		return err
	}
	if !r.checks {
		return nil
	}
	d := c.Period.End.Time
	if d.IsZero() {
		d, _ = e.Ledger().MaxDate()
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	_, err = p.PrintClosingChecks(e.Snapshots().End, d, r.pad)
	return err
}
