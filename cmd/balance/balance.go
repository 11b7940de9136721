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

package balance

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/pacioli/pacioli/cmd/flags"
	"github.com/pacioli/pacioli/lib/engine"
	"github.com/pacioli/pacioli/lib/ledger"
	"github.com/pacioli/pacioli/lib/report"
)

// CreateCmd creates the command.
func CreateCmd() *cobra.Command {

	var r runner

	// Cmd is the balance command.
	c := &cobra.Command{
		Use:   "balance",
		Short: "create a balance sheet",
		Long:  `Replay the ledger and print the balances at the begin and the end of the reporting period, and their change.`,
		Args:  cobra.ExactArgs(1),
		Run:   r.run,
	}
	r.setupFlags(c)
	return c
}

type runner struct {
	period   flags.PeriodFlags
	progress bool

	// formatting
	color  bool
	digits int32
}

func (r *runner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%+v\n", err)
		os.Exit(1)
	}
}

func (r *runner) setupFlags(c *cobra.Command) {
	r.period.Setup(c)
	c.Flags().BoolVar(&r.progress, "progress", false, "show replay progress")
	c.Flags().Int32Var(&r.digits, "digits", 2, "round to number of digits")
	c.Flags().BoolVar(&r.color, "color", true, "print output in color")
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
	items := len(e.Ledger().Items)
	slog.Debug("ledger loaded", "path", args[0], "items", items)
	if r.progress {
		bar := pb.New(items)
		bar.SetWriter(cmd.ErrOrStderr())
		bar.Start()
		defer bar.Finish()
		e.Observer = func(int, ledger.Item) {
			bar.Increment()
		}
	}
	if err := e.Run(); err != nil {
		return err
	}
	slog.Debug("ledger replayed", "path", args[0], "accounts", len(e.Tree().Names()))
	s := e.Snapshots()
	rep := &report.Report{
		Columns: []report.Column{
			{Title: title(c.Period.Begin.Time, "Begin"), Tree: s.Begin},
			{Title: title(c.Period.End.Time, "End"), Tree: s.End},
			{Title: "Change", Tree: s.Diff},
		},
		Groups: c.Groups(),
	}
	renderer := report.TextRenderer{
		Color:  r.color,
		Digits: r.digits,
	}
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer func() { err = multierr.Append(err, out.Flush()) }()
	return renderer.Render(rep.Table(), out)
}

func title(d time.Time, def string) string {
	if d.IsZero() {
		return def
	}
	return d.Format("2006-01-02")
}
