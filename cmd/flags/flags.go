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

package flags

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pacioli/pacioli/lib/config"
)

// DateFlag manages a flag to determine a date.
type DateFlag time.Time

var _ pflag.Value = (*DateFlag)(nil)

func (tf DateFlag) String() string {
	if tf.Value().IsZero() {
		return ""
	}
	return tf.Value().Format("2006-01-02")
}

// Set implements pflag.Value.
func (tf *DateFlag) Set(v string) error {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return err
	}
	*tf = (DateFlag)(t)
	return nil
}

// Type implements pflag.Value.
func (tf DateFlag) Type() string {
	return "YYYY-MM-DD"
}

// Value returns the flag value.
func (tf DateFlag) Value() time.Time {
	return time.Time(tf)
}

// ValueOr returns the flag value, or t if the flag is not set.
func (tf DateFlag) ValueOr(t time.Time) time.Time {
	v := tf.Value()
	if v.IsZero() {
		return t
	}
	return v
}

// PeriodFlags manages the flags overriding the configured period.
type PeriodFlags struct {
	from, to DateFlag
}

// Setup configures the flags.
func (pf *PeriodFlags) Setup(cmd *cobra.Command) {
	cmd.Flags().Var(&pf.from, "from", "begin of the reporting period")
	cmd.Flags().Var(&pf.to, "to", "end of the reporting period")
}

// Apply overrides the period of the configuration.
func (pf PeriodFlags) Apply(c *config.Config) {
	c.Period.Begin.Time = pf.from.ValueOr(c.Period.Begin.Time)
	c.Period.End.Time = pf.to.ValueOr(c.Period.End.Time)
}

// Config loads the configuration file named by the persistent --config
// flag, if the command has one. A set --lenient-tags flag overrides the
// configured tag policy.
func Config(cmd *cobra.Command) (config.Config, error) {
	var path string
	if f := cmd.Flags().Lookup("config"); f != nil {
		path = f.Value.String()
	}
	c, err := config.Load(path)
	if err != nil {
		return c, err
	}
	if f := cmd.Flags().Lookup("lenient-tags"); f != nil && f.Changed {
		strict := f.Value.String() != "true"
		c.Tags.Strict = &strict
	}
	if path != "" {
		slog.Debug("configuration loaded", "path", path, "roots", c.Roots)
	}
	return c, nil
}
