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

// Package config reads the optional YAML configuration of a ledger.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"

	"github.com/pacioli/pacioli/lib/account"
	"github.com/pacioli/pacioli/lib/engine"
	"github.com/pacioli/pacioli/lib/parser"
	"github.com/pacioli/pacioli/lib/report"
)

// Config is the configuration file format.
type Config struct {
	Roots      []string `yaml:"roots"`
	Period     Period   `yaml:"period"`
	Tags       Tags     `yaml:"tags"`
	Terminator string   `yaml:"terminator"`
	Report     Report   `yaml:"report"`
}

// Period is the reporting period.
type Period struct {
	Begin Date `yaml:"begin"`
	End   Date `yaml:"end"`
}

// Tags configures tag scoping.
type Tags struct {
	// Strict makes popping an inactive tag an error. Defaults to true.
	Strict *bool `yaml:"strict"`
}

// Report configures the grouping of root accounts in reports.
type Report struct {
	Groups []Group `yaml:"groups"`
}

// Group is a titled set of root accounts.
type Group struct {
	Title string   `yaml:"title"`
	Roots []string `yaml:"roots"`
}

// Date is a date in YYYY-MM-DD format.
type Date struct {
	time.Time
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t
	return nil
}

// Default returns the configuration used without a file.
func Default() Config {
	strict := true
	return Config{
		Roots:      account.Roots,
		Tags:       Tags{Strict: &strict},
		Terminator: parser.DefaultTerminator,
	}
}

// Load reads the configuration file at path. An empty path yields the
// default configuration.
func Load(path string) (c Config, err error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return Read(f)
}

// Read decodes a configuration, filling in defaults for missing keys.
func Read(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	def := Default()
	if len(c.Roots) == 0 {
		c.Roots = def.Roots
	}
	if c.Tags.Strict == nil {
		c.Tags.Strict = def.Tags.Strict
	}
	if c.Terminator == "" {
		c.Terminator = def.Terminator
	}
	return c, c.validate()
}

func (c Config) validate() error {
	begin, end := c.Period.Begin.Time, c.Period.End.Time
	if !begin.IsZero() && !end.IsZero() && end.Before(begin) {
		return fmt.Errorf("period ends on %s before it begins on %s", end.Format("2006-01-02"), begin.Format("2006-01-02"))
	}
	for _, g := range c.Report.Groups {
		for _, r := range g.Roots {
			if !contains(c.Roots, r) {
				return fmt.Errorf("report group %q refers to %q, which is not a root", g.Title, r)
			}
		}
	}
	return nil
}

func contains(ss []string, s string) bool {
	for _, t := range ss {
		if t == s {
			return true
		}
	}
	return false
}

// Engine returns the engine configuration.
func (c Config) Engine() engine.Config {
	return engine.Config{
		Roots: c.Roots,
		Begin: c.Period.Begin.Time,
		End:   c.Period.End.Time,
		Parser: parser.Options{
			LenientTags: !*c.Tags.Strict,
			Terminator:  c.Terminator,
		},
	}
}

// Groups returns the report groups, defaulting to the balance sheet and
// profit and loss groups.
func (c Config) Groups() []report.Group {
	if len(c.Report.Groups) == 0 {
		return report.DefaultGroups
	}
	res := make([]report.Group, 0, len(c.Report.Groups))
	for _, g := range c.Report.Groups {
		res = append(res, report.Group{Title: g.Title, Roots: g.Roots})
	}
	return res
}
