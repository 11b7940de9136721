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

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pacioli/pacioli/lib/engine"
	"github.com/pacioli/pacioli/lib/parser"
	"github.com/pacioli/pacioli/lib/report"
)

func TestRead(t *testing.T) {
	text := `
roots: [Assets, Liabilities, Equity, Income, Expenses]
period:
  begin: 2013-01-01
  end: 2013-12-31
tags:
  strict: false
terminator: END
report:
  groups:
    - title: Balance
      roots: [Assets, Liabilities]
`
	c, err := Read(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Read() returned unexpected error: %v", err)
	}

	want := engine.Config{
		Roots: []string{"Assets", "Liabilities", "Equity", "Income", "Expenses"},
		Begin: time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2013, 12, 31, 0, 0, 0, 0, time.UTC),
		Parser: parser.Options{
			LenientTags: true,
			Terminator:  "END",
		},
	}
	if diff := cmp.Diff(want, c.Engine()); diff != "" {
		t.Errorf("c.Engine() returned unexpected diff (-want/+got)\n%s\n", diff)
	}
	wantGroups := []report.Group{{Title: "Balance", Roots: []string{"Assets", "Liabilities"}}}
	if diff := cmp.Diff(wantGroups, c.Groups()); diff != "" {
		t.Errorf("c.Groups() returned unexpected diff (-want/+got)\n%s\n", diff)
	}
}

func TestReadDefaults(t *testing.T) {
	c, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Read() returned unexpected error: %v", err)
	}

	if diff := cmp.Diff(Default().Engine(), c.Engine()); diff != "" {
		t.Errorf("c.Engine() returned unexpected diff (-want/+got)\n%s\n", diff)
	}
	if diff := cmp.Diff(report.DefaultGroups, c.Groups()); diff != "" {
		t.Errorf("c.Groups() returned unexpected diff (-want/+got)\n%s\n", diff)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []string{
		"period: {begin: 2013-12-31, end: 2013-01-01}",
		"period: {begin: yesterday}",
		"unknown: key",
		"report: {groups: [{title: X, roots: [Assets, Cash]}]}",
	}
	for _, test := range tests {
		if _, err := Read(strings.NewReader(test)); err == nil {
			t.Errorf("Read(%q) succeeded, want error", test)
		}
	}
}

func TestLoadWithoutPath(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !*c.Tags.Strict {
		t.Errorf("tags should be strict by default")
	}
}
