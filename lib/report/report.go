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

// Package report renders account trees as text tables.
package report

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/pacioli/pacioli/lib/account"
	"github.com/pacioli/pacioli/lib/wallet"
)

// Column is a tree rendered as one value column.
type Column struct {
	Title string
	Tree  *account.Tree
}

// Group is a set of root accounts rendered together, followed by their
// total.
type Group struct {
	Title string
	Roots []string
}

// DefaultGroups separates the balance sheet from profit and loss.
var DefaultGroups = []Group{
	{Title: "Total (A+L+E)", Roots: []string{"Assets", "Liabilities", "Equity"}},
	{Title: "Total (I+E)", Roots: []string{"Income", "Expenses"}},
}

// Report renders the same accounts from several trees side by side. All
// trees must share their account structure, as snapshots of a single
// run do.
type Report struct {
	Columns []Column
	Groups  []Group
}

// Table builds the table of the report.
func (r *Report) Table() *Table {
	tbl := NewTable(2 + len(r.Columns))
	tbl.AddSeparatorRow()
	header := tbl.AddRow().AddText("Account", Center).AddText("Comm", Center)
	for _, c := range r.Columns {
		header.AddText(c.Title, Center)
	}
	tbl.AddSeparatorRow()

	delta := r.wallets()
	for _, g := range r.Groups {
		total := r.wallets()
		for _, root := range g.Roots {
			if !r.Columns[0].Tree.Has(root) {
				continue
			}
			if r.renderAccount(tbl, root, 0) {
				tbl.AddEmptyRow()
			}
			for i, c := range r.Columns {
				a, _ := c.Tree.Get(root)
				total[i].Merge(a.Wallet)
				delta[i].Merge(a.Wallet)
			}
		}
		r.render(tbl, g.Title, 0, total)
		tbl.AddSeparatorRow()
	}
	if len(r.Groups) > 1 {
		r.render(tbl, "Delta", 0, delta)
		tbl.AddSeparatorRow()
	}
	return tbl
}

func (r *Report) wallets() []wallet.Wallet {
	res := make([]wallet.Wallet, len(r.Columns))
	for i := range res {
		res[i] = wallet.New()
	}
	return res
}

// renderAccount renders the account and its descendants, skipping
// subtrees without any value. It returns whether anything was rendered.
func (r *Report) renderAccount(tbl *Table, name string, indent int) bool {
	if !r.hasValues(name) {
		return false
	}
	label := name
	if indent > 0 {
		label = name[strings.LastIndexByte(name, ':')+1:]
	}
	vals := make([]wallet.Wallet, len(r.Columns))
	for i, c := range r.Columns {
		a, _ := c.Tree.Get(name)
		vals[i] = a.Wallet
	}
	r.render(tbl, label, indent, vals)
	for _, ch := range r.Columns[0].Tree.Children(name) {
		r.renderAccount(tbl, ch.Name(), indent+2)
	}
	return true
}

func (r *Report) hasValues(name string) bool {
	for _, c := range r.Columns {
		if a, err := c.Tree.Get(name); err == nil && !a.Wallet.IsZero() {
			return true
		}
	}
	for _, ch := range r.Columns[0].Tree.Children(name) {
		if r.hasValues(ch.Name()) {
			return true
		}
	}
	return false
}

// render adds one row per asset held in any of the wallets.
func (r *Report) render(tbl *Table, label string, indent int, vals []wallet.Wallet) {
	var assets []string
	for _, w := range vals {
		for _, a := range w.NonZero() {
			if !slices.Contains(assets, a.Asset) {
				assets = append(assets, a.Asset)
			}
		}
	}
	slices.Sort(assets)
	if len(assets) == 0 {
		tbl.AddRow().AddIndented(label, indent).FillEmpty()
		return
	}
	for i, asset := range assets {
		row := tbl.AddRow()
		if i == 0 {
			row.AddIndented(label, indent)
		} else {
			row.AddEmpty()
		}
		row.AddText(asset, Left)
		for _, w := range vals {
			row.AddNumber(w.Get(asset))
		}
	}
}
