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

package account

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/pacioli/pacioli/lib/amount"
	"github.com/pacioli/pacioli/lib/wallet"
)

var (
	jan1 = time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)
	feb1 = time.Date(2013, 2, 1, 0, 0, 0, 0, time.UTC)
	mar1 = time.Date(2013, 3, 1, 0, 0, 0, 0, time.UTC)
)

func usd(s string) amount.Amount {
	return amount.New(decimal.RequireFromString(s), "USD")
}

func TestAncestors(t *testing.T) {
	got := Ancestors("Expenses:Monthly:LoanInterest")

	want := []string{"Expenses:Monthly:LoanInterest", "Expenses:Monthly", "Expenses"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected diff (-want/+got):\n%s", diff)
	}
}

func TestOpenCreatesAncestors(t *testing.T) {
	tree := NewTree()

	a, err := tree.Open("Expenses:Monthly:LoanInterest", jan1, []string{"USD"})

	if err != nil {
		t.Fatalf("tree.Open() returned unexpected error: %v", err)
	}
	if !a.Declared || !a.OpenDate.Equal(jan1) {
		t.Errorf("account %s not declared at %s", a, jan1)
	}
	parent, err := tree.Get("Expenses:Monthly")
	if err != nil {
		t.Fatalf("tree.Get() returned unexpected error: %v", err)
	}
	if parent.Declared || parent.Assets != nil {
		t.Errorf("implicit ancestor %s should be undeclared and unrestricted", parent)
	}
	if !a.Allows("USD") || a.Allows("CHF") {
		t.Errorf("unexpected whitelist behavior for %s", a)
	}
}

func TestOpenErrors(t *testing.T) {
	tree := NewTree()
	if _, err := tree.Open("Assets:Cash", jan1, nil); err != nil {
		t.Fatalf("tree.Open() returned unexpected error: %v", err)
	}
	for _, name := range []string{"Assets:Cash", "Foo:Bar", "Assets::Cash", "Assets:Ca$h"} {
		if _, err := tree.Open(name, jan1, nil); err == nil {
			t.Errorf("tree.Open(%q) succeeded, want error", name)
		}
	}
}

func TestReopenClosedAccount(t *testing.T) {
	tree := NewTree()
	tree.Open("Assets:Cash", jan1, nil)
	tree.Close("Assets:Cash", feb1)

	_, err := tree.Open("Assets:Cash", mar1, nil)

	if err == nil || !strings.Contains(err.Error(), "already declared") {
		t.Fatalf("tree.Open() returned %v, want an already declared error", err)
	}
}

func TestGetUnknown(t *testing.T) {
	tree := NewTree()

	_, err := tree.Get("Assets:Nope")

	var unknown UnknownAccountError
	if !errors.As(err, &unknown) || unknown.Name != "Assets:Nope" {
		t.Fatalf("tree.Get() returned %v, want UnknownAccountError", err)
	}
}

func TestCloseClosesDescendants(t *testing.T) {
	tree := NewTree()
	tree.Open("Assets:Bank:Checking", jan1, nil)
	tree.Open("Assets:BankOther", jan1, nil)

	if err := tree.Close("Assets:Bank", feb1); err != nil {
		t.Fatalf("tree.Close() returned unexpected error: %v", err)
	}

	checking, _ := tree.Get("Assets:Bank:Checking")
	other, _ := tree.Get("Assets:BankOther")
	if !checking.IsOpen(feb1.AddDate(0, 0, -1)) {
		t.Errorf("%s should be open the day before %s", checking, feb1)
	}
	if checking.IsOpen(feb1) || checking.IsOpen(mar1) {
		t.Errorf("%s should be closed from %s", checking, feb1)
	}
	if !other.IsOpen(mar1) {
		t.Errorf("%s should not be closed", other)
	}
	if checking.IsOpen(jan1.AddDate(0, 0, -1)) {
		t.Errorf("%s should not be open before %s", checking, jan1)
	}
}

func TestPropagate(t *testing.T) {
	tree := NewTree()
	tree.Open("Expenses:Monthly:LoanInterest", jan1, nil)
	tree.Open("Expenses:Shipping", jan1, nil)

	tree.Propagate("Expenses:Monthly:LoanInterest", usd("175"))
	tree.Propagate("Expenses:Shipping", usd("500"))

	for name, want := range map[string]string{
		"Expenses:Monthly:LoanInterest": "175",
		"Expenses:Monthly":              "175",
		"Expenses:Shipping":             "500",
		"Expenses":                      "675",
	} {
		a, _ := tree.Get(name)
		if got := a.Wallet.Get("USD"); !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("%s has %s USD, want %s", name, got, want)
		}
	}
	if err := tree.Propagate("Expenses:Nope", usd("1")); err == nil {
		t.Errorf("tree.Propagate() on unknown account succeeded, want error")
	}
}

func TestCloneAndMinus(t *testing.T) {
	tree := NewTree()
	tree.Open("Assets:Cash", jan1, nil)
	tree.Propagate("Assets:Cash", usd("100"))
	begin := tree.Clone()
	tree.Propagate("Assets:Cash", usd("50"))

	diff := tree.Clone()
	diff.Minus(begin)

	cash, _ := begin.Get("Assets:Cash")
	if !cash.Wallet.Equal(wallet.Wallet{"USD": decimal.NewFromInt(100)}) {
		t.Errorf("snapshot was modified: %v", cash.Wallet)
	}
	cash, _ = diff.Get("Assets")
	if !cash.Wallet.Equal(wallet.Wallet{"USD": decimal.NewFromInt(50)}) {
		t.Errorf("diff = %v, want 50 USD", cash.Wallet)
	}
}

func TestChildrenAndLeaves(t *testing.T) {
	tree := NewTree()
	tree.Open("Assets:Cash", jan1, nil)
	tree.Open("Assets:Bank:Checking", jan1, nil)

	var children []string
	for _, a := range tree.Children("Assets") {
		children = append(children, a.Name())
	}

	if diff := cmp.Diff([]string{"Assets:Bank", "Assets:Cash"}, children); diff != "" {
		t.Errorf("unexpected children (-want/+got):\n%s", diff)
	}
	want := []string{"Assets:Bank:Checking", "Assets:Cash", "Equity", "Expenses", "Income", "Liabilities"}
	if diff := cmp.Diff(want, tree.Leaves()); diff != "" {
		t.Errorf("unexpected leaves (-want/+got):\n%s", diff)
	}
}
