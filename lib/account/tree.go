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
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/pacioli/pacioli/lib/amount"
	"github.com/pacioli/pacioli/lib/wallet"
)

// UnknownAccountError is returned when an account is referenced which
// has not been declared.
type UnknownAccountError struct {
	Name string
}

func (e UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account %q", e.Name)
}

// Tree is a hierarchy of accounts, keyed by their full name. Every
// ancestor of an account in the tree is itself in the tree.
type Tree struct {
	roots    []string
	accounts map[string]*Account
}

// NewTree creates a tree with the given root categories. Without
// arguments, the default Roots are used.
func NewTree(roots ...string) *Tree {
	if len(roots) == 0 {
		roots = Roots
	}
	t := &Tree{
		roots:    slices.Clone(roots),
		accounts: make(map[string]*Account),
	}
	for _, r := range roots {
		t.accounts[r] = &Account{name: r, Wallet: wallet.New()}
	}
	return t
}

// Roots returns the root categories in their configured order.
func (t *Tree) Roots() []string {
	return t.roots
}

// Open declares the named account, creating missing ancestors. Ancestors
// created implicitly carry no asset restriction and no open date.
func (t *Tree) Open(name string, d time.Time, assets []string) (*Account, error) {
	if err := validate(name); err != nil {
		return nil, err
	}
	chain := Ancestors(name)
	root := chain[len(chain)-1]
	if _, ok := t.accounts[root]; !ok {
		return nil, fmt.Errorf("account name %q has an invalid root %q", name, root)
	}
	if a, ok := t.accounts[name]; ok && a.Declared {
		return nil, fmt.Errorf("account %s is already declared", name)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if _, ok := t.accounts[chain[i]]; !ok {
			t.accounts[chain[i]] = &Account{name: chain[i], Wallet: wallet.New()}
		}
	}
	a := t.accounts[name]
	a.Declared = true
	a.OpenDate = d
	a.Assets = assets
	return a, nil
}

// Close closes the account and all its descendants at the given date.
func (t *Tree) Close(name string, d time.Time) error {
	if _, err := t.Get(name); err != nil {
		return err
	}
	prefix := name + ":"
	for n, a := range t.accounts {
		if n == name || strings.HasPrefix(n, prefix) {
			a.CloseDate = d
		}
	}
	return nil
}

// Get returns the account with the given name.
func (t *Tree) Get(name string) (*Account, error) {
	a, ok := t.accounts[name]
	if !ok {
		return nil, UnknownAccountError{Name: name}
	}
	return a, nil
}

// Has returns whether the account exists.
func (t *Tree) Has(name string) bool {
	_, ok := t.accounts[name]
	return ok
}

// Propagate adds the amount to the account and to all of its ancestors.
func (t *Tree) Propagate(name string, a amount.Amount) error {
	chain := Ancestors(name)
	for _, n := range chain {
		if !t.Has(n) {
			return UnknownAccountError{Name: n}
		}
	}
	for _, n := range chain {
		t.accounts[n].Wallet.Add(a)
	}
	return nil
}

// Reset empties all wallets.
func (t *Tree) Reset() {
	for _, a := range t.accounts {
		a.Wallet = wallet.New()
	}
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	res := &Tree{
		roots:    slices.Clone(t.roots),
		accounts: make(map[string]*Account, len(t.accounts)),
	}
	for n, a := range t.accounts {
		res.accounts[n] = a.clone()
	}
	return res
}

// Minus mutably subtracts the wallets of the other tree, account by account.
func (t *Tree) Minus(o *Tree) {
	for n, a := range o.accounts {
		if mine, ok := t.accounts[n]; ok {
			mine.Wallet.Sub(a.Wallet)
		}
	}
}

// Names returns all account names, sorted.
func (t *Tree) Names() []string {
	res := maps.Keys(t.accounts)
	slices.Sort(res)
	return res
}

// Accounts returns all accounts sorted by name.
func (t *Tree) Accounts() []*Account {
	names := t.Names()
	res := make([]*Account, 0, len(names))
	for _, n := range names {
		res = append(res, t.accounts[n])
	}
	return res
}

// Children returns the direct children of the account, sorted by name.
func (t *Tree) Children(name string) []*Account {
	var res []*Account
	for _, a := range t.Accounts() {
		if p, ok := Parent(a.name); ok && p == name {
			res = append(res, a)
		}
	}
	return res
}

// Leaves returns the names of all accounts without children, sorted.
func (t *Tree) Leaves() []string {
	parents := make(map[string]bool)
	for n := range t.accounts {
		if p, ok := Parent(n); ok {
			parents[p] = true
		}
	}
	var res []string
	for _, n := range t.Names() {
		if !parents[n] {
			res = append(res, n)
		}
	}
	return res
}
