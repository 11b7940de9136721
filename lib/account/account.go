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
	"unicode"

	"golang.org/x/exp/slices"

	"github.com/pacioli/pacioli/lib/wallet"
)

// Roots are the default top-level categories.
var Roots = []string{"Assets", "Liabilities", "Equity", "Income", "Expenses"}

// Account is a node in the account tree.
type Account struct {
	name string

	// Assets restricts the assets which can be posted to the account.
	// A nil slice permits any asset.
	Assets []string

	// OpenDate and CloseDate delimit the validity interval. A zero
	// CloseDate means the account is never closed.
	OpenDate, CloseDate time.Time

	// Declared is set when the account was opened by an open directive,
	// as opposed to being created as an ancestor.
	Declared bool

	Wallet wallet.Wallet
}

// Name returns the full colon-separated name.
func (a *Account) Name() string {
	return a.name
}

// Segments returns the account name split into segments.
func (a *Account) Segments() []string {
	return strings.Split(a.name, ":")
}

// Level returns the depth of the account, starting with 1 for roots.
func (a *Account) Level() int {
	return strings.Count(a.name, ":") + 1
}

// Root returns the name of the top-level category.
func (a *Account) Root() string {
	root, _, _ := strings.Cut(a.name, ":")
	return root
}

// Allows returns whether the asset may be posted to this account.
func (a *Account) Allows(asset string) bool {
	return a.Assets == nil || slices.Contains(a.Assets, asset)
}

// IsOpen returns whether the account accepts postings at the given date.
// An account is closed from its close date on.
func (a *Account) IsOpen(d time.Time) bool {
	if d.Before(a.OpenDate) {
		return false
	}
	return a.CloseDate.IsZero() || d.Before(a.CloseDate)
}

func (a *Account) String() string {
	return a.name
}

func (a *Account) clone() *Account {
	return &Account{
		name:      a.name,
		Assets:    slices.Clone(a.Assets),
		OpenDate:  a.OpenDate,
		CloseDate: a.CloseDate,
		Declared:  a.Declared,
		Wallet:    a.Wallet.Clone(),
	}
}

// Ancestors decomposes an account name into the chain of its prefixes,
// from the account itself up to its root.
func Ancestors(name string) []string {
	segments := strings.Split(name, ":")
	res := make([]string, 0, len(segments))
	for k := len(segments); k > 0; k-- {
		res = append(res, strings.Join(segments[:k], ":"))
	}
	return res
}

// Parent returns the name of the parent account, or false for roots.
func Parent(name string) (string, bool) {
	i := strings.LastIndexByte(name, ':')
	if i < 0 {
		return "", false
	}
	return name[:i], true
}

func validate(name string) error {
	for _, s := range strings.Split(name, ":") {
		if !isValidSegment(s) {
			return fmt.Errorf("account name %q has an invalid segment %q", name, s)
		}
	}
	return nil
}

func isValidSegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if !(unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '_') {
			return false
		}
	}
	return true
}
