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

package wallet

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/pacioli/pacioli/lib/amount"
)

// Wallet maps assets to values. Absent assets have value zero.
type Wallet map[string]decimal.Decimal

// New creates an empty wallet.
func New() Wallet {
	return make(Wallet)
}

// Get returns the value held in the given asset.
func (w Wallet) Get(asset string) decimal.Decimal {
	return w[asset]
}

// Add mutably adds the amount to the wallet.
func (w Wallet) Add(a amount.Amount) {
	w[a.Asset] = w[a.Asset].Add(a.Value)
}

// Merge mutably adds all values of the other wallet.
func (w Wallet) Merge(o Wallet) {
	for asset, value := range o {
		w[asset] = w[asset].Add(value)
	}
}

// Sub mutably subtracts all values of the other wallet.
func (w Wallet) Sub(o Wallet) {
	for asset, value := range o {
		w[asset] = w[asset].Sub(value)
	}
}

// Value returns the sum of the absolute values of all assets.
func (w Wallet) Value() decimal.Decimal {
	res := decimal.Zero
	for _, value := range w {
		res = res.Add(value.Abs())
	}
	return res
}

// IsZero returns whether every asset has value zero.
func (w Wallet) IsZero() bool {
	return w.Value().IsZero()
}

// Clone returns a deep copy.
func (w Wallet) Clone() Wallet {
	res := make(Wallet, len(w))
	for asset, value := range w {
		res[asset] = value
	}
	return res
}

// Assets returns the assets held in the wallet, sorted.
func (w Wallet) Assets() []string {
	res := maps.Keys(w)
	slices.Sort(res)
	return res
}

// Amounts returns the (asset, value) pairs of the wallet, sorted
// by asset.
func (w Wallet) Amounts() []amount.Amount {
	res := make([]amount.Amount, 0, len(w))
	for _, asset := range w.Assets() {
		res = append(res, amount.New(w[asset], asset))
	}
	return res
}

// NonZero returns the amounts with a non-zero value, sorted by asset.
func (w Wallet) NonZero() []amount.Amount {
	var res []amount.Amount
	for _, a := range w.Amounts() {
		if !a.IsZero() {
			res = append(res, a)
		}
	}
	return res
}

// Equal tests whether both wallets hold the same values. Absent
// assets compare equal to zero.
func (w Wallet) Equal(o Wallet) bool {
	for asset, value := range w {
		if !value.Equal(o[asset]) {
			return false
		}
	}
	for asset, value := range o {
		if !value.Equal(w[asset]) {
			return false
		}
	}
	return true
}

func (w Wallet) String() string {
	var ss []string
	for _, a := range w.Amounts() {
		ss = append(ss, a.String())
	}
	return strings.Join(ss, " ")
}
