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

package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/pacioli/pacioli/lib/amount"
	"github.com/pacioli/pacioli/lib/ledger"
	"github.com/pacioli/pacioli/lib/printer"
	"github.com/pacioli/pacioli/lib/wallet"
)

// Error wraps an error raised while replaying an item.
type Error struct {
	Item ledger.Item
	Err  error
}

func (e Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d:\n", e.Item.Line())
	printer.New(&b).PrintItem(e.Item)
	fmt.Fprintf(&b, "\n%v\n", e.Err)
	return b.String()
}

func (e Error) Unwrap() error {
	return e.Err
}

// InvalidAssetError is returned when an asset is posted to an account
// which does not allow it.
type InvalidAssetError struct {
	Account, Asset string
}

func (e InvalidAssetError) Error() string {
	return fmt.Sprintf("asset %s is not allowed in account %s", e.Asset, e.Account)
}

// ClosedAccountError is returned when a posting is dated outside the
// validity interval of its account.
type ClosedAccountError struct {
	Account string
	Date    time.Time
}

func (e ClosedAccountError) Error() string {
	return fmt.Sprintf("account %s is not open on %s", e.Account, e.Date.Format("2006-01-02"))
}

// IncompleteTransactionError is returned when more than one posting has
// no amount.
type IncompleteTransactionError struct {
	Accounts []string
}

func (e IncompleteTransactionError) Error() string {
	return fmt.Sprintf("more than one posting without amount: %s", strings.Join(e.Accounts, ", "))
}

// UnbalancedTransactionError is returned when the postings do not sum to
// zero and no posting can absorb the residual.
type UnbalancedTransactionError struct {
	Residual wallet.Wallet
}

func (e UnbalancedTransactionError) Error() string {
	return fmt.Sprintf("transaction does not balance, residual is %s", e.Residual)
}

// AmbiguousBookingError is returned when more than one posting asks for
// the realized gain.
type AmbiguousBookingError struct {
	Accounts []string
}

func (e AmbiguousBookingError) Error() string {
	return fmt.Sprintf("more than one booking posting: %s", strings.Join(e.Accounts, ", "))
}

// CrossCurrencyGainError is returned when a realized gain is spread over
// more than one asset.
type CrossCurrencyGainError struct {
	Gains wallet.Wallet
}

func (e CrossCurrencyGainError) Error() string {
	return fmt.Sprintf("realized gain in more than one asset: %s", e.Gains)
}

// UnreportedGainError is returned when a gain is realized but the
// transaction has no booking posting.
type UnreportedGainError struct {
	Gain amount.Amount
}

func (e UnreportedGainError) Error() string {
	return fmt.Sprintf("realized gain of %s has no booking posting", e.Gain)
}

// FailedCheckError is returned when an assertion does not match and no pad
// applies.
type FailedCheckError struct {
	Account      string
	Want, Actual amount.Amount
}

func (e FailedCheckError) Error() string {
	return fmt.Sprintf("assertion failed: account %s has %s, want %s", e.Account, e.Actual, e.Want)
}
