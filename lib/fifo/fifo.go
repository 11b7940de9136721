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

// Package fifo matches disposals of an asset against its earliest
// acquisitions to compute realized gains.
package fifo

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pacioli/pacioli/lib/amount"
	"github.com/pacioli/pacioli/lib/wallet"
)

// Lot is a recorded acquisition.
type Lot struct {
	Quantity decimal.Decimal
	// Price is the unit price paid.
	Price amount.Amount
}

func (l Lot) String() string {
	return fmt.Sprintf("%s @ %s", l.Quantity, l.Price)
}

// InsufficientLotsError is returned when a disposal exceeds the quantity
// held across all lots.
type InsufficientLotsError struct {
	Asset      string
	Want, Have decimal.Decimal
}

func (e InsufficientLotsError) Error() string {
	return fmt.Sprintf("cannot dispose of %s %s, only %s %s available", e.Want, e.Asset, e.Have, e.Asset)
}

// Tracker holds one lot queue per asset.
type Tracker struct {
	queues map[string][]Lot
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{queues: make(map[string][]Lot)}
}

// Reset drops all lots.
func (t *Tracker) Reset() {
	t.queues = make(map[string][]Lot)
}

// Book routes a signed quantity traded at the given unit price: positive
// quantities are acquired, negative ones disposed of. The legs of any
// realized gain are added to gains.
func (t *Tracker) Book(quantity, price amount.Amount, gains wallet.Wallet) error {
	switch quantity.Value.Sign() {
	case 1:
		t.Acquire(quantity, price)
	case -1:
		return t.Dispose(quantity.Neg(), price, gains)
	}
	return nil
}

// Acquire appends a lot to the queue of the asset.
func (t *Tracker) Acquire(quantity, price amount.Amount) {
	t.queues[quantity.Asset] = append(t.queues[quantity.Asset], Lot{Quantity: quantity.Value, Price: price})
}

// Dispose consumes the given positive quantity from the oldest lots.
// For every lot consumed, the proceeds at the disposal price and the
// negated cost at the lot price are added to gains, so that the wallet
// sums to the realized gain. The queue is left untouched if the quantity
// exceeds the available lots.
func (t *Tracker) Dispose(quantity, price amount.Amount, gains wallet.Wallet) error {
	if have := t.Available(quantity.Asset); have.LessThan(quantity.Value) {
		return InsufficientLotsError{Asset: quantity.Asset, Want: quantity.Value, Have: have}
	}
	var (
		lots = t.queues[quantity.Asset]
		rest = quantity.Value
	)
	for rest.IsPositive() {
		lot := lots[0]
		consumed := decimal.Min(rest, lot.Quantity)
		gains.Add(amount.New(consumed.Mul(price.Value), price.Asset))
		gains.Add(amount.New(consumed.Mul(lot.Price.Value).Neg(), lot.Price.Asset))
		rest = rest.Sub(consumed)
		if consumed.Equal(lot.Quantity) {
			lots = lots[1:]
		} else {
			lots[0].Quantity = lot.Quantity.Sub(consumed)
		}
	}
	if len(lots) == 0 {
		delete(t.queues, quantity.Asset)
	} else {
		t.queues[quantity.Asset] = lots
	}
	return nil
}

// Available returns the total quantity held of the asset.
func (t *Tracker) Available(asset string) decimal.Decimal {
	var res decimal.Decimal
	for _, lot := range t.queues[asset] {
		res = res.Add(lot.Quantity)
	}
	return res
}

// Lots returns a copy of the queue of the asset, oldest first.
func (t *Tracker) Lots(asset string) []Lot {
	return append([]Lot(nil), t.queues[asset]...)
}
