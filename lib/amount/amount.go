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

package amount

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is an exact decimal value in some asset.
type Amount struct {
	Value decimal.Decimal
	Asset string
}

// New creates a new amount.
func New(value decimal.Decimal, asset string) Amount {
	return Amount{Value: value, Asset: asset}
}

// Parse creates an amount from a decimal string. A leading plus sign
// is accepted.
func Parse(value, asset string) (Amount, error) {
	if len(value) > 0 && value[0] == '+' {
		value = value[1:]
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Value: d, Asset: asset}, nil
}

// Neg returns the negated amount.
func (a Amount) Neg() Amount {
	return Amount{Value: a.Value.Neg(), Asset: a.Asset}
}

// Mul converts a quantity into the price asset at the given unit price.
func (a Amount) Mul(price Amount) Amount {
	return Amount{Value: a.Value.Mul(price.Value), Asset: price.Asset}
}

// IsZero returns whether the value is zero.
func (a Amount) IsZero() bool {
	return a.Value.IsZero()
}

// Equal tests if both amounts are equal.
func (a Amount) Equal(b Amount) bool {
	return a.Asset == b.Asset && a.Value.Equal(b.Value)
}

func (a Amount) String() string {
	return fmt.Sprintf("%s %s", a.Value, a.Asset)
}
