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

package ledger

import (
	"time"

	"github.com/pacioli/pacioli/lib/amount"
)

// Item is an element of the ledger. The set of items is closed: Open,
// Close, Pad, Check and Transaction.
type Item interface {
	// Date returns the date at which the item takes effect.
	Date() time.Time
	// Line returns the 1-based line number of the directive, which also
	// serves as the sequence id.
	Line() int

	item()
}

var (
	_ Item = (*Open)(nil)
	_ Item = (*Close)(nil)
	_ Item = (*Pad)(nil)
	_ Item = (*Check)(nil)
	_ Item = (*Transaction)(nil)
)

// Header holds the fields shared by all items.
type Header struct {
	At  time.Time
	Seq int
}

// Date implements Item.
func (h Header) Date() time.Time {
	return h.At
}

// Line implements Item.
func (h Header) Line() int {
	return h.Seq
}

func (Header) item() {}

// Open declares an account.
type Open struct {
	Header
	Account string
	Assets  []string
}

// Close closes an account and its descendants.
type Close struct {
	Header
	Account string
}

// Pad registers a reconciliation account for future checks on Account.
type Pad struct {
	Header
	Account, Target string
}

// Check asserts the balance of an account in one asset.
type Check struct {
	Header
	Account string
	Amount  amount.Amount
	// Pad is the reconciliation account which absorbs a discrepancy, if a
	// pad applied when the check was parsed.
	Pad     string
	Comment string
}

// Posting is one leg of a transaction.
type Posting struct {
	Account string
	// Amount is nil for the balancing posting, and for a booking
	// posting until its gain has been computed.
	Amount *amount.Amount
	// Price is the unit price when the amount is a quantity to be
	// converted.
	Price   *amount.Amount
	Comment string
	// Booking marks the posting which receives the realized gain.
	Booking bool
	// Inferred marks postings synthesized from the balancing posting.
	Inferred bool
}

// Value returns the accounted value of the posting: the amount itself,
// or the amount converted at its price.
func (p *Posting) Value() amount.Amount {
	if p.Price != nil {
		return p.Amount.Mul(*p.Price)
	}
	return *p.Amount
}

// Transaction is a balanced set of postings.
type Transaction struct {
	Header
	// EffectiveDate is informational and defaults to the date.
	EffectiveDate time.Time
	Description   string
	Comment       string
	Postings      []*Posting
	Tags          []string
	Pending       bool
}

// HasTag returns whether the transaction carries the tag.
func (t *Transaction) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}
