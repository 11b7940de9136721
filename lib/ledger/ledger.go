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

	"github.com/pacioli/pacioli/lib/common/compare"
)

// Ledger is an ordered list of items.
type Ledger struct {
	Items []Item
}

// Add appends an item.
func (l *Ledger) Add(i Item) {
	l.Items = append(l.Items, i)
}

// Compare orders items by date, then by line.
var Compare = compare.Combine(
	compare.By(Item.Date, compare.Time),
	compare.By(Item.Line, compare.Ordered[int]),
)

// Sort sorts the items by date and line number.
func (l *Ledger) Sort() {
	compare.Sort(l.Items, Compare)
}

// Transactions returns the transactions in ledger order.
func (l Ledger) Transactions() []*Transaction {
	var res []*Transaction
	for _, i := range l.Items {
		if t, ok := i.(*Transaction); ok {
			res = append(res, t)
		}
	}
	return res
}

// MinDate returns the date of the first item.
func (l Ledger) MinDate() (time.Time, bool) {
	if len(l.Items) == 0 {
		return time.Time{}, false
	}
	return l.Items[0].Date(), true
}

// MaxDate returns the date of the last item.
func (l Ledger) MaxDate() (time.Time, bool) {
	if len(l.Items) == 0 {
		return time.Time{}, false
	}
	return l.Items[len(l.Items)-1].Date(), true
}

// Until returns the items dated on or before d. A zero date keeps all
// items.
func (l Ledger) Until(d time.Time) Ledger {
	if d.IsZero() {
		return l
	}
	var res Ledger
	for _, i := range l.Items {
		if !i.Date().After(d) {
			res.Add(i)
		}
	}
	return res
}
