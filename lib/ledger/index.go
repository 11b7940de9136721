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

	"github.com/pacioli/pacioli/lib/account"
	"github.com/pacioli/pacioli/lib/common/compare"
	"github.com/pacioli/pacioli/lib/common/dict"
)

// Index groups transactions for drill-down reporting.
type Index struct {
	Dates    map[time.Time][]*Transaction
	Tags     map[string][]*Transaction
	Accounts map[string][]*Transaction
}

// Index groups the transactions dated within [from, to] by date, by tag
// and by every account, including ancestors, touched by a posting. Zero
// bounds are open.
func (l Ledger) Index(from, to time.Time) Index {
	idx := Index{
		Dates:    make(map[time.Time][]*Transaction),
		Tags:     make(map[string][]*Transaction),
		Accounts: make(map[string][]*Transaction),
	}
	for _, t := range l.Transactions() {
		if t.At.Before(from) || (!to.IsZero() && t.At.After(to)) {
			continue
		}
		idx.Dates[t.At] = append(idx.Dates[t.At], t)
		for _, tag := range t.Tags {
			idx.Tags[tag] = append(idx.Tags[tag], t)
		}
		seen := make(map[string]bool)
		for _, p := range t.Postings {
			for _, n := range account.Ancestors(p.Account) {
				if seen[n] {
					continue
				}
				seen[n] = true
				idx.Accounts[n] = append(idx.Accounts[n], t)
			}
		}
	}
	return idx
}

// SortedDates returns the indexed dates in ascending order.
func (idx Index) SortedDates() []time.Time {
	return dict.SortedKeys(idx.Dates, compare.Time)
}

// SortedTags returns the indexed tags in ascending order.
func (idx Index) SortedTags() []string {
	return dict.SortedKeys(idx.Tags, compare.Ordered[string])
}
