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

import "time"

type pad struct {
	since  time.Time
	target string
}

// Pads tracks the pending pad per account. Any transaction clears all
// pending pads.
type Pads struct {
	pending map[string]pad
}

// NewPads creates an empty registry.
func NewPads() *Pads {
	return &Pads{pending: make(map[string]pad)}
}

// Register replaces the pending pad of the account.
func (p *Pads) Register(d *Pad) {
	p.pending[d.Account] = pad{since: d.At, target: d.Target}
}

// Clear drops all pending pads.
func (p *Pads) Clear() {
	p.pending = make(map[string]pad)
}

// Resolve returns the reconciliation account for a check on the account
// at the given date, or "" if no pad applies.
func (p *Pads) Resolve(account string, d time.Time) string {
	if pd, ok := p.pending[account]; ok && !pd.since.After(d) {
		return pd.target
	}
	return ""
}
