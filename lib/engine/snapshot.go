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
	"time"

	"github.com/pacioli/pacioli/lib/account"
)

// Snapshots holds copies of the tree at the boundaries of the reporting
// period, and their difference.
type Snapshots struct {
	Begin, End, Diff *account.Tree
}

type snapshotter struct {
	begin, end time.Time
	snapshots  Snapshots
}

func newSnapshotter(begin, end time.Time) *snapshotter {
	return &snapshotter{begin: begin, end: end}
}

// before must be called before an item at the given date is applied.
func (s *snapshotter) before(d time.Time, t *account.Tree) {
	if s.snapshots.Begin == nil && !d.Before(s.begin) {
		s.snapshots.Begin = t.Clone()
	}
	if s.snapshots.End == nil && !s.end.IsZero() && d.After(s.end) {
		s.snapshots.End = t.Clone()
	}
}

func (s *snapshotter) finish(t *account.Tree) Snapshots {
	res := s.snapshots
	if res.Begin == nil {
		res.Begin = t.Clone()
	}
	if res.End == nil {
		res.End = t.Clone()
	}
	res.Diff = res.End.Clone()
	res.Diff.Minus(res.Begin)
	return res
}
