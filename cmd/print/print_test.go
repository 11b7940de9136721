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

package print

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/pacioli/pacioli/cmd/cmdtest"
)

func TestGolden(t *testing.T) {
	tests := []struct {
		golden string
		args   []string
	}{
		{golden: "shop"},
		{golden: "shop-checks", args: []string{"--checks"}},
		{golden: "shop-until", args: []string{"--to", "2013-01-04"}},
		{golden: "shop-checks-padded", args: []string{"--checks", "--to", "2013-01-05", "--pad", "Equity:Opening-Balances"}},
	}
	for _, test := range tests {
		t.Run(test.golden, func(t *testing.T) {
			got := cmdtest.Run(t, CreateCmd(), append(test.args, "testdata/shop.ledger"))

			goldie.New(t).Assert(t, test.golden, got)
		})
	}
}
