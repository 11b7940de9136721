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
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{value: "10", want: "10 USD"},
		{value: "+10000", want: "10000 USD"},
		{value: "-300.50", want: "-300.5 USD"},
		{value: "abc", wantErr: true},
		{value: "", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.value, func(t *testing.T) {
			got, err := Parse(test.value, "USD")
			if (err != nil) != test.wantErr {
				t.Fatalf("Parse(%q) returned error %v, want error presence %t", test.value, err, test.wantErr)
			}
			if err == nil && got.String() != test.want {
				t.Errorf("Parse(%q) = %s, want %s", test.value, got, test.want)
			}
		})
	}
}

func TestNeg(t *testing.T) {
	for i := -10; i < 10; i++ {
		a := New(decimal.NewFromInt(int64(i)), "CHF")
		want := New(decimal.NewFromInt(int64(-i)), "CHF")
		if got := a.Neg(); !got.Equal(want) {
			t.Errorf("-(%s) = %s, want %s", a, got, want)
		}
	}
}

func TestMul(t *testing.T) {
	var (
		qty   = New(decimal.NewFromInt(6), "AAPL")
		price = New(decimal.NewFromInt(8), "USD")
		want  = New(decimal.NewFromInt(48), "USD")
	)
	if got := qty.Mul(price); !got.Equal(want) {
		t.Errorf("%s.Mul(%s) = %s, want %s", qty, price, got, want)
	}
}
