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

package balance

import (
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/pacioli/pacioli/cmd/cmdtest"
)

func TestGolden(t *testing.T) {
	args := []string{
		"--color=false",
		"--from", "2013-02-01",
		"--to", "2013-03-31",
		"testdata/toystore.ledger",
	}

	got := cmdtest.Run(t, CreateCmd(), args)

	goldie.New(t).Assert(t, "toystore", got)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteError(t *testing.T) {
	var r runner
	c := CreateCmd()
	c.SetOut(failingWriter{})

	err := r.execute(c, []string{"testdata/toystore.ledger"})

	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("r.execute() returned %v, want the write error", err)
	}
}
