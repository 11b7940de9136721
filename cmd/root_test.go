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

package cmd

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pacioli/pacioli/cmd/cmdtest"
)

func TestLenientTags(t *testing.T) {
	got := cmdtest.Run(t, CreateCmd(), []string{"check", "--lenient-tags", "testdata/poptags.ledger"})

	if diff := cmp.Diff("testdata/poptags.ledger: ok\n", string(got)); diff != "" {
		t.Fatalf("unexpected output (-want, +got):\n%s", diff)
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := CreateCmd()
	c.SetOut(&stdout)
	c.SetErr(&stderr)
	c.SetArgs([]string{"check", "--verbose", "--lenient-tags", "testdata/poptags.ledger"})

	if err := c.Execute(); err != nil {
		t.Fatalf("Execute() returned unexpected error: %v", err)
	}

	if !bytes.Contains(stderr.Bytes(), []byte("ledger checked")) {
		t.Fatalf("stderr = %q, want a debug record", stderr.String())
	}
}
