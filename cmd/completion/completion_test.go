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

package completion

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/pacioli/pacioli/cmd/cmdtest"
)

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		t.Run(shell, func(t *testing.T) {
			root := &cobra.Command{Use: "pacioli"}
			c := CreateCmd(root)
			root.AddCommand(c)

			got := cmdtest.Run(t, root, []string{"completion", shell})

			if !bytes.Contains(got, []byte("pacioli")) {
				t.Fatalf("completion script for %s does not mention the command:\n%s", shell, got)
			}
		})
	}
}

func TestUnknownShell(t *testing.T) {
	root := &cobra.Command{Use: "pacioli"}
	root.AddCommand(CreateCmd(root))
	root.SetArgs([]string{"completion", "tcsh"})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))

	if err := root.Execute(); err == nil {
		t.Fatalf("Execute() succeeded for an unsupported shell")
	}
}
