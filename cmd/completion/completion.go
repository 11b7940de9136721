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
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// CreateCmd creates the command.
func CreateCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "output shell completion code [bash|zsh|fish]",
		Long: `To load completions:

Bash:

$ source <(pacioli completion bash)

Zsh:

# If shell completion is not already enabled in your environment you will need
# to enable it.  You can execute the following once:

$ echo "autoload -U compinit; compinit" >> ~/.zshrc

# To load completions for each session, execute once:
$ pacioli completion zsh > "${fpath[1]}/_pacioli"

Fish:

$ pacioli completion fish > ~/.config/fish/completions/pacioli.fish
`,

		Args:      cobra.ExactValidArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},

		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(w)
			case "zsh":
				if err := rootCmd.GenZshCompletion(w); err != nil {
					return err
				}
				_, err := io.WriteString(w, "\ncompdef _pacioli pacioli\n")
				return err
			case "fish":
				return rootCmd.GenFishCompletion(w, true)
			}
			return fmt.Errorf("unknown shell: %s", args[0])
		},
	}
}
