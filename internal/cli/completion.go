package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pagefilter/internal/manifest"
)

// completionScripts generates the completion script of each supported shell.
var completionScripts = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// manifestExts are offered when completing a <manifest> argument.
var manifestExts = []string{"json", "yaml", "yml"}

func newCompletionCommand() *cobra.Command {
	shells := make([]string, 0, len(completionScripts))
	for name := range completionScripts {
		shells = append(shells, name)
	}

	slices.Sort(shells)

	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: fmt.Sprintf(`Generate a completion script for %s.

Besides commands and flags, the scripts complete manifest files, --format
values and, for --whitelist / --blacklist, the section ids of the manifest
given on the command line.

  $ source <(pagefilter completion bash)
  $ pagefilter completion zsh > "${fpath[1]}/_pagefilter"
  $ pagefilter completion fish > ~/.config/fish/completions/pagefilter.fish
  PS> pagefilter completion powershell | Out-String | Invoke-Expression`, strings.Join(shells, ", ")),
		// completion reads no config file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Args:              cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:         shells,
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionScripts[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeManifestArg completes the single <manifest> argument.
func completeManifestArg(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return manifestExts, cobra.ShellCompDirectiveFilterFileExt
}

// registerFormatCompletion offers formats as the values of --format.
func registerFormatCompletion(cmd *cobra.Command, formats ...string) {
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formats, cobra.ShellCompDirectiveNoFileComp))
}

// completeRuleSections offers "app" and the sub-package roots of the manifest
// named by the first argument as rule sections.
func completeRuleSections(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 || strings.Contains(toComplete, "=") {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	doc, err := manifest.Load(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	d, err := manifest.FromDocument(doc)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var out []string

	for _, id := range append([]string{manifest.MainSection}, d.Manifest.Roots()...) {
		if strings.HasPrefix(id, toComplete) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	return out, cobra.ShellCompDirectiveNoFileComp
}
