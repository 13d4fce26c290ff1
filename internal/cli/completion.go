package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/logsheet/pkg/i18n"
	"github.com/matzehuels/logsheet/pkg/pipeline"
)

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for logsheet. Completions cover commands,
flags, output formats and label languages.

  bash:        source <(logsheet completion bash)
  zsh:         logsheet completion zsh > "${fpath[1]}/_logsheet"
  fish:        logsheet completion fish > ~/.config/fish/completions/logsheet.fish
  powershell:  logsheet completion powershell | Out-String | Invoke-Expression

Start a new shell afterwards.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(stdout, true)
			case "zsh":
				return root.GenZshCompletion(stdout)
			case "fish":
				return root.GenFishCompletion(stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(stdout)
			}
		},
	}
}

// completeFormats completes a comma-separated --format value one format at
// a time.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	var out []string
	for _, f := range pipeline.Formats {
		if !strings.Contains(prefix, f+",") {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func completeLanguages(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	langs := make([]string, len(i18n.Supported))
	for i, tag := range i18n.Supported {
		langs[i] = tag.String()
	}
	return langs, cobra.ShellCompDirectiveNoFileComp
}
