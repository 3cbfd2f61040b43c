package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Device arguments of
// the routing commands complete from the catalog.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for qroute. Device names complete from the
catalog, including devices from --device-file and the config file.

  bash:        source <(qroute completion bash)
  zsh:         qroute completion zsh > "${fpath[1]}/_qroute"
  fish:        qroute completion fish > ~/.config/fish/completions/qroute.fish
  powershell:  qroute completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
}

// completeDevice completes the first positional argument with catalog names.
func (c *CLI) completeDevice(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if err := c.setup(cmd); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var names []string
	for _, name := range c.catalog.Names() {
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
