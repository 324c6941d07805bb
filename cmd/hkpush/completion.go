package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for hkpush.

To load completions:

Bash:
  $ source <(hkpush completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ hkpush completion bash > /etc/bash_completion.d/hkpush
  # macOS:
  $ hkpush completion bash > $(brew --prefix)/etc/bash_completion.d/hkpush

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ hkpush completion zsh > "${fpath[1]}/_hkpush"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ hkpush completion fish | source
  # To load completions for each session, execute once:
  $ hkpush completion fish > ~/.config/fish/completions/hkpush.fish

PowerShell:
  PS> hkpush completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> hkpush completion powershell > hkpush.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	// Completion must not need a repository or config file
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(w, true)
		case "zsh":
			return rootCmd.GenZshCompletion(w)
		case "fish":
			return rootCmd.GenFishCompletion(w, true)
		default:
			return rootCmd.GenPowerShellCompletionWithDesc(w)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
