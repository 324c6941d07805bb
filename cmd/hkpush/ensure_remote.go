package main

import (
	"github.com/obentoo/hkpush/internal/common/output"
	"github.com/obentoo/hkpush/internal/deploy"
	"github.com/spf13/cobra"
)

var (
	ensureApp  string
	ensureURL  string
	ensureName string
)

var ensureRemoteCmd = &cobra.Command{
	Use:   "ensure-remote",
	Short: "Make sure a remote points at the Heroku app",
	Long: `Find the remote pointing at the app's git URL and add one when none does.
The URL comes from --url, from --app, or from .hkpush.toml.`,
	Args: cobra.NoArgs,
	RunE: runEnsureRemote,
}

func init() {
	ensureRemoteCmd.Flags().StringVarP(&ensureApp, "app", "a", "", "Heroku app name")
	ensureRemoteCmd.Flags().StringVar(&ensureURL, "url", "", "Git URL of the app")
	ensureRemoteCmd.Flags().StringVar(&ensureName, "name", "", "Remote name used when adding (default from config)")
	rootCmd.AddCommand(ensureRemoteCmd)
}

func runEnsureRemote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	target, err := deploy.ResolveTarget(ctx, sess.settings, deploy.TargetOptions{
		App:    ensureApp,
		URL:    ensureURL,
		Remote: ensureName,
	}, appLookup())
	if err != nil {
		return err
	}

	res, err := deploy.EnsureRemote(ctx, sess.registry, sess.repo, target.Remote, target.URL)
	if err != nil {
		return err
	}

	if res.Added {
		output.PrintSuccess("Added Heroku remote %s", output.FormatRemote(res.Remote.Name, res.Remote.URL))
	} else {
		output.PrintInfo("Using remote %s", output.FormatRemote(res.Remote.Name, res.Remote.URL))
	}
	return nil
}
