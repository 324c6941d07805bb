package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/obentoo/hkpush/internal/common/config"
	"github.com/obentoo/hkpush/internal/common/git"
	"github.com/obentoo/hkpush/internal/common/logger"
	"github.com/obentoo/hkpush/internal/common/output"
	"github.com/obentoo/hkpush/internal/deploy"
	"github.com/spf13/cobra"
)

var (
	deployApp     string
	deployURL     string
	deployRemote  string
	deployBranch  string
	deployTimeout time.Duration
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Push a branch to Heroku",
	Long: `Ensure the Heroku remote exists and push the branch to it.

Git output is streamed as it arrives. Rejected refs are reported one per line
and the command exits with status 2; other push failures exit with status 1.`,
	Args: cobra.NoArgs,
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().StringVarP(&deployApp, "app", "a", "", "Heroku app name")
	deployCmd.Flags().StringVar(&deployURL, "url", "", "Git URL of the app")
	deployCmd.Flags().StringVarP(&deployRemote, "remote", "r", "", "Remote name (default from config)")
	deployCmd.Flags().StringVarP(&deployBranch, "branch", "b", "", "Branch to push (default from config)")
	deployCmd.Flags().DurationVar(&deployTimeout, "timeout", 0, "Abort the push after this long; 0 disables the limit (default from config)")
	rootCmd.AddCommand(deployCmd)
}

// newExecutor builds the push executor wired to terminal output.
// Rejection lines are not streamed; reportPushError prints them once.
func newExecutor() *git.Executor {
	executor := git.NewExecutor()
	executor.RejectPrefix = git.DefaultRejectPrefix
	executor.OnLine = func(line git.OutputLine) {
		if quiet || line.Kind == git.Rejection {
			return
		}
		w := os.Stdout
		if line.Stream == git.Stderr {
			w = os.Stderr
		}
		output.StreamLine(w, line.Text)
	}
	executor.OnState = func(state git.PushState) {
		logger.Debug("push state: %s", state)
		if quiet || state == git.NotStarted {
			return
		}
		output.PrintState(os.Stderr, state.String(), "git push")
	}
	return executor
}

// resolveTimeout picks the push timeout. An explicit --timeout wins, with
// zero or less meaning no limit; otherwise the configured value applies.
func resolveTimeout(changed bool, flag time.Duration, cfg *config.Config) (time.Duration, error) {
	if changed {
		if flag <= 0 {
			return 0, nil
		}
		return flag, nil
	}
	return cfg.GetPushTimeout()
}

func runDeploy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	target, err := deploy.ResolveTarget(ctx, sess.settings, deploy.TargetOptions{
		App:    deployApp,
		URL:    deployURL,
		Remote: deployRemote,
	}, appLookup())
	if err != nil {
		return err
	}

	branch := deployBranch
	if branch == "" {
		branch = sess.settings.Branch
	}
	timeout, err := resolveTimeout(cmd.Flags().Changed("timeout"), deployTimeout, sess.cfg)
	if err != nil {
		return err
	}

	output.PrintInfo("Deploying %s to %s", branch, target.URL)
	res, err := deploy.Deploy(ctx, sess.registry, newExecutor(), sess.repo, target, deploy.Options{
		Branch:  branch,
		Timeout: timeout,
	})
	if res != nil && res.Added {
		output.PrintSuccess("Added Heroku remote %s", output.FormatRemote(res.Remote.Name, res.Remote.URL))
	}
	if err != nil {
		return reportPushError(err)
	}

	output.PrintSuccess("Pushed %s to %s in %s", branch, res.Remote.Name, res.Push.Duration.Round(time.Millisecond))
	return nil
}

// reportPushError prints the details of a typed push error and returns it
// for the exit status
func reportPushError(err error) error {
	var rejected *git.PushRejectedError
	var auth *git.AuthenticationError

	switch {
	case errors.As(err, &rejected):
		for _, ref := range rejected.RejectedRefs {
			fmt.Fprintln(os.Stderr, output.FormatRejected(ref))
		}
	case errors.As(err, &auth):
		output.PrintWarning("Check the token with 'hkpush auth check'")
	}
	return err
}
