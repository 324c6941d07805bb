package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/obentoo/hkpush/internal/common/config"
	"github.com/obentoo/hkpush/internal/common/git"
	"github.com/obentoo/hkpush/internal/common/logger"
	"github.com/obentoo/hkpush/internal/common/output"
	"github.com/spf13/cobra"
)

const (
	exitFailure   = 1
	exitRejected  = 2
	exitCancelled = 130
)

var (
	verbose     bool
	quiet       bool
	noColor     bool
	logFile     bool
	repoDir     string
	backendFlag string
)

// session is built once per invocation before any subcommand runs
type session struct {
	cfg      *config.Config
	settings config.Settings
	repo     git.Repo
	registry *git.Registry
}

var sess *session

// lookPath is replaced in tests to force backend selection
var lookPath = exec.LookPath

var rootCmd = &cobra.Command{
	Use:   "hkpush",
	Short: "Push git repositories to Heroku",
	Long: `hkpush manages the Heroku git remote of a repository and pushes branches to it,
reporting rejected refs line by line.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&logFile, "log-file", false, "Append log output to the hkpush log file")
	rootCmd.PersistentFlags().StringVarP(&repoDir, "repo", "C", ".", "Repository working directory")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Remote backend: auto, structured or command")
}

// setup configures logging and output, loads configuration and selects the
// remote backend. The backend is chosen once and shared by every command.
func setup(cmd *cobra.Command, args []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if quiet {
		logger.SetQuiet(true)
	}
	if noColor {
		output.NoColor()
	}
	if logFile {
		if err := logger.EnableFileLogging(); err != nil {
			logger.Warn("file logging disabled: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	repo := git.NewRepo(repoDir)
	project, err := config.LoadProject(repo.Dir)
	if err != nil {
		return err
	}
	settings := config.Merge(cfg, project)
	if backendFlag != "" {
		settings.Backend = backendFlag
	}

	backend, err := git.NewBackend(settings.Backend, "git", lookPath)
	if err != nil {
		return err
	}
	sess = &session{
		cfg:      cfg,
		settings: settings,
		repo:     repo,
		registry: git.NewRegistry(backend),
	}
	logger.Debug("using %s remote backend for %s", sess.registry.Backend().Name(), repo)
	return nil
}

// exitCode maps command errors to process exit codes
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, git.ErrCancelled), errors.Is(err, context.Canceled):
		return exitCancelled
	case errors.Is(err, git.ErrPushRejected):
		return exitRejected
	default:
		return exitFailure
	}
}

// errorSummary is the final message for a failed command. Rejected refs
// are already listed by the deploy command, so only their count is repeated.
func errorSummary(err error) string {
	var rejected *git.PushRejectedError
	if errors.As(err, &rejected) {
		return fmt.Sprintf("push rejected: %d ref(s) refused", len(rejected.RejectedRefs))
	}
	return err.Error()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		output.PrintError("%s", errorSummary(err))
		os.Exit(exitCode(err))
	}
}
