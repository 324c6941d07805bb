package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/obentoo/hkpush/internal/common/config"
	"github.com/obentoo/hkpush/internal/common/git"
	"github.com/obentoo/hkpush/internal/common/output"
	"github.com/obentoo/hkpush/internal/common/secrets"
	"github.com/spf13/cobra"
)

var initApp string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize hkpush configuration",
	Long: `Initialize hkpush configuration interactively.
Creates the user config file with the Heroku account and git settings.
With --app, also writes ` + config.ProjectFile + ` in the repository.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initApp, "app", "a", "", "Heroku app to record in "+config.ProjectFile)
	rootCmd.AddCommand(initCmd)
}

// prompt prints question with its default and returns the answer or the default
func prompt(reader *bufio.Reader, w io.Writer, question, def string) string {
	if def != "" {
		fmt.Fprintf(w, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(w, "%s: ", question)
	}
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def
	}
	return answer
}

// promptValid asks until validate accepts the answer, giving up after three tries
func promptValid(reader *bufio.Reader, w io.Writer, question, def string, validate func(string) error) (string, error) {
	var err error
	for range 3 {
		answer := prompt(reader, w, question, def)
		if err = validate(answer); err == nil {
			return answer, nil
		}
		output.PrintWarning("%v", err)
	}
	return "", err
}

func runInit(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	w := cmd.OutOrStdout()

	configPath, err := config.FindConfigPath()
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	output.PrintInfo("hkpush configuration (%s)", configPath)
	fmt.Fprintln(w)

	cfg := sess.cfg
	cfg.Heroku.Email = prompt(reader, w, "Heroku account email", cfg.Heroku.Email)
	cfg.Git.Remote = prompt(reader, w, "Git remote name", cfg.Git.Remote)
	cfg.Git.Branch = prompt(reader, w, "Branch to deploy", cfg.Git.Branch)

	backend, err := promptValid(reader, w, "Remote backend (auto, structured, command)", cfg.Git.Backend, func(v string) error {
		_, err := git.NewBackend(v, "git", lookPath)
		return err
	})
	if err != nil {
		return err
	}
	cfg.Git.Backend = backend

	timeout, err := promptValid(reader, w, "Push timeout", cfg.Git.PushTimeout, func(v string) error {
		_, err := (&config.Config{Git: config.GitConfig{PushTimeout: v}}).GetPushTimeout()
		return err
	})
	if err != nil {
		return err
	}
	cfg.Git.PushTimeout = timeout

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintln(w)
	output.PrintSuccess("Configuration saved to: %s", configPath)

	if initApp != "" {
		project, err := config.LoadProject(sess.repo.Dir)
		if err != nil {
			return err
		}
		project.App = initApp
		if err := config.SaveProject(sess.repo.Dir, project); err != nil {
			return fmt.Errorf("saving %s: %w", config.ProjectFile, err)
		}
		output.PrintSuccess("Recorded app %s in %s", initApp, config.ProjectFile)
	}

	if os.Getenv(secrets.EnvAPIKey) == "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Export %s or store the token in the OS keyring\n", secrets.EnvAPIKey)
		fmt.Fprintf(w, "(service \"hkpush\", account \"heroku:%s\"), then run:\n", cfg.Heroku.Email)
		fmt.Fprintln(w, "  hkpush auth check")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "You can now use:")
	fmt.Fprintln(w, "  hkpush ensure-remote  - Add the Heroku remote if missing")
	fmt.Fprintln(w, "  hkpush deploy         - Push the branch to Heroku")
	return nil
}
