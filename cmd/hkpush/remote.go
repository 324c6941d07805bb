package main

import (
	"errors"
	"fmt"

	"github.com/obentoo/hkpush/internal/common/output"
	"github.com/spf13/cobra"
)

// ErrRemoteNotFound is returned by "remote find" when no remote matches
var ErrRemoteNotFound = errors.New("no remote points at that URL")

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Inspect and register git remotes",
	Long:  `Commands for listing, finding and adding the git remotes of the repository.`,
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the remotes of the repository",
	Args:  cobra.NoArgs,
	RunE:  runRemoteList,
}

var remoteFindCmd = &cobra.Command{
	Use:   "find <url>",
	Short: "Print the remote whose URL matches",
	Long: `Print the name of the remote whose URL matches the given URL.
Surrounding whitespace and trailing slashes are ignored when comparing.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemoteFind,
}

var remoteAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Register a remote",
	Long: `Register a remote. Adding a name that already points at the same URL
does nothing; a name pointing elsewhere is reported as a conflict.`,
	Args: cobra.ExactArgs(2),
	RunE: runRemoteAdd,
}

func init() {
	remoteCmd.AddCommand(remoteListCmd, remoteFindCmd, remoteAddCmd)
	rootCmd.AddCommand(remoteCmd)
}

func runRemoteList(cmd *cobra.Command, args []string) error {
	remotes, err := sess.registry.ListRemotes(cmd.Context(), sess.repo)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(remotes) == 0 {
		fmt.Fprintln(out, output.Dim.Sprint("No remotes configured."))
		return nil
	}
	for _, r := range remotes {
		fmt.Fprintln(out, output.FormatRemote(r.Name, r.URL))
	}
	return nil
}

func runRemoteFind(cmd *cobra.Command, args []string) error {
	remote, err := sess.registry.FindRemote(cmd.Context(), args[0], sess.repo)
	if err != nil {
		return err
	}
	if remote == nil {
		return fmt.Errorf("%w: %s", ErrRemoteNotFound, args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), remote.Name)
	return nil
}

func runRemoteAdd(cmd *cobra.Command, args []string) error {
	remote, err := sess.registry.AddRemote(cmd.Context(), sess.repo, args[0], args[1])
	if err != nil {
		return err
	}
	output.PrintSuccess("Remote %s", output.FormatRemote(remote.Name, remote.URL))
	return nil
}
