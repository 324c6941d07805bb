package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// GitRunner executes git commands in a specific working directory
type GitRunner struct {
	workDir string
	gitPath string
}

// NewGitRunner creates a GitRunner for the specified working directory
func NewGitRunner(workDir string) *GitRunner {
	return &GitRunner{
		workDir: workDir,
		gitPath: "git",
	}
}

// checkWorkDir fails with RepositoryAccessError when the working directory is missing
func checkWorkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return &RepositoryAccessError{Dir: dir, Err: err}
	}
	if !info.IsDir() {
		return &RepositoryAccessError{Dir: dir, Err: errors.New("not a directory")}
	}
	return nil
}

// runCommand executes a git command and returns stdout, stderr, and any error
func (g *GitRunner) runCommand(ctx context.Context, args ...string) (stdout, stderr string, err error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if err := checkWorkDir(g.workDir); err != nil {
		return "", "", err
	}

	cmd := exec.CommandContext(ctx, g.gitPath, args...)
	cmd.Dir = g.workDir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdout, stderr, ctxErr
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return stdout, stderr, &ProcessLaunchError{Path: g.gitPath, Err: err}
		}
		if strings.Contains(stderr, "not a git repository") {
			return stdout, stderr, &RepositoryAccessError{Dir: g.workDir, Err: errors.New(strings.TrimSpace(stderr))}
		}
		// Wrap the error with stderr for context
		if stderr != "" {
			err = errors.Join(ErrGitCommand, errors.New(strings.TrimSpace(stderr)))
		} else {
			err = errors.Join(ErrGitCommand, err)
		}
	}

	return stdout, stderr, err
}

// RemoteList returns the configured remotes in the order git reports them
func (g *GitRunner) RemoteList(ctx context.Context) ([]RemoteInfo, error) {
	stdout, _, err := g.runCommand(ctx, "remote", "-v")
	if err != nil {
		return nil, err
	}
	return ParseRemoteOutput(stdout), nil
}

// RemoteAdd runs "git remote add <name> <url>"
func (g *GitRunner) RemoteAdd(ctx context.Context, name, url string) error {
	_, _, err := g.runCommand(ctx, "remote", "add", name, url)
	return err
}

// ParseRemoteOutput parses "git remote -v" output into RemoteInfo entries.
// The fetch URL wins over the push URL; order follows first appearance.
func ParseRemoteOutput(output string) []RemoteInfo {
	var remotes []RemoteInfo
	index := map[string]int{}

	for _, line := range strings.Split(output, "\n") {
		// Format: heroku	https://git.heroku.com/app.git (fetch)
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		name, url := parts[0], parts[1]
		kind := ""
		if len(parts) > 2 {
			kind = strings.Trim(parts[2], "()")
		}

		i, seen := index[name]
		if !seen {
			index[name] = len(remotes)
			remotes = append(remotes, RemoteInfo{Name: name, URL: url})
			continue
		}
		if kind == "fetch" {
			remotes[i].URL = url
		}
	}

	return remotes
}
