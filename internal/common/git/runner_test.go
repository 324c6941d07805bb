package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// requireGit skips the test when no git binary is installed
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// runGit runs git in dir and fails the test on error
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	args = append([]string{"-c", "user.name=Test User", "-c", "user.email=test@example.com", "-c", "commit.gpgsign=false"}, args...)
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return string(out)
}

// initRepo creates an empty repository on branch master
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/master")
	return dir
}

func TestParseRemoteOutput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []RemoteInfo
	}{
		{
			name:     "empty output",
			input:    "",
			expected: nil,
		},
		{
			name: "single remote",
			input: "heroku\thttps://git.heroku.com/app.git (fetch)\n" +
				"heroku\thttps://git.heroku.com/app.git (push)\n",
			expected: []RemoteInfo{
				{Name: "heroku", URL: "https://git.heroku.com/app.git"},
			},
		},
		{
			name: "keeps reported order",
			input: "origin\tgit@github.com:x/y.git (fetch)\n" +
				"origin\tgit@github.com:x/y.git (push)\n" +
				"heroku\thttps://git.heroku.com/app.git (fetch)\n" +
				"heroku\thttps://git.heroku.com/app.git (push)\n",
			expected: []RemoteInfo{
				{Name: "origin", URL: "git@github.com:x/y.git"},
				{Name: "heroku", URL: "https://git.heroku.com/app.git"},
			},
		},
		{
			name: "fetch url wins over push url",
			input: "heroku\tgit@heroku.com:app.git (push)\n" +
				"heroku\thttps://git.heroku.com/app.git (fetch)\n",
			expected: []RemoteInfo{
				{Name: "heroku", URL: "https://git.heroku.com/app.git"},
			},
		},
		{
			name:  "skips malformed lines",
			input: "garbage\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseRemoteOutput(tt.input)

			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d remotes, got %d (%v)", len(tt.expected), len(result), result)
			}
			for i, remote := range result {
				if remote != tt.expected[i] {
					t.Errorf("remote %d: expected %+v, got %+v", i, tt.expected[i], remote)
				}
			}
		})
	}
}

func TestNewGitRunner(t *testing.T) {
	workDir := "/tmp/test-repo"
	runner := NewGitRunner(workDir)

	if runner.workDir != workDir {
		t.Errorf("expected workDir %q, got %q", workDir, runner.workDir)
	}
	if runner.gitPath != "git" {
		t.Errorf("expected gitPath git, got %q", runner.gitPath)
	}
}

func TestGitRunnerRemotes(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	dir := initRepo(t)
	runner := NewGitRunner(dir)

	t.Run("new repository has no remotes", func(t *testing.T) {
		remotes, err := runner.RemoteList(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(remotes) != 0 {
			t.Errorf("expected 0 remotes, got %d", len(remotes))
		}
	})

	t.Run("added remote is listed", func(t *testing.T) {
		if err := runner.RemoteAdd(ctx, "heroku", "https://git.heroku.com/app.git"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		remotes, err := runner.RemoteList(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(remotes) != 1 || remotes[0].Name != "heroku" || remotes[0].URL != "https://git.heroku.com/app.git" {
			t.Errorf("unexpected remotes: %v", remotes)
		}
	})

	t.Run("duplicate name fails with git diagnostic", func(t *testing.T) {
		err := runner.RemoteAdd(ctx, "heroku", "https://git.heroku.com/other.git")
		if !errors.Is(err, ErrGitCommand) {
			t.Errorf("expected ErrGitCommand, got %v", err)
		}
	})
}

func TestGitRunnerRepositoryAccess(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	t.Run("missing directory", func(t *testing.T) {
		runner := NewGitRunner(filepath.Join(t.TempDir(), "missing"))
		_, err := runner.RemoteList(ctx)
		var accessErr *RepositoryAccessError
		if !errors.As(err, &accessErr) {
			t.Errorf("expected RepositoryAccessError, got %v", err)
		}
	})

	t.Run("directory outside any repository", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
		runner := NewGitRunner(dir)
		_, err := runner.RemoteList(ctx)
		if !errors.Is(err, ErrRepositoryAccess) {
			t.Errorf("expected ErrRepositoryAccess, got %v", err)
		}
	})

	t.Run("missing git binary", func(t *testing.T) {
		runner := NewGitRunner(t.TempDir())
		runner.gitPath = filepath.Join(t.TempDir(), "no-such-git")
		_, err := runner.RemoteList(ctx)
		if !errors.Is(err, ErrProcessLaunch) {
			t.Errorf("expected ErrProcessLaunch, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		runner := NewGitRunner(os.TempDir())
		_, err := runner.RemoteList(cctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
