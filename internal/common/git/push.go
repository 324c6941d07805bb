package git

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/obentoo/hkpush/internal/common/logger"
)

// PushState tracks a single push invocation
type PushState int

const (
	NotStarted PushState = iota
	Running
	Succeeded
	Rejected
	Failed
)

var pushStateNames = map[PushState]string{
	NotStarted: "not-started",
	Running:    "running",
	Succeeded:  "succeeded",
	Rejected:   "rejected",
	Failed:     "failed",
}

func (s PushState) String() string {
	return pushStateNames[s]
}

// Terminal reports whether no further transition can happen
func (s PushState) Terminal() bool {
	return s == Succeeded || s == Rejected || s == Failed
}

// PushResult is the outcome of one finished push
type PushResult struct {
	Succeeded    bool
	RejectedRefs []string
	ExitCode     int
	State        PushState
	Duration     time.Duration
}

// Executor runs "git push -v <remote> <branch>" and classifies its output.
// Callers must not run two pushes against the same repository concurrently.
type Executor struct {
	// GitPath is the git binary, "git" when empty
	GitPath string
	// RejectPrefix builds the context prefixed to each rejected line
	RejectPrefix func(repo Repo) string
	// OnLine receives every output line once classified
	OnLine func(OutputLine)
	// OnState receives every state transition
	OnState func(PushState)
	// Env is appended to the process environment
	Env []string
}

// NewExecutor creates an Executor with the default reject prefix
func NewExecutor() *Executor {
	return &Executor{GitPath: "git"}
}

// DefaultRejectPrefix labels rejected lines with the repository path
func DefaultRejectPrefix(repo Repo) string {
	return "Rejected push (" + repo.String() + "): "
}

func (e *Executor) setState(state PushState) {
	if e.OnState != nil {
		e.OnState(state)
	}
}

// Push runs the push and blocks until git exits and both output streams are
// drained. The result is nil only for launch errors, repository errors and
// cancellation; otherwise it is returned together with a
// *PushRejectedError, *AuthenticationError or *PushFailedError on failure.
func (e *Executor) Push(ctx context.Context, repo Repo, remote, branch string) (*PushResult, error) {
	e.setState(NotStarted)

	if err := ctx.Err(); err != nil {
		e.setState(Failed)
		return nil, &CancelledError{Err: err}
	}
	if err := checkWorkDir(repo.Dir); err != nil {
		e.setState(Failed)
		return nil, err
	}

	gitPath := e.GitPath
	if gitPath == "" {
		gitPath = "git"
	}
	prefix := DefaultRejectPrefix(repo)
	if e.RejectPrefix != nil {
		prefix = e.RejectPrefix(repo)
	}

	cmd := exec.CommandContext(ctx, gitPath, "push", "-v", remote, branch)
	cmd.Dir = repo.Dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.Env = append(cmd.Env, e.Env...)
	configureProcess(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		e.setState(Failed)
		return nil, &ProcessLaunchError{Path: gitPath, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		e.setState(Failed)
		return nil, &ProcessLaunchError{Path: gitPath, Err: err}
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		e.setState(Failed)
		return nil, &ProcessLaunchError{Path: gitPath, Err: err}
	}
	e.setState(Running)
	logger.Debug("git push -v %s %s started in %s (pid %d)", remote, branch, repo, cmd.Process.Pid)

	var (
		mu          sync.Mutex
		rejected    []string
		stderrLines []string
		authFailed  bool
		wg          sync.WaitGroup
	)
	emit := func(line OutputLine) {
		mu.Lock()
		defer mu.Unlock()
		if line.Stream == Stderr {
			if line.Kind == Rejection {
				rejected = append(rejected, prefix+line.Text)
			} else {
				stderrLines = append(stderrLines, line.Text)
				if isAuthFailure(line.Text) {
					authFailed = true
				}
			}
		}
		if e.OnLine != nil {
			e.OnLine(line)
		}
	}
	drain := func(stream Stream, r io.Reader) {
		defer wg.Done()
		for line := range ScanLines(stream, r) {
			emit(line)
		}
		// keep the pipe empty after a read error
		_, _ = io.Copy(io.Discard, r)
	}

	// Readers must finish before Wait closes the pipes
	wg.Add(2)
	go drain(Stdout, stdout)
	go drain(Stderr, stderr)
	wg.Wait()
	waitErr := cmd.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil && killed(waitErr) {
		e.setState(Failed)
		logger.Debug("git push to %s cancelled: %v", remote, ctxErr)
		return nil, &CancelledError{Err: ctxErr}
	}

	exitCode := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	result := &PushResult{
		Succeeded:    len(rejected) == 0 && exitCode == 0,
		RejectedRefs: rejected,
		ExitCode:     exitCode,
		Duration:     time.Since(start),
	}

	switch {
	case len(rejected) > 0:
		result.State = Rejected
		e.setState(Rejected)
		return result, &PushRejectedError{RejectedRefs: rejected, ExitCode: exitCode}
	case exitCode != 0:
		result.State = Failed
		e.setState(Failed)
		if authFailed {
			return result, &AuthenticationError{Remote: remote, ExitCode: exitCode, Lines: stderrLines}
		}
		return result, &PushFailedError{ExitCode: exitCode, Stderr: stderrLines}
	default:
		result.State = Succeeded
		e.setState(Succeeded)
		logger.Debug("git push to %s/%s finished in %s", remote, branch, result.Duration)
		return result, nil
	}
}

// killed reports whether waitErr shows git was stopped by a signal rather
// than exiting on its own
func killed(waitErr error) bool {
	if waitErr == nil {
		return false
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode() == -1
	}
	return true
}
