package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRepositoryAccess = errors.New("repository is not accessible")
	ErrRemoteAdd        = errors.New("could not add remote")
	ErrRemoteConflict   = errors.New("remote already exists with a different URL")
	ErrProcessLaunch    = errors.New("could not launch git")
	ErrAuthentication   = errors.New("authentication failed")
	ErrPushRejected     = errors.New("push rejected")
	ErrPushFailed       = errors.New("push failed")
	ErrCancelled        = errors.New("push cancelled")
	ErrGitCommand       = errors.New("git command failed")
)

// RepositoryAccessError reports a local repository that cannot be read.
type RepositoryAccessError struct {
	Dir string
	Err error
}

func (e *RepositoryAccessError) Error() string {
	return fmt.Sprintf("cannot access repository %s: %v", e.Dir, e.Err)
}

func (e *RepositoryAccessError) Unwrap() error { return e.Err }

func (e *RepositoryAccessError) Is(target error) bool { return target == ErrRepositoryAccess }

// RemoteAddError wraps the diagnostic of a failed "remote add".
type RemoteAddError struct {
	Name string
	URL  string
	Err  error
}

func (e *RemoteAddError) Error() string {
	return fmt.Sprintf("couldn't add remote %s (%s): %v", e.Name, e.URL, e.Err)
}

func (e *RemoteAddError) Unwrap() error { return e.Err }

func (e *RemoteAddError) Is(target error) bool { return target == ErrRemoteAdd }

// ProcessLaunchError means the git binary could not be started at all.
type ProcessLaunchError struct {
	Path string
	Err  error
}

func (e *ProcessLaunchError) Error() string {
	return fmt.Sprintf("could not launch %s: %v", e.Path, e.Err)
}

func (e *ProcessLaunchError) Unwrap() error { return e.Err }

func (e *ProcessLaunchError) Is(target error) bool { return target == ErrProcessLaunch }

// AuthenticationError is returned when git reports that the remote refused
// the credentials.
type AuthenticationError struct {
	Remote   string
	ExitCode int
	Lines    []string
}

func (e *AuthenticationError) Error() string {
	msg := fmt.Sprintf("authentication failed for remote %s (exit code %d)", e.Remote, e.ExitCode)
	if len(e.Lines) > 0 {
		msg += ": " + strings.Join(e.Lines, "; ")
	}
	return msg
}

func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }

// PushRejectedError carries the rejected ref lines of a push, each already
// prefixed with the repository context.
type PushRejectedError struct {
	RejectedRefs []string
	ExitCode     int
}

func (e *PushRejectedError) Error() string {
	return "push rejected:\n  " + strings.Join(e.RejectedRefs, "\n  ")
}

func (e *PushRejectedError) Is(target error) bool { return target == ErrPushRejected }

// PushFailedError is a non-zero exit without any rejection marker.
type PushFailedError struct {
	ExitCode int
	Stderr   []string
}

func (e *PushFailedError) Error() string {
	msg := fmt.Sprintf("git push exited with code %d", e.ExitCode)
	if len(e.Stderr) > 0 {
		msg += ":\n  " + strings.Join(e.Stderr, "\n  ")
	}
	return msg
}

func (e *PushFailedError) Is(target error) bool { return target == ErrPushFailed }

// CancelledError reports a push stopped by the caller's context.
type CancelledError struct {
	Err error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("push cancelled: %v", e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }

func (e *CancelledError) Is(target error) bool { return target == ErrCancelled }
