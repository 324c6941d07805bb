package deploy

import (
	"context"
	"time"

	"github.com/obentoo/hkpush/internal/common/git"
	"github.com/obentoo/hkpush/internal/common/logger"
)

// Pusher runs a push against a remote. *git.Executor implements it.
type Pusher interface {
	Push(ctx context.Context, repo git.Repo, remote, branch string) (*git.PushResult, error)
}

// Options control a single deploy
type Options struct {
	Branch  string
	Timeout time.Duration
}

// Result is the outcome of a deploy
type Result struct {
	Remote git.RemoteInfo
	Added  bool
	Push   *git.PushResult
}

// Deploy ensures a remote for target exists and pushes opts.Branch to it.
// A positive Timeout bounds the push; expiry is reported as cancellation.
func Deploy(ctx context.Context, reg *git.Registry, pusher Pusher, repo git.Repo, target *Target, opts Options) (*Result, error) {
	ensured, err := EnsureRemote(ctx, reg, repo, target.Remote, target.URL)
	if err != nil {
		return nil, err
	}

	branch := opts.Branch
	if branch == "" {
		branch = git.HerokuDefaultBranch
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	logger.Debug("pushing %s to %s (%s)", branch, ensured.Remote.Name, ensured.Remote.URL)
	push, err := pusher.Push(ctx, repo, ensured.Remote.Name, branch)
	res := &Result{Remote: ensured.Remote, Added: ensured.Added, Push: push}
	if err != nil {
		return res, err
	}
	logger.Debug("push to %s finished in %s", ensured.Remote.Name, push.Duration)
	return res, nil
}

// PushFunc adapts a function to Pusher
type PushFunc func(ctx context.Context, repo git.Repo, remote, branch string) (*git.PushResult, error)

// Push calls f
func (f PushFunc) Push(ctx context.Context, repo git.Repo, remote, branch string) (*git.PushResult, error) {
	return f(ctx, repo, remote, branch)
}
