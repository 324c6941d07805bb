// Package deploy ties the remote registry and the push executor together
// into the Heroku deploy workflow.
package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/obentoo/hkpush/internal/common/config"
	"github.com/obentoo/hkpush/internal/common/git"
	"github.com/obentoo/hkpush/internal/common/logger"
	"github.com/obentoo/hkpush/internal/heroku"
)

var (
	// ErrNoTarget indicates neither an app nor a git URL was given or configured
	ErrNoTarget = errors.New("no Heroku app or git URL: pass --app/--url or set app in " + config.ProjectFile)
)

// AppLookup resolves the git URL of a Heroku app
type AppLookup func(ctx context.Context, app string) (string, error)

// ConventionLookup derives the git URL from the app name without calling the API
func ConventionLookup(_ context.Context, app string) (string, error) {
	return heroku.GitURL(app), nil
}

// TargetOptions are the values given on the command line
type TargetOptions struct {
	App    string
	URL    string
	Remote string
}

// Target is the remote a deploy pushes to
type Target struct {
	App    string
	URL    string
	Remote string
}

// ResolveTarget picks the git URL and remote name. Flags win over the
// project file; an explicit URL wins over an app name. lookup may be nil.
func ResolveTarget(ctx context.Context, s config.Settings, opts TargetOptions, lookup AppLookup) (*Target, error) {
	if lookup == nil {
		lookup = ConventionLookup
	}

	t := &Target{Remote: s.Remote}
	if opts.Remote != "" {
		t.Remote = opts.Remote
	}

	switch {
	case opts.URL != "":
		t.App, t.URL = opts.App, opts.URL
	case opts.App != "":
		t.App = opts.App
	case s.GitURL != "":
		t.App, t.URL = s.App, s.GitURL
	case s.App != "":
		t.App = s.App
	default:
		return nil, ErrNoTarget
	}

	if t.URL == "" {
		url, err := lookup(ctx, t.App)
		if err != nil {
			return nil, fmt.Errorf("resolving git URL of %s: %w", t.App, err)
		}
		t.URL = url
	}
	t.URL = git.NormalizeURL(t.URL)
	return t, nil
}

// EnsureResult describes the remote a deploy will use
type EnsureResult struct {
	Remote git.RemoteInfo
	Added  bool
}

// EnsureRemote returns the remote already pointing at url, whatever its name,
// or registers url under name when no remote matches.
func EnsureRemote(ctx context.Context, reg *git.Registry, repo git.Repo, name, url string) (*EnsureResult, error) {
	existing, err := reg.FindRemote(ctx, url, repo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Debug("remote %s already points at %s", existing.Name, existing.URL)
		return &EnsureResult{Remote: *existing}, nil
	}

	added, err := reg.AddRemote(ctx, repo, name, url)
	if err != nil {
		return nil, err
	}
	logger.Info("Added remote %s -> %s", added.Name, added.URL)
	return &EnsureResult{Remote: *added, Added: true}, nil
}
