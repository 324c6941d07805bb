package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/obentoo/hkpush/internal/common/logger"
)

// Registry resolves, lists and creates remotes through a RemoteBackend chosen
// once at construction. A Registry assumes a single caller per repository.
type Registry struct {
	backend RemoteBackend
}

// NewRegistry creates a Registry bound to backend for its whole lifetime
func NewRegistry(backend RemoteBackend) *Registry {
	return &Registry{backend: backend}
}

// Backend returns the backend the registry was built with
func (r *Registry) Backend() RemoteBackend {
	return r.backend
}

// ListRemotes enumerates all remotes of repo
func (r *Registry) ListRemotes(ctx context.Context, repo Repo) ([]RemoteInfo, error) {
	remotes, err := r.backend.QueryRemotes(ctx, repo)
	if err != nil {
		return nil, asAccessError(repo, err)
	}
	return remotes, nil
}

// FindRemote returns the remote whose normalized URL equals url, or nil.
// The repository is always read, so an empty url still reports access errors.
func (r *Registry) FindRemote(ctx context.Context, url string, repo Repo) (*RemoteInfo, error) {
	remotes, err := r.ListRemotes(ctx, repo)
	if err != nil {
		return nil, err
	}
	if url == "" {
		return nil, nil
	}

	want := NormalizeURL(url)
	for _, remote := range remotes {
		if NormalizeURL(remote.URL) == want {
			found := remote
			return &found, nil
		}
	}
	return nil, nil
}

// AddRemote registers name -> url and refreshes the backend before returning.
// Adding a name that already points at the same URL is a no-op; a different
// URL is reported as a conflict and the existing remote is left untouched.
func (r *Registry) AddRemote(ctx context.Context, repo Repo, name, url string) (*RemoteInfo, error) {
	remotes, err := r.ListRemotes(ctx, repo)
	if err != nil {
		return nil, err
	}
	for _, remote := range remotes {
		if remote.Name != name {
			continue
		}
		if NormalizeURL(remote.URL) == NormalizeURL(url) {
			existing := remote
			return &existing, nil
		}
		return nil, &RemoteAddError{
			Name: name,
			URL:  url,
			Err:  fmt.Errorf("%w: %s points at %s", ErrRemoteConflict, name, remote.URL),
		}
	}

	if err := r.backend.AddRemote(ctx, repo, name, url); err != nil {
		logger.Debug("remote add %s %s failed via %s backend: %v", name, url, r.backend.Name(), err)
		return nil, &RemoteAddError{Name: name, URL: url, Err: err}
	}
	r.backend.Refresh(repo)

	logger.Debug("added remote %s -> %s in %s", name, url, repo)
	return &RemoteInfo{Name: name, URL: url}, nil
}

// asAccessError keeps typed errors and context errors as-is and reports
// anything else as an unreadable repository
func asAccessError(repo Repo, err error) error {
	switch err.(type) {
	case *RepositoryAccessError, *ProcessLaunchError:
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &RepositoryAccessError{Dir: repo.Dir, Err: err}
}
