package git

import (
	"context"
	"path/filepath"
	"strings"
)

const (
	// HerokuRemote is the remote name used for deployments
	HerokuRemote = "heroku"
	// HerokuDefaultBranch is the branch pushed when none is given
	HerokuDefaultBranch = "master"
)

// Repo identifies a local working copy.
type Repo struct {
	Dir string
}

// NewRepo returns a Repo for dir, made absolute when possible
func NewRepo(dir string) Repo {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return Repo{Dir: dir}
}

// String returns the presentable path of the repository
func (r Repo) String() string {
	return r.Dir
}

// RemoteInfo is a snapshot of one configured remote.
type RemoteInfo struct {
	Name string
	URL  string
}

// RemoteBackend is the capability a Registry needs from the underlying git
// tooling. Implementations must not cache remotes in a way that survives
// Refresh.
type RemoteBackend interface {
	// Name returns a short identifier ("structured" or "command")
	Name() string

	// QueryRemotes lists the remotes of repo in the order the tool reports them
	QueryRemotes(ctx context.Context, repo Repo) ([]RemoteInfo, error)

	// AddRemote registers a new remote
	AddRemote(ctx context.Context, repo Repo, name, url string) error

	// Refresh drops any state the backend holds for repo
	Refresh(repo Repo)
}

// NormalizeURL trims whitespace and trailing slashes from a remote URL
func NormalizeURL(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), "/")
}
