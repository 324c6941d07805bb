package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// Backend selection modes
const (
	BackendAuto       = "auto"
	BackendStructured = "structured"
	BackendCommand    = "command"
)

// ErrInvalidBackend indicates an unknown backend mode
var ErrInvalidBackend = errors.New("invalid git backend: must be 'auto', 'structured' or 'command'")

// CommandBackend drives remotes through the git binary only
type CommandBackend struct {
	GitPath string
}

// NewCommandBackend creates a CommandBackend using gitPath (defaults to "git")
func NewCommandBackend(gitPath string) *CommandBackend {
	if gitPath == "" {
		gitPath = "git"
	}
	return &CommandBackend{GitPath: gitPath}
}

func (b *CommandBackend) Name() string { return BackendCommand }

func (b *CommandBackend) runner(repo Repo) *GitRunner {
	r := NewGitRunner(repo.Dir)
	r.gitPath = b.GitPath
	return r
}

func (b *CommandBackend) QueryRemotes(ctx context.Context, repo Repo) ([]RemoteInfo, error) {
	return b.runner(repo).RemoteList(ctx)
}

func (b *CommandBackend) AddRemote(ctx context.Context, repo Repo, name, url string) error {
	return b.runner(repo).RemoteAdd(ctx, name, url)
}

// Refresh is a no-op: every query runs git again
func (b *CommandBackend) Refresh(Repo) {}

// StructuredBackend uses the go-git repository object model. Opened
// repositories are kept until Refresh.
type StructuredBackend struct {
	mu    sync.Mutex
	repos map[string]*gogit.Repository
}

// NewStructuredBackend creates an empty StructuredBackend
func NewStructuredBackend() *StructuredBackend {
	return &StructuredBackend{repos: map[string]*gogit.Repository{}}
}

func (b *StructuredBackend) Name() string { return BackendStructured }

func (b *StructuredBackend) open(repo Repo) (*gogit.Repository, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r, ok := b.repos[repo.Dir]; ok {
		return r, nil
	}
	if err := checkWorkDir(repo.Dir); err != nil {
		return nil, err
	}
	r, err := gogit.PlainOpenWithOptions(repo.Dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, &RepositoryAccessError{Dir: repo.Dir, Err: err}
	}
	b.repos[repo.Dir] = r
	return r, nil
}

func (b *StructuredBackend) QueryRemotes(ctx context.Context, repo Repo) ([]RemoteInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := b.open(repo)
	if err != nil {
		return nil, err
	}

	// Remotes() sorts by name; walk the raw config to keep file order
	cfg, err := r.Config()
	if err != nil {
		return nil, &RepositoryAccessError{Dir: repo.Dir, Err: err}
	}

	remotes := make([]RemoteInfo, 0, len(cfg.Remotes))
	for _, section := range cfg.Raw.Section("remote").Subsections {
		rc, ok := cfg.Remotes[section.Name]
		if !ok || len(rc.URLs) == 0 {
			continue
		}
		remotes = append(remotes, RemoteInfo{Name: rc.Name, URL: rc.URLs[0]})
	}
	return remotes, nil
}

func (b *StructuredBackend) AddRemote(ctx context.Context, repo Repo, name, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r, err := b.open(repo)
	if err != nil {
		return err
	}
	_, err = r.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	return err
}

func (b *StructuredBackend) Refresh(repo Repo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.repos, repo.Dir)
}

// NewBackend returns the backend for mode. In auto mode the command backend
// is used when a git binary can be found with lookPath, otherwise the
// structured one. lookPath defaults to exec.LookPath.
func NewBackend(mode, gitPath string, lookPath func(string) (string, error)) (RemoteBackend, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if gitPath == "" {
		gitPath = "git"
	}

	switch mode {
	case BackendStructured:
		return NewStructuredBackend(), nil
	case BackendCommand:
		return NewCommandBackend(gitPath), nil
	case BackendAuto, "":
		if _, err := lookPath(gitPath); err == nil {
			return NewCommandBackend(gitPath), nil
		}
		return NewStructuredBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidBackend, mode)
	}
}

var (
	_ RemoteBackend = (*CommandBackend)(nil)
	_ RemoteBackend = (*StructuredBackend)(nil)
)
