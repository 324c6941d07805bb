package git

import (
	"context"
	"errors"
	"sync"
)

// MockBackend implements RemoteBackend for testing.
// Each method can be configured with a custom function to control behavior;
// without one it keeps remotes in memory and rejects duplicate names.
type MockBackend struct {
	QueryRemotesFunc func(ctx context.Context, repo Repo) ([]RemoteInfo, error)
	AddRemoteFunc    func(ctx context.Context, repo Repo, name, url string) error
	RefreshFunc      func(repo Repo)

	mu           sync.Mutex
	remotes      map[string][]RemoteInfo
	RefreshCalls int
}

// NewMockBackend creates a MockBackend seeded with remotes for every repo
func NewMockBackend(remotes ...RemoteInfo) *MockBackend {
	return &MockBackend{
		remotes: map[string][]RemoteInfo{"": append([]RemoteInfo(nil), remotes...)},
	}
}

func (m *MockBackend) Name() string { return "mock" }

// QueryRemotes returns the configured function result or the in-memory remotes
func (m *MockBackend) QueryRemotes(ctx context.Context, repo Repo) ([]RemoteInfo, error) {
	if m.QueryRemotesFunc != nil {
		return m.QueryRemotesFunc(ctx, repo)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RemoteInfo(nil), m.list(repo)...), nil
}

// AddRemote calls the configured function or appends to the in-memory remotes
func (m *MockBackend) AddRemote(ctx context.Context, repo Repo, name, url string) error {
	if m.AddRemoteFunc != nil {
		return m.AddRemoteFunc(ctx, repo, name, url)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.list(repo) {
		if r.Name == name {
			return errors.New("error: remote " + name + " already exists.")
		}
	}
	if m.remotes == nil {
		m.remotes = map[string][]RemoteInfo{}
	}
	m.remotes[repo.Dir] = append(m.list(repo), RemoteInfo{Name: name, URL: url})
	return nil
}

// Refresh counts calls and forwards to RefreshFunc
func (m *MockBackend) Refresh(repo Repo) {
	m.mu.Lock()
	m.RefreshCalls++
	m.mu.Unlock()
	if m.RefreshFunc != nil {
		m.RefreshFunc(repo)
	}
}

// list returns the remotes of repo, falling back to the shared seed
func (m *MockBackend) list(repo Repo) []RemoteInfo {
	if r, ok := m.remotes[repo.Dir]; ok {
		return r
	}
	return append([]RemoteInfo(nil), m.remotes[""]...)
}

// Ensure MockBackend implements RemoteBackend interface
var _ RemoteBackend = (*MockBackend)(nil)
