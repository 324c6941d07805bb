package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectFile is the per-repository settings file at the working copy root
const ProjectFile = ".hkpush.toml"

// ErrUnknownProjectKey is returned when .hkpush.toml holds keys hkpush does not know
var ErrUnknownProjectKey = errors.New("unknown key in " + ProjectFile)

// ProjectConfig holds deployment settings committed with the repository
type ProjectConfig struct {
	// App is the Heroku application name
	App string `toml:"app,omitempty"`
	// GitURL overrides the git URL derived from App
	GitURL string `toml:"git_url,omitempty"`
	// Remote is the remote name to ensure and push to
	Remote string `toml:"remote,omitempty"`
	// Branch is the branch pushed on deploy
	Branch string `toml:"branch,omitempty"`
}

// LoadProject reads .hkpush.toml from dir. A missing file yields an empty ProjectConfig.
func LoadProject(dir string) (*ProjectConfig, error) {
	path := filepath.Join(dir, ProjectFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ProjectConfig{}, nil
		}
		return nil, err
	}

	var project ProjectConfig
	meta, err := toml.Decode(string(data), &project)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProjectKey, undecoded[0].String())
	}

	return &project, nil
}

// SaveProject writes p to .hkpush.toml in dir
func SaveProject(dir string, p *ProjectConfig) error {
	f, err := os.Create(filepath.Join(dir, ProjectFile))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(p)
}

// Settings is the merged view used by commands: flags > project file > user config
type Settings struct {
	App         string
	GitURL      string
	Remote      string
	Branch      string
	Backend     string
	APIURL      string
	Email       string
	PushTimeout string
}

// Merge combines user config and project config; empty project values fall through
func Merge(c *Config, p *ProjectConfig) Settings {
	s := Settings{
		Remote:      c.Git.Remote,
		Branch:      c.Git.Branch,
		Backend:     c.Git.Backend,
		APIURL:      c.GetAPIURL(),
		Email:       c.Heroku.Email,
		PushTimeout: c.Git.PushTimeout,
	}
	if p != nil {
		s.App = p.App
		s.GitURL = p.GitURL
		if p.Remote != "" {
			s.Remote = p.Remote
		}
		if p.Branch != "" {
			s.Branch = p.Branch
		}
	}
	if s.Remote == "" {
		s.Remote = DefaultRemote
	}
	if s.Branch == "" {
		s.Branch = DefaultBranch
	}
	if s.Backend == "" {
		s.Backend = DefaultBackend
	}
	return s
}
