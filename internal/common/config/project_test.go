package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    ProjectConfig
		wantErr error
	}{
		{
			name:    "all keys",
			content: "app = \"shiny-app\"\nremote = \"production\"\nbranch = \"main\"\ngit_url = \"https://git.heroku.com/shiny-app.git\"\n",
			want: ProjectConfig{
				App:    "shiny-app",
				Remote: "production",
				Branch: "main",
				GitURL: "https://git.heroku.com/shiny-app.git",
			},
		},
		{
			name:    "app only",
			content: "app = \"shiny-app\"\n",
			want:    ProjectConfig{App: "shiny-app"},
		},
		{
			name:    "unknown key",
			content: "app = \"shiny-app\"\nstack = \"heroku-24\"\n",
			wantErr: ErrUnknownProjectKey,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, ProjectFile), []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}

			got, err := LoadProject(dir)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("Expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if *got != tc.want {
				t.Errorf("Expected %+v, got %+v", tc.want, *got)
			}
		})
	}
}

func TestLoadProjectMissingFile(t *testing.T) {
	got, err := LoadProject(t.TempDir())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if *got != (ProjectConfig{}) {
		t.Errorf("Expected empty project config, got %+v", *got)
	}
}

func TestSaveProjectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := &ProjectConfig{App: "shiny-app", Branch: "main"}

	if err := SaveProject(dir, want); err != nil {
		t.Fatalf("SaveProject() error = %v", err)
	}
	got, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if *got != *want {
		t.Errorf("Expected %+v, got %+v", *want, *got)
	}
}

func TestMerge(t *testing.T) {
	user := Default()
	user.Heroku.Email = "dev@example.com"

	t.Run("user config only", func(t *testing.T) {
		s := Merge(user, nil)
		if s.Remote != "heroku" || s.Branch != "master" || s.Email != "dev@example.com" || s.App != "" {
			t.Errorf("Unexpected settings %+v", s)
		}
	})

	t.Run("project overrides user", func(t *testing.T) {
		s := Merge(user, &ProjectConfig{App: "shiny-app", Remote: "production", Branch: "main"})
		if s.App != "shiny-app" || s.Remote != "production" || s.Branch != "main" {
			t.Errorf("Unexpected settings %+v", s)
		}
	})

	t.Run("empty values fall back to defaults", func(t *testing.T) {
		s := Merge(&Config{}, &ProjectConfig{})
		if s.Remote != DefaultRemote || s.Branch != DefaultBranch || s.Backend != DefaultBackend || s.APIURL != DefaultAPIURL {
			t.Errorf("Unexpected settings %+v", s)
		}
	})
}
