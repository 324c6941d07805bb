package secrets

import (
	"errors"
	"testing"

	keyring "github.com/zalando/go-keyring"
)

func TestGetHerokuTokenFromEnv(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvAPIKey, "  env-token \n")

	token, err := GetHerokuToken("dev@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "env-token" {
		t.Errorf("expected env-token, got %q", token)
	}
}

func TestGetHerokuTokenFromKeyring(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvAPIKey, "")

	if err := keyring.Set(serviceName, herokuAccountKey("dev@example.com"), "keyring-token"); err != nil {
		t.Fatalf("seeding keyring: %v", err)
	}

	token, err := GetHerokuToken("dev@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "keyring-token" {
		t.Errorf("expected keyring-token, got %q", token)
	}
}

func TestGetHerokuTokenMissing(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvAPIKey, "")

	tests := []struct {
		name  string
		email string
	}{
		{"no email", ""},
		{"unknown account", "nobody@example.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GetHerokuToken(tc.email)
			if !errors.Is(err, ErrTokenNotFound) {
				t.Errorf("expected ErrTokenNotFound, got %v", err)
			}
		})
	}
}

func TestGetHerokuTokenKeyringError(t *testing.T) {
	boom := errors.New("dbus unavailable")
	keyring.MockInitWithError(boom)
	t.Setenv(EnvAPIKey, "")

	_, err := GetHerokuToken("dev@example.com")
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped keyring error, got %v", err)
	}
}
