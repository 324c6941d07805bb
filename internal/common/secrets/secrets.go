// Package secrets looks up the Heroku API token. hkpush only reads tokens;
// storing them is left to the heroku CLI or the OS keyring tooling.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	keyring "github.com/zalando/go-keyring"
)

// A single keyring service holds all hkpush secrets.
// Keys within the service are namespaced (e.g., "heroku:<email>").
const serviceName = "hkpush"

// EnvAPIKey is the environment variable checked before the keyring
const EnvAPIKey = "HEROKU_API_KEY"

var ErrTokenNotFound = errors.New("secrets: no heroku api token found (set " + EnvAPIKey + " or store it in the keyring)")

func herokuAccountKey(email string) string {
	return "heroku:" + email
}

// GetHerokuToken returns the API token for email from the environment or the keyring.
func GetHerokuToken(email string) (string, error) {
	if token := strings.TrimSpace(os.Getenv(EnvAPIKey)); token != "" {
		return token, nil
	}
	if email == "" {
		return "", ErrTokenNotFound
	}

	token, err := keyring.Get(serviceName, herokuAccountKey(email))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("secrets: unable to get heroku token: %w", err)
	}
	if token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

