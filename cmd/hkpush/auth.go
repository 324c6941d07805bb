package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/obentoo/hkpush/internal/common/logger"
	"github.com/obentoo/hkpush/internal/common/output"
	"github.com/obentoo/hkpush/internal/common/secrets"
	"github.com/obentoo/hkpush/internal/deploy"
	"github.com/obentoo/hkpush/internal/heroku"
	"github.com/spf13/cobra"
)

// ErrInvalidCredentials is returned when the API rejects the token or it belongs to another account
var ErrInvalidCredentials = errors.New("heroku credentials are not valid")

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect Heroku API credentials",
}

var authCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configured email and token against the Heroku API",
	Long: `Validate the configured email and API token against the Heroku API.
The token is read from HEROKU_API_KEY, then from the OS keyring entry
"heroku:<email>" of the hkpush service.`,
	Args: cobra.NoArgs,
	RunE: runAuthCheck,
}

func init() {
	authCmd.AddCommand(authCheckCmd)
	rootCmd.AddCommand(authCmd)
}

// newHerokuClient returns an API client for the configured endpoint
func newHerokuClient() *heroku.Client {
	return heroku.NewClientWithOptions(sess.settings.APIURL, 0)
}

// appLookup resolves app git URLs through the API when a token is available
// and falls back to the git.heroku.com convention otherwise
func appLookup() deploy.AppLookup {
	token, err := secrets.GetHerokuToken(sess.settings.Email)
	if err != nil {
		logger.Debug("no API token, deriving git URLs from app names: %v", err)
		return deploy.ConventionLookup
	}
	client := newHerokuClient()
	return func(ctx context.Context, name string) (string, error) {
		app, err := client.App(ctx, token, name)
		switch {
		case err == nil:
			return app.GitURL, nil
		case errors.Is(err, heroku.ErrAppNotFound), errors.Is(err, context.Canceled):
			return "", err
		default:
			logger.Warn("app lookup failed, using default git URL: %v", err)
			return heroku.GitURL(name), nil
		}
	}
}

func runAuthCheck(cmd *cobra.Command, args []string) error {
	email, err := sess.cfg.GetEmail()
	if err != nil {
		return err
	}
	token, err := secrets.GetHerokuToken(email)
	if err != nil {
		return err
	}

	creds := heroku.Credentials{Email: email, Token: token}
	ok, err := newHerokuClient().CheckCredentials(cmd.Context(), creds)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w for %s", ErrInvalidCredentials, email)
	}
	output.PrintSuccess("Heroku credentials valid for %s", email)
	return nil
}
