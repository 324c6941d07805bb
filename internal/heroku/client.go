// Package heroku is a small read-only client for the Heroku Platform API.
package heroku

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/obentoo/hkpush/internal/common/version"
)

var (
	// ErrUnauthorized indicates the API rejected the token
	ErrUnauthorized = errors.New("heroku API rejected the credentials")
	// ErrAppNotFound indicates the requested app does not exist or is not visible
	ErrAppNotFound = errors.New("heroku app not found")
	// ErrRateLimit indicates the API rate limit was exceeded
	ErrRateLimit = errors.New("heroku API rate limit exceeded")
	// ErrAPIError indicates a general Heroku API error
	ErrAPIError = errors.New("heroku API error")
	// ErrMissingToken indicates credentials without an API token
	ErrMissingToken = errors.New("heroku API token is empty")

	errNotFound = errors.New("not found")
)

// Credentials identify a Heroku account. Validity is decided by the API.
type Credentials struct {
	Email string
	Token string
}

// Account is the subset of GET /account hkpush uses
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// App is the subset of GET /apps/{name} hkpush uses
type App struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	GitURL string `json:"git_url"`
	WebURL string `json:"web_url"`
}

// Client handles communication with the Heroku Platform API
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	Retry      RetryConfig
}

// NewClient creates a new Heroku API client
func NewClient() *Client {
	return &Client{
		BaseURL:   "https://api.heroku.com",
		UserAgent: version.UserAgent(),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Retry: DefaultRetryConfig(),
	}
}

// NewClientWithOptions creates a client for baseURL with a custom timeout
func NewClientWithOptions(baseURL string, timeout time.Duration) *Client {
	client := NewClient()
	if baseURL != "" {
		client.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout > 0 {
		client.HTTPClient.Timeout = timeout
	}
	return client
}

// GitURL returns the conventional git URL of an app
func GitURL(app string) string {
	return "https://git.heroku.com/" + app + ".git"
}

// Account returns the account owning token
func (c *Client) Account(ctx context.Context, token string) (*Account, error) {
	var account Account
	if err := c.get(ctx, token, "/account", &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// CheckCredentials reports whether creds are accepted by the API and belong
// to creds.Email. Transport and server failures are returned as errors.
func (c *Client) CheckCredentials(ctx context.Context, creds Credentials) (bool, error) {
	if creds.Token == "" {
		return false, ErrMissingToken
	}
	account, err := c.Account(ctx, creds.Token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return false, nil
		}
		return false, err
	}
	if creds.Email == "" {
		return true, nil
	}
	return strings.EqualFold(account.Email, creds.Email), nil
}

// App fetches an app by name or ID
func (c *Client) App(ctx context.Context, token, name string) (*App, error) {
	var app App
	if err := c.get(ctx, token, "/apps/"+url.PathEscape(name), &app); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAppNotFound, name)
		}
		return nil, err
	}
	if app.GitURL == "" {
		app.GitURL = GitURL(app.Name)
	}
	return &app, nil
}

// get performs an authenticated GET and decodes the JSON body into out
func (c *Client) get(ctx context.Context, token, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/vnd.heroku+json; version=3")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: remaining %s", ErrRateLimit, resp.Header.Get("RateLimit-Remaining"))
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d: %s", ErrAPIError, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse Heroku response: %w", err)
	}
	return nil
}
