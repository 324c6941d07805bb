package heroku

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRetryDelay(t *testing.T) {
	rc := RetryConfig{MaxRetries: 4, BaseDelay: time.Second, MaxDelay: 4 * time.Second}
	want := []time.Duration{0, time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second}

	for attempt, expected := range want {
		if got := rc.delay(attempt); got != expected {
			t.Errorf("delay(%d) = %v, want %v", attempt, got, expected)
		}
	}
}

func TestRetryRecoversFromServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(Account{Email: "dev@example.com"})
	}))
	defer server.Close()

	client := NewClient()
	client.BaseURL = server.URL
	client.Retry.BaseDelay = time.Millisecond

	account, err := client.Account(context.Background(), "t")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if account.Email != "dev@example.com" || calls.Load() != 2 {
		t.Errorf("Expected success on second attempt, got %+v after %d calls", account, calls.Load())
	}
}

func TestRetryGivesUpOnPersistentServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient()
	client.BaseURL = server.URL
	client.Retry = RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond}

	if _, err := client.Account(context.Background(), "t"); !errors.Is(err, ErrAPIError) {
		t.Errorf("Expected ErrAPIError, got %v", err)
	}
	if calls.Load() != 4 {
		t.Errorf("Expected 4 attempts, got %d", calls.Load())
	}
}

func TestRetryDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient()
	client.BaseURL = server.URL
	client.Retry.BaseDelay = time.Millisecond

	if _, err := client.Account(context.Background(), "t"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected a single attempt, got %d", calls.Load())
	}
}

func TestRetryNetworkErrorExhausted(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient()
	client.BaseURL = url
	client.Retry = RetryConfig{MaxRetries: 1, BaseDelay: time.Millisecond}

	if _, err := client.Account(context.Background(), "t"); !errors.Is(err, ErrMaxRetriesExceeded) {
		t.Errorf("Expected ErrMaxRetriesExceeded, got %v", err)
	}
}

func TestRetryStopsWhenContextDone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient()
	client.BaseURL = server.URL
	client.Retry = RetryConfig{MaxRetries: 5, BaseDelay: time.Hour}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.Account(ctx, "t"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
}
