package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/ytbak/internal/shared"
	ytbaktest "github.com/desertthunder/ytbak/internal/testing"
	"golang.org/x/oauth2"
)

func writeClientSecret(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client_secret.json")
	content := `{
  "installed": {
    "client_id": "test-client-id.apps.googleusercontent.com",
    "client_secret": "test-secret",
    "redirect_uris": ["urn:ietf:wg:oauth:2.0:oob", "http://localhost"]
  }
}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write client secret: %v", err)
	}
	return path
}

func seedToken(t *testing.T, store *TokenStore, accessToken string) {
	t.Helper()
	if err := store.Save(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}
}

func TestSessionEnsureValid(t *testing.T) {
	ctx := context.Background()

	t.Run("missing client secret wraps ErrMissingCredentials", func(t *testing.T) {
		session := NewSession(SessionOpts{
			ClientSecretPath: filepath.Join(t.TempDir(), "nope.json"),
			Store:            NewTokenStore(filepath.Join(t.TempDir(), "token.json")),
		})

		_, err := session.EnsureValid(ctx)
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("no stored token requires authorization", func(t *testing.T) {
		session := NewSession(SessionOpts{
			ClientSecretPath: writeClientSecret(t),
			Store:            NewTokenStore(filepath.Join(t.TempDir(), "token.json")),
		})

		_, err := session.EnsureValid(ctx)
		if !errors.Is(err, shared.ErrAuthorizationRequired) {
			t.Errorf("expected ErrAuthorizationRequired, got %v", err)
		}
		if session.State() != AwaitingUserAuthorization {
			t.Errorf("expected AwaitingUserAuthorization, got %s", session.State())
		}
	})

	t.Run("introspection accepts stored token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("access_token"); got != "stored-token" {
				t.Errorf("expected access_token query param, got %q", got)
			}
			fmt.Fprint(w, `{"scope": "https://www.googleapis.com/auth/youtube.readonly", "expires_in": 3599}`)
		}))
		defer server.Close()

		store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
		seedToken(t, store, "stored-token")

		session := NewSession(SessionOpts{
			ClientSecretPath: writeClientSecret(t),
			Store:            store,
			IntrospectURL:    server.URL,
			HTTPClient:       server.Client(),
		})

		token, err := session.EnsureValid(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token.AccessToken != "stored-token" {
			t.Errorf("expected stored token, got %s", token.AccessToken)
		}
		if session.State() != Valid {
			t.Errorf("expected Valid, got %s", session.State())
		}
	})

	t.Run("second call reuses the validated token", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			fmt.Fprint(w, `{"expires_in": 3599}`)
		}))
		defer server.Close()

		store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
		seedToken(t, store, "stored-token")

		session := NewSession(SessionOpts{
			ClientSecretPath: writeClientSecret(t),
			Store:            store,
			IntrospectURL:    server.URL,
			HTTPClient:       server.Client(),
		})

		if _, err := session.EnsureValid(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := session.EnsureValid(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected a single introspection call, got %d", calls)
		}
	})

	t.Run("invalid_token response requires authorization", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": "invalid_token", "error_description": "Invalid Value"}`)
		}))
		defer server.Close()

		store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
		seedToken(t, store, "expired-token")

		session := NewSession(SessionOpts{
			ClientSecretPath: writeClientSecret(t),
			Store:            store,
			IntrospectURL:    server.URL,
			HTTPClient:       server.Client(),
		})

		_, err := session.EnsureValid(ctx)
		if !errors.Is(err, shared.ErrAuthorizationRequired) {
			t.Errorf("expected ErrAuthorizationRequired, got %v", err)
		}
		if session.State() != AwaitingUserAuthorization {
			t.Errorf("expected AwaitingUserAuthorization, got %s", session.State())
		}
	})

	t.Run("non-invalid_token failure wraps ErrRemoteRequest", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error": "internal_failure"}`)
		}))
		defer server.Close()

		store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
		seedToken(t, store, "stored-token")

		session := NewSession(SessionOpts{
			ClientSecretPath: writeClientSecret(t),
			Store:            store,
			IntrospectURL:    server.URL,
			HTTPClient:       server.Client(),
		})

		_, err := session.EnsureValid(ctx)
		if !errors.Is(err, shared.ErrRemoteRequest) {
			t.Errorf("expected ErrRemoteRequest, got %v", err)
		}
		if errors.Is(err, shared.ErrAuthorizationRequired) {
			t.Error("a transient introspection failure must not demand reauthorization")
		}
	})

	t.Run("transport failure abandons validation", func(t *testing.T) {
		store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
		seedToken(t, store, "stored-token")

		session := NewSession(SessionOpts{
			ClientSecretPath: writeClientSecret(t),
			Store:            store,
			HTTPClient: &http.Client{
				Transport: ytbaktest.NewMockRoundTripper(nil, errors.New("connection failed")),
			},
		})

		_, err := session.EnsureValid(ctx)
		if !errors.Is(err, shared.ErrRemoteRequest) {
			t.Errorf("expected ErrRemoteRequest, got %v", err)
		}
		if session.State() != NoClient {
			t.Errorf("expected NoClient, got %s", session.State())
		}
	})

	t.Run("unreadable introspection body wraps ErrRemoteRequest", func(t *testing.T) {
		store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
		seedToken(t, store, "stored-token")

		session := NewSession(SessionOpts{
			ClientSecretPath: writeClientSecret(t),
			Store:            store,
			HTTPClient: &http.Client{
				Transport: ytbaktest.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &ytbaktest.FCloser{},
				}, nil),
			},
		})

		if _, err := session.EnsureValid(ctx); !errors.Is(err, shared.ErrRemoteRequest) {
			t.Errorf("expected ErrRemoteRequest, got %v", err)
		}
	})
}

func TestSessionInvalidate(t *testing.T) {
	ctx := context.Background()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"expires_in": 3599}`)
	}))
	defer server.Close()

	store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
	seedToken(t, store, "stored-token")

	session := NewSession(SessionOpts{
		ClientSecretPath: writeClientSecret(t),
		Store:            store,
		IntrospectURL:    server.URL,
		HTTPClient:       server.Client(),
	})

	if _, err := session.EnsureValid(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	session.Invalidate()
	if session.State() != Invalid {
		t.Errorf("expected Invalid, got %s", session.State())
	}

	if _, err := session.EnsureValid(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected the discarded credential to be re-validated, got %d introspection calls", calls)
	}
}

func TestSessionCompleteAuthorization(t *testing.T) {
	ctx := context.Background()

	t.Run("exchanges code and persists token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}
			if got := r.FormValue("code"); got != "auth-code" {
				t.Errorf("expected code auth-code, got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token": "fresh-token", "refresh_token": "fresh-refresh", "token_type": "Bearer", "expires_in": 3600}`)
		}))
		defer server.Close()

		store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
		session := NewSession(SessionOpts{
			ClientSecretPath: writeClientSecret(t),
			Store:            store,
			Endpoint:         oauth2.Endpoint{AuthURL: server.URL + "/auth", TokenURL: server.URL + "/token"},
			HTTPClient:       server.Client(),
		})

		token, err := session.CompleteAuthorization(ctx, "auth-code")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token.AccessToken != "fresh-token" {
			t.Errorf("expected fresh-token, got %s", token.AccessToken)
		}
		if session.State() != Valid {
			t.Errorf("expected Valid, got %s", session.State())
		}

		persisted, err := store.Load()
		if err != nil {
			t.Fatalf("expected persisted token, got %v", err)
		}
		if persisted.AccessToken != "fresh-token" {
			t.Errorf("expected persisted access token, got %s", persisted.AccessToken)
		}
	})

	t.Run("failed exchange keeps session awaiting authorization", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": "invalid_grant"}`)
		}))
		defer server.Close()

		session := NewSession(SessionOpts{
			ClientSecretPath: writeClientSecret(t),
			Store:            NewTokenStore(filepath.Join(t.TempDir(), "token.json")),
			Endpoint:         oauth2.Endpoint{AuthURL: server.URL + "/auth", TokenURL: server.URL + "/token"},
			HTTPClient:       server.Client(),
		})

		_, err := session.CompleteAuthorization(ctx, "bad-code")
		if !errors.Is(err, shared.ErrAuthorizationExchange) {
			t.Errorf("expected ErrAuthorizationExchange, got %v", err)
		}
		if session.State() != AwaitingUserAuthorization {
			t.Errorf("expected AwaitingUserAuthorization, got %s", session.State())
		}
	})
}

func TestSessionAuthURL(t *testing.T) {
	session := NewSession(SessionOpts{
		ClientSecretPath: writeClientSecret(t),
		Store:            NewTokenStore(filepath.Join(t.TempDir(), "token.json")),
	})

	url, err := session.AuthURL("state-token")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(url, googleAuthURL) {
		t.Errorf("expected Google consent URL, got %s", url)
	}
	if !strings.Contains(url, "access_type=offline") {
		t.Error("expected offline access type")
	}
	if !strings.Contains(url, "youtube.readonly") {
		t.Error("expected youtube.readonly scope")
	}
	if !strings.Contains(url, "state=state-token") {
		t.Error("expected state parameter")
	}
}
