package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/ytbak/internal/shared"
	"golang.org/x/oauth2"
)

func TestTokenStore(t *testing.T) {
	t.Run("Load", func(t *testing.T) {
		t.Run("missing file returns nil token and nil error", func(t *testing.T) {
			store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))

			token, err := store.Load()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token != nil {
				t.Errorf("expected nil token, got %+v", token)
			}
		})

		t.Run("corrupt record wraps ErrCredentialLoad", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "token.json")
			if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
				t.Fatalf("failed to seed file: %v", err)
			}

			_, err := NewTokenStore(path).Load()
			if !errors.Is(err, shared.ErrCredentialLoad) {
				t.Errorf("expected ErrCredentialLoad, got %v", err)
			}
		})

		t.Run("record without access token wraps ErrCredentialLoad", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "token.json")
			if err := os.WriteFile(path, []byte(`{"refresh_token":"r"}`), 0600); err != nil {
				t.Fatalf("failed to seed file: %v", err)
			}

			_, err := NewTokenStore(path).Load()
			if !errors.Is(err, shared.ErrCredentialLoad) {
				t.Errorf("expected ErrCredentialLoad, got %v", err)
			}
		})
	})

	t.Run("Save then Load round-trips", func(t *testing.T) {
		store := NewTokenStore(filepath.Join(t.TempDir(), "credentials", "token.json"))
		saved := &oauth2.Token{AccessToken: "ya29.abc", RefreshToken: "1//xyz", TokenType: "Bearer"}

		if err := store.Save(saved); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded.AccessToken != saved.AccessToken {
			t.Errorf("expected access token %s, got %s", saved.AccessToken, loaded.AccessToken)
		}
		if loaded.RefreshToken != saved.RefreshToken {
			t.Errorf("expected refresh token %s, got %s", saved.RefreshToken, loaded.RefreshToken)
		}
	})

	t.Run("Save overwrites the previous record", func(t *testing.T) {
		store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))

		if err := store.Save(&oauth2.Token{AccessToken: "first"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := store.Save(&oauth2.Token{AccessToken: "second"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded.AccessToken != "second" {
			t.Errorf("expected overwritten token, got %s", loaded.AccessToken)
		}
	})
}
