package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Credentials.ClientSecretPath != "client_secret.json" {
			t.Errorf("unexpected client secret path: %s", config.Credentials.ClientSecretPath)
		}
		if config.Backup.PageSize != 50 {
			t.Errorf("expected page size 50, got %d", config.Backup.PageSize)
		}
		if config.Backup.TimeoutSeconds != 10 {
			t.Errorf("expected timeout 10s, got %d", config.Backup.TimeoutSeconds)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected port 8080, got %d", config.Server.Port)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("valid file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `
[credentials]
client_secret_path = "secrets/app.json"
token_path = "secrets/token.json"

[backup]
output_root = "out"
page_size = 25

[server]
host = "127.0.0.1"
port = 9090
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Credentials.ClientSecretPath != "secrets/app.json" {
				t.Errorf("unexpected client secret path: %s", config.Credentials.ClientSecretPath)
			}
			if config.Backup.PageSize != 25 {
				t.Errorf("expected page size 25, got %d", config.Backup.PageSize)
			}
			if config.Server.Port != 9090 {
				t.Errorf("expected port 9090, got %d", config.Server.Port)
			}
		})

		t.Run("missing file", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
				t.Error("expected error for missing file")
			}
		})

		t.Run("malformed file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			if err := os.WriteFile(path, []byte("[credentials\n"), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected error for malformed TOML")
			}
		})
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected config file to exist: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file already exists")
		}
	})
}
