package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/arsigner/internal/config"
)

const vaultID = "2a9d5a1f-4d4f-4fa4-9d0a-5e5c1b1f6a11"

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		datadir := t.TempDir()
		t.Setenv("ARSIGNER_DATADIR", datadir)

		cfg, err := config.Load("")
		require.NoError(t, err)
		require.Equal(t, datadir, cfg.Datadir)
		require.Equal(t, 4, cfg.LogLevel)
		require.Equal(t, "https://arweave.net", cfg.NodeUrl)
		require.Equal(t, "/api/v1/transactions/create-and-wait", cfg.SignerPath)
		require.Zero(t, cfg.SignerTimeout)
		require.Equal(t, 30*time.Second, cfg.NodeTimeout)
		require.False(t, cfg.NoProfiler)
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("ARSIGNER_DATADIR", t.TempDir())
		t.Setenv("ARSIGNER_VAULT_ID", vaultID)
		t.Setenv("ARSIGNER_SIGNER_ACCESS_TOKEN", "token")
		t.Setenv("ARSIGNER_SIGNER_PRIVATE_KEY_PATH", "/tmp/key.pem")
		t.Setenv("ARSIGNER_SIGNER_TIMEOUT_IN_SECONDS", "120")
		t.Setenv("ARSIGNER_NODE_URL", "http://localhost:1984")

		cfg, err := config.Load("")
		require.NoError(t, err)
		require.Equal(t, vaultID, cfg.VaultID)
		require.Equal(t, 2*time.Minute, cfg.SignerTimeout)
		require.Equal(t, "http://localhost:1984", cfg.NodeUrl)
		require.NoError(t, cfg.ValidateSigner())

		redacted := cfg.Redacted()
		require.Equal(t, "********", redacted[config.SignerAccessTokenKey])
		require.Equal(t, vaultID, redacted[config.VaultIDKey])
	})

	t.Run("file", func(t *testing.T) {
		datadir := t.TempDir()
		t.Setenv("ARSIGNER_DATADIR", datadir)
		t.Setenv("ARSIGNER_NOTE", "from env")

		path := filepath.Join(datadir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"vault_id: "+vaultID+"\nnote: from file\nno_profiler: true\n",
		), 0600))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, vaultID, cfg.VaultID)
		require.Equal(t, "from env", cfg.Note)
		require.True(t, cfg.NoProfiler)
	})
}

func TestFailingLoad(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid vault id", "ARSIGNER_VAULT_ID", "vault"},
		{"invalid node url", "ARSIGNER_NODE_URL", "ws://localhost"},
		{"invalid signer url", "ARSIGNER_SIGNER_URL", "localhost"},
		{"invalid signer path", "ARSIGNER_SIGNER_PATH", "api/v1"},
		{"negative timeout", "ARSIGNER_SIGNER_TIMEOUT_IN_SECONDS", "-1"},
		{"invalid log level", "ARSIGNER_LOG_LEVEL", "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ARSIGNER_DATADIR", t.TempDir())
			t.Setenv(tt.key, tt.value)

			cfg, err := config.Load("")
			require.Error(t, err)
			require.Nil(t, cfg)
		})
	}

	t.Run("missing signer settings", func(t *testing.T) {
		t.Setenv("ARSIGNER_DATADIR", t.TempDir())

		cfg, err := config.Load("")
		require.NoError(t, err)
		require.Error(t, cfg.ValidateSigner())
	})

	t.Run("missing config file", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		require.Nil(t, cfg)
	})
}
