package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "content", cfg.Storage.Bucket)
		assert.True(t, cfg.Storage.UseSSL)
		assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
		assert.Equal(t, "store", cfg.Content.Protocol)
		assert.Equal(t, "prefixed", cfg.Content.KeyMode)
		assert.True(t, cfg.Content.CleanupStaging)
		assert.Equal(t, "propagate", cfg.Content.UploadFailurePolicy)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("Environment", func(t *testing.T) {
		t.Setenv("STORAGE_BUCKET", "alfresco")
		t.Setenv("STORAGE_REGION", "eu-central-1")
		t.Setenv("STORAGE_ENDPOINT", "http://localhost:9000")
		t.Setenv("CONTENT_ROOT_DIRECTORY", "/data")
		t.Setenv("CONTENT_UPLOAD_FAILURE_POLICY", "suppress")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "alfresco", cfg.Storage.Bucket)
		assert.Equal(t, "eu-central-1", cfg.Storage.Region)
		assert.Equal(t, "http://localhost:9000", cfg.Storage.Endpoint)
		assert.Equal(t, "data", cfg.Content.RootDirectory)
		assert.Equal(t, "suppress", cfg.Content.UploadFailurePolicy)
	})

	t.Run("DotEnv", func(t *testing.T) {
		dir := t.TempDir()
		env := "STORAGE_ACCESS_KEY=from-dotenv\nSTORAGE_SECRET_KEY=secret\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
		t.Cleanup(func() {
			os.Unsetenv("STORAGE_ACCESS_KEY")
			os.Unsetenv("STORAGE_SECRET_KEY")
		})

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, "from-dotenv", cfg.Storage.AccessKey)
		assert.Equal(t, "secret", cfg.Storage.SecretKey)
	})
}
