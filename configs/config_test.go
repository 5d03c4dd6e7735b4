package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET_KEY", "test-secret")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "gallery-images", cfg.R2.Buckets.Images)
	assert.Equal(t, "gallery-videos", cfg.R2.Buckets.Videos)
	assert.Equal(t, "gallery-albums", cfg.R2.Buckets.Albums)
	assert.Equal(t, 1, cfg.Upload.BulkConcurrency)
	assert.Equal(t, 30*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15*time.Minute, cfg.LoginWindow)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_SECRET_KEY", "test-secret")
	t.Setenv("R2_ACCOUNT_ID", "acct")
	t.Setenv("R2_BUCKETS_IMAGES", "photos")
	t.Setenv("UPLOAD_BULK_CONCURRENCY", "0")
	t.Setenv("REMOTE_TIMEOUT_SECONDS", "5")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "acct", cfg.R2.AccountID)
	assert.Equal(t, "photos", cfg.R2.Buckets.Images)
	assert.Equal(t, 1, cfg.Upload.BulkConcurrency)
	assert.Equal(t, 5*time.Second, cfg.RemoteTimeout)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigRequiresSecretInProduction(t *testing.T) {
	t.Setenv("AUTH_SECRET_KEY", "")
	t.Setenv("APP_ENV", "production")

	_, err := LoadConfig("")
	assert.Error(t, err)

	t.Setenv("APP_ENV", "development")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Auth.SecretKey)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("AUTH_SECRET_KEY", "test-secret")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("upload:\n  video_max_mb: 200\ncontact:\n  whatsapp_number: \"910000000000\"\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Upload.VideoMaxMB)
	assert.Equal(t, 5, cfg.Upload.ImageMaxMB)
	assert.Equal(t, "910000000000", cfg.Contact.WhatsAppNumber)
}
