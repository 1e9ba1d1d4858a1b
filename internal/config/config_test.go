package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("MINIO_USE_SSL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "campaigns", cfg.MinIO.Bucket)
	assert.False(t, cfg.MinIO.UseSSL)
	assert.Equal(t, int64(5*1024*1024), cfg.Icon.MaxBytes)
}

func TestLoadRejectsDefaultCredentialsInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("MINIO_ACCESS_KEY", "")
	t.Setenv("MINIO_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)

	t.Setenv("DB_PORT", "not-a-port")
	_, err = LoadDatabaseConfig()
	require.Error(t, err)
}
