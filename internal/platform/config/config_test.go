package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv aísla los tests del entorno del host (viper ignora env vacías).
func clearEnv(t *testing.T) {
	t.Helper()
	for k := range defaults {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.DBDriver)
	assert.Equal(t, "memory", cfg.AssetsDriver)
	assert.Equal(t, "pet-profiles", cfg.AssetsBucket)
	assert.Equal(t, "http://localhost:8080/assets", cfg.AssetsPublicBaseURL)
	assert.True(t, cfg.PetsRequireImage)
	assert.Equal(t, time.Hour, cfg.SweepGrace)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_DSN", "/tmp/pets.db")
	t.Setenv("PETS_REQUIRE_IMAGE", "false")
	t.Setenv("SWEEP_GRACE", "15m")
	t.Setenv("AUTH_BASE_URL", "https://x.supabase.co")
	t.Setenv("AUTH_API_KEY", "anon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "http://localhost:9090/assets", cfg.AssetsPublicBaseURL)
	assert.False(t, cfg.PetsRequireImage)
	assert.Equal(t, 15*time.Minute, cfg.SweepGrace)
	assert.True(t, cfg.AuthEnabled())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "pet-social.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ASSETS_DRIVER: s3\nS3_ENDPOINT: http://minio:9000\nS3_PATH_STYLE: true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3", cfg.AssetsDriver)
	assert.Equal(t, "http://minio:9000", cfg.S3Endpoint)
	assert.True(t, cfg.S3PathStyle)
	// s3 sin base explícita: la arma el adapter
	assert.Empty(t, cfg.AssetsPublicBaseURL)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("ASSETS_DRIVER", "ftp")
	t.Setenv("AUTH_BASE_URL", "https://x.supabase.co")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN is required")
	assert.Contains(t, err.Error(), `unknown ASSETS_DRIVER "ftp"`)
	assert.Contains(t, err.Error(), "AUTH_API_KEY is required")
}
