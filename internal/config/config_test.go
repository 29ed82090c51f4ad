package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	return path
}

func TestLoadPath_Defaults(t *testing.T) {
	path := writeConfig(t, `
env: "dev"
postgres:
  dsn: "postgres://u:p@localhost:5432/db"
`)

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "redis", cfg.KV.Driver)
	assert.Equal(t, "Cf-Access-Jwt-Assertion", cfg.Auth.Header)
	assert.True(t, cfg.Auth.Enforce)
	assert.Equal(t, int64(10485760), cfg.BlobStorage.MaxSize)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.Email.Enabled)
	assert.Empty(t, cfg.Email.AdminEmail)
}

func TestLoadPath_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
postgres:
  dsn: "postgres://u:p@localhost:5432/db"
kv:
  driver: "redis"
`)
	t.Setenv("KV_DRIVER", "memory")
	t.Setenv("EMAIL_ADMIN_ADDRESS", "couple@example.com")

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.KV.Driver)
	assert.Equal(t, "couple@example.com", cfg.Email.AdminEmail)
}

func TestLoadPath_MissingFile(t *testing.T) {
	_, err := LoadPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestMustLoadPath_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadPath(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
