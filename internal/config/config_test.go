package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	path := writeConfig(t, `
app:
  env: development
server:
  port: 3000
database:
  host: localhost
  port: 5432
  user: bakery
  password: bakery
  database: bakery
rabbitmq:
  host: localhost
  port: 5672
  user: guest
  password: guest
auth:
  token_ttl_hours: 12
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "guest", cfg.RabbitMQ.User)
	assert.Equal(t, 12, cfg.Auth.TokenTTLHours)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "supersecret")
	t.Setenv("PORT", "8080")

	path := writeConfig(t, `
server:
  port: 3000
database:
  host: localhost
  password: bakery
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "supersecret", cfg.Database.Password)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadDefaultsTokenTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(writeConfig(t, `server:
  port: 3000
`))
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load(writeConfig(t, `server:
  port: 3000
`))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		_, err := Load(writeConfig(t, "server: [broken"))
		assert.Error(t, err)
	})
}
