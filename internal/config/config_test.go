package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, StrategyToken, cfg.AuthStrategy)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, []string{"https://localhost:3000", "https://localhost:3443"}, cfg.CORSOrigins)
	assert.Equal(t, "public/images", cfg.UploadDir)
	assert.Equal(t, "10M", cfg.BodyLimit)
	assert.False(t, cfg.S3.Enabled())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("AUTH_STRATEGY", "session")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ORIGINS", "https://menu.example.com")
	t.Setenv("S3_BUCKET", "images")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StrategySession, cfg.AuthStrategy)
	assert.Equal(t, "memory", cfg.DBDriver)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"https://menu.example.com"}, cfg.CORSOrigins)
	assert.True(t, cfg.S3.Enabled())
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
env: production
server_port: "8443"
auth_strategy: session
jwt_secret: from-file
s3:
  bucket: menu-images
  region: eu-west-1
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8443", cfg.ServerPort)
	assert.Equal(t, StrategySession, cfg.AuthStrategy)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "menu-images", cfg.S3.Bucket)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
}

func TestLoad_RejectsUnknownStrategy(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("AUTH_STRATEGY", "cookie")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
