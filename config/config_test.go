package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	// A named but missing file is an error; defaults only apply without a path.
	assert.Error(t, err)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "filesolved", cfg.Database.DBName)
	assert.Equal(t, "./uploads", cfg.Storage.UploadDir)
	assert.Equal(t, "./outputs", cfg.Storage.OutputDir)
	assert.Equal(t, int64(100), cfg.Storage.MaxUploadSizeMB)
	assert.Equal(t, "admin", cfg.Admin.Username)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
  mode: release
storage:
  upload_dir: /var/filesolved/uploads
jwt:
  secret: test-secret
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "/var/filesolved/uploads", cfg.Storage.UploadDir)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	// untouched keys keep defaults
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FSV_SERVER_PORT", "7070")
	t.Setenv("FSV_ADMIN_USERNAME", "operator")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "operator", cfg.Admin.Username)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "fs", Password: "pw",
		DBName: "filesolved", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://fs:pw@db:5432/filesolved?sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", r.Addr())
}
