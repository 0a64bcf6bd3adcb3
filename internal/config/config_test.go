package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProd())
	assert.Equal(t, "./backups", cfg.Backup.Dir)
	assert.Equal(t, 30, cfg.Backup.KeepCount)
}

func TestLoadParsesYAMLAndKeepsDefaultsForGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9000
env: production
database:
  host: db.internal
  name: wellspring_prod
backup:
  keep_count: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, defaultDBPort, cfg.Database.Port)
	assert.Equal(t, 5, cfg.Backup.KeepCount)
	assert.Equal(t, 12*60, cfg.Backup.IntervalMinutes)
}

func TestDSN(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t,
		"root:password@tcp(127.0.0.1:3306)/wellspring?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DSN())

	cfg.Database.DSN = "user:pw@tcp(10.0.0.1:3306)/other"
	assert.Equal(t, "user:pw@tcp(10.0.0.1:3306)/other", cfg.DSN())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
