package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv(DemoEnv, "")
	os.Unsetenv(DemoEnv)

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv(DemoEnv, "")
	os.Unsetenv(DemoEnv)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Output = "json"
	cfg.Raw = true
	cfg.Days = 7
	cfg.Currency = "EUR"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_DemoEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("demo: false\n"), 0o644))

	t.Setenv(DemoEnv, "1")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Demo)

	t.Setenv(DemoEnv, "no")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Demo)
}

func TestLoad_InvalidReportsAllProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: xml\ndays: 0\noauth_port: 70000\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output: xml")
	assert.Contains(t, err.Error(), "days must be positive")
	assert.Contains(t, err.Error(), "oauth_port out of range")
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestDefaultDir(t *testing.T) {
	t.Setenv(DirEnv, "/tmp/yts-test")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/yts-test", dir)

	paths := PathsFor(dir)
	assert.Equal(t, "/tmp/yts-test/client_secrets.json", paths.ClientSecrets)
	assert.Equal(t, "/tmp/yts-test/credentials.json", paths.Credentials)
	assert.Equal(t, "/tmp/yts-test/config.yaml", paths.Config)
}
