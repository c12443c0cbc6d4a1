package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvDatabaseID, "")
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	_, err := Load(path)
	require.Error(t, err)

	var missing *MissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, path, missing.Path)
	assert.Contains(t, missing.Suggestion(), "init")
}

func TestSaveThenLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Config{DatabaseID: "db-1", NotionAPIKey: "secret_abc"}

	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadFileFormat(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "database_id = \"db-42\"\nnotion_api_key = \"secret_xyz\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{DatabaseID: "db-42", NotionAPIKey: "secret_xyz"}, got)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("database_id = "), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to parse"))
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(path, Config{DatabaseID: "file-db", NotionAPIKey: "file-key"}))
	t.Setenv(EnvAPIKey, "env-key")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", got.NotionAPIKey)
	assert.Equal(t, "file-db", got.DatabaseID)

	stored, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", stored.NotionAPIKey)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Config{DatabaseID: "d", NotionAPIKey: "k"}.Validate())
	assert.Error(t, Config{DatabaseID: "d"}.Validate())
	assert.Error(t, Config{NotionAPIKey: "k"}.Validate())
}

func TestCore(t *testing.T) {
	c := Config{DatabaseID: "d", NotionAPIKey: "k"}.Core()
	assert.Equal(t, "k", c.APIKey)
	assert.Equal(t, "d", c.DatabaseID)
}
