package appconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected Environment
	}{
		{"development", Development},
		{"test", Test},
		{"production", Production},
		{"prod", Production},
		{"PRODUCTION", Production},
		{" test ", Test},
		{"", Development},
		{"garbage", Development},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, EnvFromString(tt.input), "input %q", tt.input)
	}
}

func TestEnvironmentString(t *testing.T) {
	assert.Equal(t, "development", Development.String())
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "production", Production.String())
}

func TestLoadFromFile(t *testing.T) {
	t.Run("loads valid config file", func(t *testing.T) {
		path := writeConfig(t, `{
  "port": 3000,
  "env": "production",
  "api-keys": ["key1", "key2"],
  "verbose": true,
  "rate-limit": 50,
  "cities-path": "/data/cities.txt",
  "stations-path": "/data/stations.csv",
  "gtfs-dir": "/data/gtfs"
}`)

		jsonConfig, err := LoadFromFile(path)
		require.NoError(t, err)

		cfg := jsonConfig.ToAppConfig()
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, Production, cfg.Env)
		assert.Equal(t, []string{"key1", "key2"}, cfg.ApiKeys)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, 50, cfg.RateLimit)
		assert.Equal(t, "/data/cities.txt", cfg.CitiesPath)
		assert.Equal(t, "/data/stations.csv", cfg.StationsPath)
		assert.Equal(t, "/data/gtfs", cfg.GTFSDir)
	})

	t.Run("applies rate limit default", func(t *testing.T) {
		path := writeConfig(t, `{"port": 4000}`)

		jsonConfig, err := LoadFromFile(path)
		require.NoError(t, err)

		cfg := jsonConfig.ToAppConfig()
		assert.Equal(t, 100, cfg.RateLimit)
		assert.Equal(t, Development, cfg.Env)
	})

	t.Run("fails on invalid configuration", func(t *testing.T) {
		path := writeConfig(t, `{"port": 99999}`)

		jsonConfig, err := LoadFromFile(path)
		assert.Error(t, err)
		assert.Nil(t, jsonConfig)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("fails on malformed JSON", func(t *testing.T) {
		path := writeConfig(t, `{"port": `)

		jsonConfig, err := LoadFromFile(path)
		assert.Error(t, err)
		assert.Nil(t, jsonConfig)
		assert.Contains(t, err.Error(), "failed to parse JSON config")
	})

	t.Run("fails on nonexistent file", func(t *testing.T) {
		jsonConfig, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
		assert.Nil(t, jsonConfig)
		assert.Contains(t, err.Error(), "failed to stat config file")
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CHEMINOT_PORT", "8080")
	t.Setenv("CHEMINOT_ENV", "test")
	t.Setenv("CHEMINOT_API_KEYS", "alpha, beta ,")
	t.Setenv("CHEMINOT_VERBOSE", "true")
	t.Setenv("CHEMINOT_RATE_LIMIT", "25")
	t.Setenv("CHEMINOT_CITIES_PATH", "/tmp/cities.txt")

	cfg := FromEnv()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, Test, cfg.Env)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.ApiKeys)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 25, cfg.RateLimit)
	assert.Equal(t, "/tmp/cities.txt", cfg.CitiesPath)
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CHEMINOT_PORT", "")
	t.Setenv("CHEMINOT_ENV", "")
	t.Setenv("CHEMINOT_RATE_LIMIT", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Nil(t, cfg.ApiKeys)
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		err := LoadDotEnv(filepath.Join(t.TempDir(), ".env"))
		assert.NoError(t, err)
	})

	t.Run("loads variables from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("CHEMINOT_DOTENV_PROBE=loaded\n"), 0o644))
		t.Setenv("CHEMINOT_DOTENV_PROBE", "")
		_ = os.Unsetenv("CHEMINOT_DOTENV_PROBE")

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "loaded", os.Getenv("CHEMINOT_DOTENV_PROBE"))
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
