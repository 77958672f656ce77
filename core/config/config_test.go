package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ",", cfg.Results.Delimiter)
	assert.Equal(t, "local", cfg.Results.Source)
	assert.Equal(t, "DEFAULT", cfg.Repository.Domain)
	assert.Equal(t, "Root", cfg.Repository.Path)
	assert.Equal(t, 0, cfg.Repository.CacheTTLSeconds)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "test-results", cfg.Storage.Bucket)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RESULTS_PATH", "/var/results")
	t.Setenv("RESULTS_DELIMITER", ";")
	t.Setenv("REPOSITORY_TEST_SET_NAME", "Regression")
	t.Setenv("REPOSITORY_CACHE_TTL_SECONDS", "60")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/var/results", cfg.Results.Path)
	assert.Equal(t, ";", cfg.Results.Delimiter)
	assert.Equal(t, "Regression", cfg.Repository.TestSetName)
	assert.Equal(t, 60, cfg.Repository.CacheTTLSeconds)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REPOSITORY_PROJECT=Web\nREPOSITORY_LOGIN_NAME=ci-bot\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("REPOSITORY_PROJECT")
		os.Unsetenv("REPOSITORY_LOGIN_NAME")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "Web", cfg.Repository.Project)
	assert.Equal(t, "ci-bot", cfg.Repository.LoginName)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Results.Delimiter = ","
		c.Results.Source = "local"
		return c
	}

	tests := []struct {
		name   string
		modify func(c *Config)
		ok     bool
	}{
		{"Valid", func(c *Config) {}, true},
		{"Tab", func(c *Config) { c.Results.Delimiter = `\t` }, true},
		{"StorageSource", func(c *Config) { c.Results.Source = "storage" }, true},
		{"EmptyDelimiter", func(c *Config) { c.Results.Delimiter = "" }, false},
		{"LongDelimiter", func(c *Config) { c.Results.Delimiter = ";;" }, false},
		{"UnknownSource", func(c *Config) { c.Results.Source = "ftp" }, false},
		{"NegativeTTL", func(c *Config) { c.Repository.CacheTTLSeconds = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(c)
			if tt.ok {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}
}
