package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())

	id, err := cfg.ChainIDBig()
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `chain_id = "1337"
homestead = false
verbosity = 4
log_format = "json"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{ChainID: "1337", Homestead: false, Verbosity: 4, LogFormat: "json"}, cfg)

	id, err := cfg.ChainIDBig()
	require.NoError(t, err)
	assert.Equal(t, int64(1337), id.Int64())
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "verbosity = 5\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Homestead)
	assert.Equal(t, 5, cfg.Verbosity)
	assert.Equal(t, "terminal", cfg.LogFormat)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrConfigFileNotFound)

	_, err = LoadConfig(writeConfig(t, "verbosity = \"loud\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeConfig(t, "chainid = \"1\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "chainid")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"large chain id", func(c *Config) { c.ChainID = "340282366920938463463374607431768211456" }, true},
		{"zero chain id", func(c *Config) { c.ChainID = "0" }, true},
		{"negative chain id", func(c *Config) { c.ChainID = "-1" }, false},
		{"hex chain id", func(c *Config) { c.ChainID = "0x1" }, false},
		{"verbosity low", func(c *Config) { c.Verbosity = -1 }, false},
		{"verbosity high", func(c *Config) { c.Verbosity = 6 }, false},
		{"logfmt", func(c *Config) { c.LogFormat = "logfmt" }, true},
		{"bad format", func(c *Config) { c.LogFormat = "yaml" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}
