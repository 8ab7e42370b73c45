package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisok6893-rgb/property-compare/internal/listing"
)

// chdirTemp moves into an empty directory so no config file is found.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "all", cfg.Filter)
	assert.Equal(t, string(listing.SortHighestScore), cfg.Sort)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Zero(t, cfg.Limit)
	assert.Empty(t, cfg.ConfigFile)
	assert.Error(t, cfg.RequireSource())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := chdirTemp(t)
	body := `
dataset: data/**/*.yaml
profile: family.yaml
sort: lowestCost
filter: likedBy:ann
format: json
limit: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".propcompare.yaml"), []byte(body), 0o644))

	cfg, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "data/**/*.yaml", cfg.Dataset)
	assert.Equal(t, "family.yaml", cfg.Profile)
	assert.Equal(t, "lowestCost", cfg.Sort)
	assert.Equal(t, "likedBy:ann", cfg.Filter)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, ".propcompare.yaml", cfg.ConfigFile)
	assert.NoError(t, cfg.RequireSource())
}

func TestLoadConfigExplicitFile(t *testing.T) {
	chdirTemp(t)
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"snapshot": "snap.db", "project": 7}`), 0o644))

	cfg, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "snap.db", cfg.Snapshot)
	assert.Equal(t, int64(7), cfg.Project)

	_, err = LoadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error reading config file")
}

func TestLoadConfigEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PROPCOMPARE_DATASET", "props.json")
	t.Setenv("PROPCOMPARE_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "props.json", cfg.Dataset)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		return Config{Dataset: "a.yaml", Filter: "all", Sort: "highestScore", Format: "console", LogLevel: "info", LogFormat: "console"}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "format", mutate: func(c *Config) { c.Format = "markdown" }, wantErr: "invalid format"},
		{name: "log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "invalid log format"},
		{name: "log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "invalid log level"},
		{name: "filter", mutate: func(c *Config) { c.Filter = "cheap" }, wantErr: "unknown filter"},
		{name: "sort", mutate: func(c *Config) { c.Sort = "random" }, wantErr: "unknown sort key"},
		{name: "both sources", mutate: func(c *Config) { c.Snapshot = "s.db"; c.Project = 1 }, wantErr: "mutually exclusive"},
		{name: "snapshot without project", mutate: func(c *Config) { c.Dataset = ""; c.Snapshot = "s.db" }, wantErr: "project must be set"},
		{name: "negative limit", mutate: func(c *Config) { c.Limit = -1 }, wantErr: "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := validateConfig(&c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
