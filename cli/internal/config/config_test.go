package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), LoadOptions{
		Path:     filepath.Join(t.TempDir(), "missing.toml"),
		Lookuper: envconfig.MapLookuper(nil),
	})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
output = "yaml"
git_commit = true
`)

	cfg, err := Load(context.Background(), LoadOptions{
		Path: path,
		Lookuper: envconfig.MapLookuper(map[string]string{
			"GIT_PKG_OUTPUT":  "json",
			"GIT_PKG_DRY_RUN": "true",
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, Config{
		LogLevel:  "debug",
		Output:    "json",
		GitCommit: true,
		DryRun:    true,
	}, cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		opts LoadOptions
	}{
		{
			name: "missing required file",
			opts: LoadOptions{Path: filepath.Join(t.TempDir(), "nope.toml"), Required: true},
		},
		{
			name: "unknown key",
			opts: LoadOptions{Path: writeConfig(t, "colour = \"red\"\n")},
		},
		{
			name: "malformed toml",
			opts: LoadOptions{Path: writeConfig(t, "output = \n")},
		},
		{
			name: "bad env bool",
			opts: LoadOptions{Lookuper: envconfig.MapLookuper(map[string]string{"GIT_PKG_DRY_RUN": "maybe"})},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.opts.Lookuper == nil {
				tt.opts.Lookuper = envconfig.MapLookuper(nil)
			}
			_, err := Load(context.Background(), tt.opts)
			assert.Error(t, err)
		})
	}
}
