package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

// Config is the run configuration, built once per invocation and passed by
// value. Precedence, lowest first: defaults, config file, environment, flags.
type Config struct {
	// LogLevel is one of trace, debug, info, warn, error, disabled.
	LogLevel string `toml:"log_level" env:"GIT_PKG_LOG_LEVEL"`
	// Output is the default list format: text, json, yaml or table.
	Output string `toml:"output" env:"GIT_PKG_OUTPUT"`
	// GitCommit stages and commits the manifest after every change.
	GitCommit bool `toml:"git_commit" env:"GIT_PKG_GIT_COMMIT"`
	// DryRun leaves the manifest file untouched.
	DryRun bool `toml:"dry_run" env:"GIT_PKG_DRY_RUN"`
}

func Default() Config {
	return Config{
		LogLevel: "warn",
		Output:   "text",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/git-pkg/config.toml, or "" when the
// user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "git-pkg", "config.toml")
}

// LoadOptions tells Load where to read from.
type LoadOptions struct {
	// Path is the config file. Empty skips the file.
	Path string
	// Required makes a missing file an error.
	Required bool
	// Lookuper resolves environment variables; nil uses the process env.
	Lookuper envconfig.Lookuper
}

// Load builds the configuration from defaults, the config file and the
// environment.
func Load(ctx context.Context, opts LoadOptions) (Config, error) {
	cfg := Default()

	if opts.Path != "" {
		if err := loadFile(opts.Path, opts.Required, &cfg); err != nil {
			return Config{}, err
		}
	}

	lookuper := opts.Lookuper
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:           &cfg,
		Lookuper:         lookuper,
		DefaultOverwrite: true,
	}); err != nil {
		return Config{}, fmt.Errorf("config env parse failed: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, required bool, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}
