package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete relprep configuration
type Config struct {
	Manifest ManifestConfig `mapstructure:"manifest"`
	Editor   EditorConfig   `mapstructure:"editor"`
	Steps    StepsConfig    `mapstructure:"steps"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ManifestConfig locates the project manifest
type ManifestConfig struct {
	// Path is the manifest file relative to the repository root (default: "Cargo.toml")
	Path string `mapstructure:"path"`
}

// EditorConfig controls the interactive version-edit step
type EditorConfig struct {
	// Command is the editor to open on the manifest. When empty, $EDITOR is
	// used, falling back to "vi".
	Command string `mapstructure:"command"`
}

// StepsConfig holds the external command lines for the non-interactive steps
type StepsConfig struct {
	// Propagate synchronizes the manifest version across all project files
	Propagate CommandConfig `mapstructure:"propagate"`
	// Lock regenerates the dependency lock file for the named packages
	Lock LockConfig `mapstructure:"lock"`
	// Changelog rewrites the changelog from repository history
	Changelog CommandConfig `mapstructure:"changelog"`
}

// CommandConfig is an external command with fixed arguments
type CommandConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// LockConfig is the dependency-manager update command. Scoping the update to
// an explicit package list keeps a version bump from re-resolving unrelated
// third-party dependencies.
type LockConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
	// Packages are passed as repeated "-p <name>" flags
	Packages []string `mapstructure:"packages"`
}

// LoggingConfig controls the structured run log
type LoggingConfig struct {
	// Enabled writes a JSON run log under Dir. When false, no run log is
	// written; operator-facing output is unaffected. (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: debug, info, warn, error (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the log directory (default: ConfigDir()/logs)
	Dir string `mapstructure:"dir"`
}

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		Manifest: ManifestConfig{
			Path: "Cargo.toml",
		},
		Editor: EditorConfig{
			Command: "",
		},
		Steps: StepsConfig{
			Propagate: CommandConfig{
				Command: "make",
				Args:    []string{"update-version"},
			},
			Lock: LockConfig{
				Command:  "cargo",
				Args:     []string{"update"},
				Packages: []string{"rash_core", "rash_derive"},
			},
			Changelog: CommandConfig{
				Command: "make",
				Args:    []string{"update-changelog"},
			},
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     filepath.Join(ConfigDir(), "logs"),
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("manifest.path", defaults.Manifest.Path)

	viper.SetDefault("editor.command", defaults.Editor.Command)

	viper.SetDefault("steps.propagate.command", defaults.Steps.Propagate.Command)
	viper.SetDefault("steps.propagate.args", defaults.Steps.Propagate.Args)
	viper.SetDefault("steps.lock.command", defaults.Steps.Lock.Command)
	viper.SetDefault("steps.lock.args", defaults.Steps.Lock.Args)
	viper.SetDefault("steps.lock.packages", defaults.Steps.Lock.Packages)
	viper.SetDefault("steps.changelog.command", defaults.Steps.Changelog.Command)
	viper.SetDefault("steps.changelog.args", defaults.Steps.Changelog.Args)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ResolveEditor returns the editor command for the interactive step:
// the configured command, then $EDITOR, then "vi". Candidates are trimmed
// so a whitespace-only value falls through instead of producing an empty
// command line.
func (c *Config) ResolveEditor() string {
	if cmd := strings.TrimSpace(c.Editor.Command); cmd != "" {
		return cmd
	}
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}
	return "vi"
}

// LockArgs returns the full argument list for the lock-refresh command,
// appending "-p <name>" for each scoped package.
func (c *LockConfig) LockArgs() []string {
	args := make([]string, 0, len(c.Args)+2*len(c.Packages))
	args = append(args, c.Args...)
	for _, pkg := range c.Packages {
		args = append(args, "-p", pkg)
	}
	return args
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "relprep")
	}
	// Fall back to ~/.config/relprep
	home, err := os.UserHomeDir()
	if err != nil {
		return ".relprep"
	}
	return filepath.Join(home, ".config", "relprep")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
