package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	UI     UIConfig     `mapstructure:"ui"`
	Diff   DiffConfig   `mapstructure:"diff"`
	Cache  CacheConfig  `mapstructure:"cache"`
	GitHub GitHubConfig `mapstructure:"github"`
}

// UIConfig controls the initial state of the interface.
type UIConfig struct {
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// Wrap enables soft wrapping of long diff lines at startup.
	Wrap bool `mapstructure:"wrap"`
	// LineNumbers shows the file line number gutter at startup.
	LineNumbers bool `mapstructure:"line_numbers"`
}

// DiffConfig controls diff rendering.
type DiffConfig struct {
	// ExternalCommand overrides the delta binary used for diff
	// highlighting, e.g. a wrapper script or an absolute path. Empty
	// probes PATH for "delta" and falls back to the built-in
	// highlighter when it is missing.
	ExternalCommand string `mapstructure:"external_command"`
}

// CacheConfig controls PR snapshot persistence and API caching.
type CacheConfig struct {
	// Dir is where PR snapshots are stored. Empty uses the default
	// cache directory.
	Dir string `mapstructure:"dir"`
	// TTLSeconds is how long API responses stay cached in memory.
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

// GitHubConfig controls the API transport.
type GitHubConfig struct {
	// TokenCommand overrides how the media downloader obtains a token,
	// e.g. "pass show github". Empty uses GITHUB_TOKEN then gh.
	TokenCommand string `mapstructure:"token_command"`
}

// Load reads configuration from ~/.config/zpr/config.yaml (or TOML/JSON).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configDir := configDirectory()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("ZPR")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine — use defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = defaultCacheDir()
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.wrap", false)
	v.SetDefault("ui.line_numbers", false)
	v.SetDefault("diff.external_command", "")
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("github.token_command", "")
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "zpr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "zpr")
}

// defaultCacheDir is where PR snapshots and logs live when cache.dir
// is not set.
func defaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "zpr")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "zpr")
	}
	return filepath.Join(home, ".cache", "zpr")
}
