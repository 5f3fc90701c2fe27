package am

import "fmt"

// Config represents the rs2ts configuration
type Config struct {
	Input     []string        `mapstructure:"input" toml:"input" json:"input" yaml:"input"`
	Output    string          `mapstructure:"output" toml:"output" json:"output" yaml:"output"` // empty = stdout
	Translate TranslateConfig `mapstructure:"translate" toml:"translate" json:"translate" yaml:"translate"`
	Log       LogConfig       `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
	Watch     WatchConfig     `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`
}

// TranslateConfig configures a translation run
type TranslateConfig struct {
	Workers int `mapstructure:"workers" toml:"workers" json:"workers" yaml:"workers"` // <= 1 renders sequentially (default: 1)
}

// LogConfig configures log output
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Theme string `mapstructure:"theme" toml:"theme" json:"theme" yaml:"theme"` // Color theme: gruvbox, everforest
}

// WatchConfig configures the watch command
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"` // 0 = regenerate on every event
}

// Defaults
const (
	DefaultWorkers    = 1
	DefaultDebounceMS = 300
	DefaultLogTheme   = "everforest"
)

// LogThemes lists the accepted log.theme values
var LogThemes = []string{"everforest", "gruvbox"}

// File names and locations
const (
	ProjectConfigName = "rs2ts.toml"
	UserConfigDir     = ".rs2ts"
	UserConfigName    = "config.toml"
	EnvPrefix         = "RS2TS"
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// GetLogTheme returns the log theme (default: everforest)
func (c *Config) GetLogTheme() string {
	if c.Log.Theme == "" {
		return DefaultLogTheme
	}
	return c.Log.Theme
}

// GetWorkers returns the worker count, never less than 1
func (c *Config) GetWorkers() int {
	if c.Translate.Workers < 1 {
		return 1
	}
	return c.Translate.Workers
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Input: %v, Output: %q, Translate: {Workers: %d}, Log: {Theme: %s}}",
		c.Input, c.Output, c.Translate.Workers, c.GetLogTheme())
}
