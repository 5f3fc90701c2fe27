package am

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/rs2ts/errors"
)

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
)

// Load reads the rs2ts configuration using Viper. The result is cached
// until Reset.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if globalConfig != nil {
		return globalConfig, nil
	}

	config, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}
	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance, for binding command-line flags
// before the first Load.
func GetViper() *viper.Viper {
	mu.Lock()
	defer mu.Unlock()
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path, on top of
// the defaults only
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config from %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing and reloads)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
	flagSources = map[string]SourceInfo{}
}

// flagSources records keys set from explicitly passed command-line flags
var flagSources = map[string]SourceInfo{}

// BindFlag makes flag the highest-precedence source for key. Call it
// after flag parsing and before the first Load.
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return errors.Newf("no flag to bind for %s", key)
	}
	mu.Lock()
	defer mu.Unlock()
	if err := initViper().BindPFlag(key, flag); err != nil {
		return errors.Wrapf(err, "failed to bind flag --%s", flag.Name)
	}
	if flag.Changed {
		flagSources[key] = SourceInfo{Source: SourceFlag, Path: "--" + flag.Name}
	}
	return nil
}

// EnvKey returns the environment variable that overrides a config key,
// e.g. translate.workers -> RS2TS_TRANSLATE_WORKERS
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// initViper initializes Viper with configuration sources and defaults.
// Callers hold mu.
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)

	SetDefaults(v)

	wd, _ := os.Getwd()
	mergeConfigFiles(v, configPaths(wd))

	viperInstance = v
	return v
}

// UserConfigPath returns ~/.rs2ts/config.toml, or "" without a home directory
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigName)
}

// FindProjectConfig searches for rs2ts.toml by walking up the directory
// tree from dir. Returns "" when none is found.
func FindProjectConfig(dir string) string {
	if dir == "" {
		return ""
	}
	for {
		path := filepath.Join(dir, ProjectConfigName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

type configFile struct {
	path   string
	source ConfigSource
}

// configPaths lists candidate config files, lowest precedence first
func configPaths(wd string) []configFile {
	var files []configFile
	if user := UserConfigPath(); user != "" {
		files = append(files, configFile{path: user, source: SourceUser})
	}
	if project := FindProjectConfig(wd); project != "" {
		files = append(files, configFile{path: project, source: SourceProject})
	}
	return files
}

// mergeConfigFiles merges configuration files into the config layer of v in
// precedence order. Environment variables and bound flags still win over
// anything merged here.
func mergeConfigFiles(v *viper.Viper, files []configFile) {
	for _, f := range files {
		if _, err := os.Stat(f.path); err != nil {
			continue
		}
		tempViper := viper.New()
		tempViper.SetConfigFile(f.path)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			continue
		}

		if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
			continue
		}
		for _, key := range tempViper.AllKeys() {
			ConfigSources[key] = SourceInfo{Source: f.source, Path: f.path}
		}
	}
}

// Get returns a configuration value using dot notation
func Get(key string) interface{} {
	return GetViper().Get(key)
}

// GetString returns a configuration value as string using dot notation
func GetString(key string) string {
	return GetViper().GetString(key)
}

// GetInt returns a configuration value as int using dot notation
func GetInt(key string) int {
	return GetViper().GetInt(key)
}
