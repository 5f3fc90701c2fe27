package am

import (
	"os"
	"sort"

	"github.com/teranos/rs2ts/errors"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceUser        ConfigSource = "user"        // ~/.rs2ts/config.toml
	SourceProject     ConfigSource = "project"     // rs2ts.toml found walking up
	SourceEnvironment ConfigSource = "environment" // RS2TS_* env vars
	SourceFlag        ConfigSource = "flag"
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource // The type of config source
	Path   string       // File path, environment variable or flag name
}

// ConfigSources records, per key, the config file that last set it.
// Populated while loading; guarded by mu.
var ConfigSources = map[string]SourceInfo{}

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key" yaml:"key"`
	Value      interface{}  `json:"value" yaml:"value"`
	Source     ConfigSource `json:"source" yaml:"source"`
	SourcePath string       `json:"source_path,omitempty" yaml:"source_path,omitempty"`
}

// ConfigIntrospection provides metadata about the active configuration
type ConfigIntrospection struct {
	Settings []SettingInfo `json:"settings" yaml:"settings"`
}

// GetConfigIntrospection returns every effective setting with the source
// it came from
func GetConfigIntrospection() (*ConfigIntrospection, error) {
	if _, err := Load(); err != nil {
		return nil, errors.Wrap(err, "failed to load config for introspection")
	}

	mu.Lock()
	defer mu.Unlock()
	v := initViper()

	keys := v.AllKeys()
	sort.Strings(keys)

	introspection := &ConfigIntrospection{Settings: make([]SettingInfo, 0, len(keys))}
	for _, key := range keys {
		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := ConfigSources[key]; ok {
			info = si
		}
		if envKey := EnvKey(key); os.Getenv(envKey) != "" {
			info = SourceInfo{Source: SourceEnvironment, Path: envKey}
		}
		if si, ok := flagSources[key]; ok {
			info = si
		}

		introspection.Settings = append(introspection.Settings, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}
	return introspection, nil
}
