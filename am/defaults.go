package am

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input", []string{})
	v.SetDefault("output", "")

	v.SetDefault("translate.workers", DefaultWorkers)

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", DefaultLogTheme)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
}

// BindEnvVars explicitly binds configuration keys to environment variables.
// AutomaticEnv only resolves keys viper already knows about; explicit
// bindings make the env layer visible to Unmarshal.
func BindEnvVars(v *viper.Viper) {
	for _, key := range []string{
		"input",
		"output",
		"translate.workers",
		"log.json",
		"log.theme",
		"watch.debounce_ms",
	} {
		_ = v.BindEnv(key, EnvKey(key))
	}
}
