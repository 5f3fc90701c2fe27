package am

import (
	"slices"

	"github.com/teranos/rs2ts/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Workers: 0 and 1 both mean sequential, negative is invalid
	if c.Translate.Workers < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "translate.workers must be >= 0, got %d", c.Translate.Workers)
	}

	// Debounce: 0 = regenerate on every event, negative is invalid
	if c.Watch.DebounceMS < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	if c.Log.Theme != "" && !slices.Contains(LogThemes, c.Log.Theme) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrInvalidConfig, "log.theme %q is not a known theme", c.Log.Theme),
			"use one of: %v", LogThemes)
	}

	for i, in := range c.Input {
		if in == "" {
			return errors.Wrapf(errors.ErrInvalidConfig, "input[%d] is empty", i)
		}
	}

	return nil
}
