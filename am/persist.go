package am

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/teranos/rs2ts/errors"
	"github.com/teranos/rs2ts/logger"
)

// backupCount is how many rotated copies Save keeps (.back1 is newest)
const backupCount = 3

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Delete oldest backup if exists
	oldest := backupPath(configPath, backupCount)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		// Log deletion failures (but don't fail config save)
		logger.Warnw("Failed to delete old config backup",
			logger.FieldFile, oldest,
			"error", err)
	}

	// Rotate .back2 -> .back3, .back1 -> .back2
	for n := backupCount - 1; n >= 1; n-- {
		from := backupPath(configPath, n)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, backupPath(configPath, n+1)); err != nil {
				return errors.Wrapf(err, "failed to rotate .back%d to .back%d", n, n+1)
			}
		}
	}

	// Copy current to .back1
	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(backupPath(configPath, 1), content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

func backupPath(configPath string, n int) string {
	return configPath + ".back" + strconv.Itoa(n)
}

// IsBackupFile reports whether path is one of the rotated backups Save writes
func IsBackupFile(path string) bool {
	base := filepath.Base(path)
	for n := 1; n <= backupCount; n++ {
		if strings.HasSuffix(base, ".toml.back"+strconv.Itoa(n)) {
			return true
		}
	}
	return false
}

// Marshal encodes cfg as TOML
func Marshal(cfg *Config) ([]byte, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return data, nil
}

// Save validates cfg and writes it to path as TOML, rotating any existing
// file into .back1..3 first
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write config %s", path)
	}

	logger.Debugw("Config saved", logger.FieldFile, path)
	return nil
}

// CheckFile decodes path strictly: unknown keys and invalid values are
// both errors. Viper silently ignores keys it does not know, so a typo such
// as `worker = 4` would otherwise go unnoticed.
func CheckFile(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "%s: %v", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", ")),
			"known keys: input, output, translate.workers, log.json, log.theme, watch.debounce_ms")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return &cfg, nil
}
