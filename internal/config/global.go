// SPDX-License-Identifier: MPL-2.0

package config

import "context"

var (
	// globalConfig caches the configuration loaded by Load.
	globalConfig *Config
	// configPath records which file globalConfig was loaded from
	// ("" when built-in defaults were used).
	configPath string
	// errLastLoad stores the most recent load failure so callers of Get
	// can surface it later.
	errLastLoad error

	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
	// configFilePathOverride forces loading from a specific file.
	// Set by the --config flag before the first Load call.
	configFilePathOverride string
)

// Load returns the cached configuration, reading it from disk on first use.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
		ConfigDirPath:  configDirOverride,
	})
	if err != nil {
		errLastLoad = err
		return nil, err
	}

	globalConfig = cfg
	configPath = path
	errLastLoad = nil
	return globalConfig, nil
}

// Get returns the loaded configuration, falling back to defaults when
// loading fails. The failure is retrievable via LastLoadError.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// LastLoadError returns the error from the most recent failed Load,
// or nil when the last load succeeded.
func LastLoadError() error {
	return errLastLoad
}

// ConfigFilePath returns the path of the file the cached configuration was
// loaded from. It is empty when defaults were used or Load has not run.
//
//nolint:revive // ConfigFilePath is more descriptive than FilePath for external callers
func ConfigFilePath() string {
	return configPath
}

// Reset clears the cached configuration and all test overrides.
// Call from test cleanup to restore defaults.
func Reset() {
	globalConfig = nil
	configPath = ""
	errLastLoad = nil
	configDirOverride = ""
	configFilePathOverride = ""
}

// ResetCache clears the cached configuration while preserving overrides.
// The next Load call re-reads the config from disk.
func ResetCache() {
	globalConfig = nil
	configPath = ""
	errLastLoad = nil
}

// SetConfigDirOverride sets a custom config directory path and clears the
// cached configuration. This is primarily intended for testing to bypass
// os.UserHomeDir() which doesn't reliably respect the HOME env var on all
// platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	ResetCache()
	configDirOverride = dir
}

// SetConfigFilePathOverride forces configuration loading from the given file
// and clears the cached configuration.
func SetConfigFilePathOverride(path string) {
	ResetCache()
	configFilePathOverride = path
}
