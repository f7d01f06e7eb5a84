// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/freight/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/freight/config.cue on macOS, %APPDATA%\freight\config.cue
// on Windows). The package provides type-safe configuration access and covers the registry
// endpoint, API credentials, UI settings, and the documentation generator command.
//
// The FREIGHT_API_KEY and FREIGHT_REGISTRY_URL environment variables take precedence
// over their file-based counterparts so CI can inject credentials without writing
// them to disk.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
