// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultRegistryURL is the production registry endpoint.
	// Defined locally to avoid coupling config to internal/registry.
	DefaultRegistryURL RegistryURL = "https://registry.freightpkg.dev"

	// DefaultDocsCommand is the documentation generator invoked by
	// "freight publish docs" when docs.command is not configured.
	DefaultDocsCommand GeneratorCommand = "freight-docs build"
)

var (
	// ErrInvalidRegistryURL is the sentinel error wrapped by InvalidRegistryURLError.
	ErrInvalidRegistryURL = errors.New("invalid registry URL")
	// ErrInvalidAPIKey is returned when an APIKey value is whitespace-only.
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrInvalidGeneratorCommand is returned when a GeneratorCommand value is whitespace-only.
	ErrInvalidGeneratorCommand = errors.New("invalid generator command")
	// ErrInvalidRegistryConfig is the sentinel error wrapped by InvalidRegistryConfigError.
	ErrInvalidRegistryConfig = errors.New("invalid registry config")
	// ErrInvalidDocsConfig is the sentinel error wrapped by InvalidDocsConfigError.
	ErrInvalidDocsConfig = errors.New("invalid docs config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// RegistryURL is the base URL of a freight registry API.
	// The zero value ("") is valid and means "use the default registry".
	// Non-zero values must be absolute http or https URLs.
	RegistryURL string

	// InvalidRegistryURLError is returned when a RegistryURL value is not an
	// absolute http(s) URL. It wraps ErrInvalidRegistryURL for errors.Is().
	InvalidRegistryURLError struct {
		Value  RegistryURL
		Reason string
	}

	// APIKey authenticates requests against the registry.
	// The zero value ("") is valid and means "no key configured"; mutating
	// operations then require the FREIGHT_API_KEY environment variable.
	// Non-zero values must not be whitespace-only.
	APIKey string

	// InvalidAPIKeyError is returned when an APIKey value is
	// non-empty but whitespace-only.
	InvalidAPIKeyError struct {
		Value APIKey
	}

	// GeneratorCommand is the shell command line that builds documentation.
	// The zero value ("") is valid and means "use the default generator".
	// Non-zero values must not be whitespace-only.
	GeneratorCommand string

	// InvalidGeneratorCommandError is returned when a GeneratorCommand value is
	// non-empty but whitespace-only.
	InvalidGeneratorCommandError struct {
		Value GeneratorCommand
	}

	// InvalidRegistryConfigError is returned when a RegistryConfig has invalid fields.
	// It wraps ErrInvalidRegistryConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidRegistryConfigError struct {
		FieldErrors []error
	}

	// InvalidDocsConfigError is returned when a DocsConfig has invalid fields.
	// It wraps ErrInvalidDocsConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidDocsConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// RegistryConfig configures access to the package registry.
	RegistryConfig struct {
		// URL overrides the registry endpoint.
		URL RegistryURL `json:"url" mapstructure:"url"`
		// APIKey authenticates publish and revert requests.
		APIKey APIKey `json:"api_key" mapstructure:"api_key"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Progress enables upload progress bars.
		Progress bool `json:"progress" mapstructure:"progress"`
		// Verbose enables detailed error output.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// DocsConfig configures documentation generation.
	DocsConfig struct {
		// Command is the generator invoked by "freight publish docs".
		Command GeneratorCommand `json:"command" mapstructure:"command"`
	}

	// Config holds the application configuration.
	Config struct {
		// Registry configures the registry endpoint and credentials.
		Registry RegistryConfig `json:"registry" mapstructure:"registry"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Docs configures documentation generation.
		Docs DocsConfig `json:"docs" mapstructure:"docs"`
	}
)

// String returns the string representation of the RegistryURL.
func (u RegistryURL) String() string { return string(u) }

// IsValid returns whether the RegistryURL is valid.
// The zero value ("") is valid (means "use the default registry").
// Non-zero values must parse as absolute http or https URLs.
func (u RegistryURL) IsValid() (bool, []error) {
	if u == "" {
		return true, nil
	}
	parsed, err := url.Parse(string(u))
	if err != nil {
		return false, []error{&InvalidRegistryURLError{Value: u, Reason: "not a parseable URL"}}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false, []error{&InvalidRegistryURLError{Value: u, Reason: "scheme must be http or https"}}
	}
	if parsed.Host == "" {
		return false, []error{&InvalidRegistryURLError{Value: u, Reason: "missing host"}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRegistryURLError.
func (e *InvalidRegistryURLError) Error() string {
	return fmt.Sprintf("invalid registry URL %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidRegistryURL for errors.Is() compatibility.
func (e *InvalidRegistryURLError) Unwrap() error { return ErrInvalidRegistryURL }

// String returns the string representation of the APIKey.
func (k APIKey) String() string { return string(k) }

// Redacted returns a display-safe form of the key for diagnostic output.
func (k APIKey) Redacted() string {
	if k == "" {
		return "(unset)"
	}
	return "********"
}

// IsValid returns whether the APIKey is valid.
// The zero value ("") is valid (means "no key configured").
// Non-zero values must not be whitespace-only.
func (k APIKey) IsValid() (bool, []error) {
	if k == "" {
		return true, nil
	}
	if strings.TrimSpace(string(k)) == "" {
		return false, []error{&InvalidAPIKeyError{Value: k}}
	}
	return true, nil
}

// Error implements the error interface for InvalidAPIKeyError.
func (e *InvalidAPIKeyError) Error() string {
	return "invalid API key: non-empty value must not be whitespace-only"
}

// Unwrap returns ErrInvalidAPIKey for errors.Is() compatibility.
func (e *InvalidAPIKeyError) Unwrap() error { return ErrInvalidAPIKey }

// String returns the string representation of the GeneratorCommand.
func (c GeneratorCommand) String() string { return string(c) }

// IsValid returns whether the GeneratorCommand is valid.
// The zero value ("") is valid (means "use the default generator").
// Non-zero values must not be whitespace-only.
func (c GeneratorCommand) IsValid() (bool, []error) {
	if c == "" {
		return true, nil
	}
	if strings.TrimSpace(string(c)) == "" {
		return false, []error{&InvalidGeneratorCommandError{Value: c}}
	}
	return true, nil
}

// Error implements the error interface for InvalidGeneratorCommandError.
func (e *InvalidGeneratorCommandError) Error() string {
	return fmt.Sprintf("invalid generator command %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidGeneratorCommand for errors.Is() compatibility.
func (e *InvalidGeneratorCommandError) Unwrap() error { return ErrInvalidGeneratorCommand }

// IsValid returns whether the RegistryConfig has valid fields.
// It delegates to URL.IsValid() and APIKey.IsValid().
func (c RegistryConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.URL.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.APIKey.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidRegistryConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRegistryConfigError.
func (e *InvalidRegistryConfigError) Error() string {
	return fmt.Sprintf("invalid registry config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidRegistryConfig for errors.Is() compatibility.
func (e *InvalidRegistryConfigError) Unwrap() error { return ErrInvalidRegistryConfig }

// IsValid returns whether the DocsConfig has valid fields.
// It delegates to Command.IsValid().
func (c DocsConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Command.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidDocsConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDocsConfigError.
func (e *InvalidDocsConfigError) Error() string {
	return fmt.Sprintf("invalid docs config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidDocsConfig for errors.Is() compatibility.
func (e *InvalidDocsConfigError) Unwrap() error { return ErrInvalidDocsConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Registry.IsValid() and Docs.IsValid().
// UI has only bool fields and needs no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Registry.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Docs.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			URL:    DefaultRegistryURL,
			APIKey: "", // Resolved from FREIGHT_API_KEY when empty
		},
		UI: UIConfig{
			Progress: true,
			Verbose:  false,
		},
		Docs: DocsConfig{
			Command: DefaultDocsCommand,
		},
	}
}
