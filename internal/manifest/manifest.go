// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
)

// Filename is the manifest file name expected in the project root.
const Filename = "freight.toml"

// nameRE constrains package names: lowercase letter first, then lowercase
// letters, digits, and underscores.
var nameRE = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var (
	// ErrNotFound is returned by Load when no manifest file exists.
	ErrNotFound = errors.New("manifest not found")
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid package name")
	// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
	ErrInvalidVersion = errors.New("invalid package version")
)

type (
	// Manifest is the parsed and validated freight.toml.
	// It is loaded once per invocation and never mutated afterwards.
	Manifest struct {
		// Name is the application name and the default publish name.
		Name string
		// Version is the release version (full semver, no leading "v").
		Version string
		// Description is the short description shown on the package page.
		Description string
		// Package holds publish-specific settings.
		Package PackageSettings
		// Dependencies lists declared dependencies sorted by name.
		Dependencies []Dependency
		// Docs holds documentation generation settings.
		Docs DocsSettings

		// Dir is the directory containing the manifest file. File patterns
		// resolve relative to it.
		Dir string
	}

	// PackageSettings configures what gets published.
	PackageSettings struct {
		// Name overrides the publish name when set.
		Name string
		// Files lists glob patterns selecting the published files.
		// When empty, DefaultFiles applies.
		Files []string
		// Licenses lists SPDX license identifiers.
		Licenses []string
		// Links maps link labels to URLs shown on the package page.
		Links map[string]string
	}

	// DocsSettings configures documentation generation.
	DocsSettings struct {
		// Command overrides the documentation generator invocation.
		Command string
	}

	// InvalidNameError is returned when a package name does not match the
	// registry's naming rules. It wraps ErrInvalidName for errors.Is().
	InvalidNameError struct {
		Value string
	}

	// InvalidVersionError is returned when a version string is not full
	// semver. It wraps ErrInvalidVersion for errors.Is().
	InvalidVersionError struct {
		Value  string
		Reason string
	}
)

// rawManifest mirrors the TOML document shape. Dependencies stay untyped
// here because entries may be either a requirement string or a table.
type rawManifest struct {
	Name         string         `toml:"name"`
	Version      string         `toml:"version"`
	Description  string         `toml:"description"`
	Package      rawPackage     `toml:"package"`
	Dependencies map[string]any `toml:"dependencies"`
	Docs         rawDocs        `toml:"docs"`
}

type rawPackage struct {
	Name     string            `toml:"name"`
	Files    []string          `toml:"files"`
	Licenses []string          `toml:"licenses"`
	Links    map[string]string `toml:"links"`
}

type rawDocs struct {
	Command string `toml:"command"`
}

// Load reads and validates the manifest at path.
//
// A missing file yields an error wrapping ErrNotFound so callers can
// distinguish "no manifest here" from a malformed one.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var raw rawManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	m := &Manifest{
		Name:        raw.Name,
		Version:     raw.Version,
		Description: raw.Description,
		Package: PackageSettings{
			Name:     raw.Package.Name,
			Files:    raw.Package.Files,
			Licenses: raw.Package.Licenses,
			Links:    raw.Package.Links,
		},
		Docs: DocsSettings{Command: raw.Docs.Command},
		Dir:  filepath.Dir(path),
	}

	if err := validateName(m.Name); err != nil {
		return nil, err
	}
	if m.Package.Name != "" {
		if err := validateName(m.Package.Name); err != nil {
			return nil, err
		}
	}
	if err := validateVersion(m.Version); err != nil {
		return nil, err
	}

	deps, err := normalizeDependencies(raw.Dependencies)
	if err != nil {
		return nil, err
	}
	m.Dependencies = deps

	return m, nil
}

// EffectiveName returns the name releases are published under:
// the [package] name override when set, else the top-level name.
func (m *Manifest) EffectiveName() string {
	if m.Package.Name != "" {
		return m.Package.Name
	}
	return m.Name
}

func validateName(name string) error {
	if !nameRE.MatchString(name) {
		return &InvalidNameError{Value: name}
	}
	return nil
}

func validateVersion(version string) error {
	if version == "" {
		return &InvalidVersionError{Value: version, Reason: "version is required"}
	}
	// StrictNewVersion rejects partial versions ("1.2") and the "v" prefix;
	// releases carry the exact canonical form.
	if _, err := semver.StrictNewVersion(version); err != nil {
		return &InvalidVersionError{Value: version, Reason: err.Error()}
	}
	return nil
}

// Error implements the error interface for InvalidNameError.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid package name %q: must start with a lowercase letter and contain only lowercase letters, digits, and underscores", e.Value)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Error implements the error interface for InvalidVersionError.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid package version %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidVersion for errors.Is() compatibility.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }
