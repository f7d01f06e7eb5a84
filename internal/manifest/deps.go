// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidDependency is the sentinel error wrapped by InvalidDependencyError.
var ErrInvalidDependency = errors.New("invalid dependency")

type (
	// Dependency is one declared dependency entry.
	//
	// The shorthand form `name = "~1.2"` sets only Requirement. The table
	// form may additionally carry optional, git, or path keys.
	Dependency struct {
		// Name is the registry package name.
		Name string
		// Requirement is the declared version requirement (e.g. "~1.2").
		Requirement string
		// Optional marks the dependency as optional for consumers.
		Optional bool
		// Git is a git source URL. Git dependencies cannot be published.
		Git string
		// Path is a local directory source. Path dependencies cannot be published.
		Path string
	}

	// InvalidDependencyError is returned when a dependency entry cannot be
	// normalized. It wraps ErrInvalidDependency for errors.Is() compatibility.
	InvalidDependencyError struct {
		Name   string
		Reason string
	}
)

// Error implements the error interface for InvalidDependencyError.
func (e *InvalidDependencyError) Error() string {
	return fmt.Sprintf("invalid dependency %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidDependency for errors.Is() compatibility.
func (e *InvalidDependencyError) Unwrap() error { return ErrInvalidDependency }

// Publishable reports whether the dependency can appear in a published
// release. The registry can only resolve registry dependencies, so git and
// path sources are excluded.
func (d Dependency) Publishable() bool {
	return d.Git == "" && d.Path == ""
}

// SplitDependencies partitions the declared dependencies into those included
// in a published release and those excluded from it. Order within each
// partition follows the manifest's sorted dependency order.
func (m *Manifest) SplitDependencies() (included, excluded []Dependency) {
	for _, dep := range m.Dependencies {
		if dep.Publishable() {
			included = append(included, dep)
		} else {
			excluded = append(excluded, dep)
		}
	}
	return included, excluded
}

// normalizeDependencies converts the raw TOML dependency table into sorted
// Dependency values. TOML map order is not deterministic, so entries are
// sorted by name to keep summaries and release metadata stable.
func normalizeDependencies(raw map[string]any) ([]Dependency, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	deps := make([]Dependency, 0, len(raw))
	for name, value := range raw {
		dep, err := normalizeDependency(name, value)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}

	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return deps, nil
}

func normalizeDependency(name string, value any) (Dependency, error) {
	if !nameRE.MatchString(name) {
		return Dependency{}, &InvalidDependencyError{Name: name, Reason: "name must start with a lowercase letter and contain only lowercase letters, digits, and underscores"}
	}

	dep := Dependency{Name: name}

	switch v := value.(type) {
	case string:
		dep.Requirement = v
	case map[string]any:
		for key, field := range v {
			switch key {
			case "version":
				s, ok := field.(string)
				if !ok {
					return Dependency{}, &InvalidDependencyError{Name: name, Reason: "version must be a string"}
				}
				dep.Requirement = s
			case "optional":
				b, ok := field.(bool)
				if !ok {
					return Dependency{}, &InvalidDependencyError{Name: name, Reason: "optional must be a boolean"}
				}
				dep.Optional = b
			case "git":
				s, ok := field.(string)
				if !ok {
					return Dependency{}, &InvalidDependencyError{Name: name, Reason: "git must be a string"}
				}
				dep.Git = s
			case "path":
				s, ok := field.(string)
				if !ok {
					return Dependency{}, &InvalidDependencyError{Name: name, Reason: "path must be a string"}
				}
				dep.Path = s
			default:
				return Dependency{}, &InvalidDependencyError{Name: name, Reason: fmt.Sprintf("unknown key %q", key)}
			}
		}
	default:
		return Dependency{}, &InvalidDependencyError{Name: name, Reason: "must be a requirement string or a table"}
	}

	if dep.Git != "" && dep.Path != "" {
		return Dependency{}, &InvalidDependencyError{Name: name, Reason: "git and path are mutually exclusive"}
	}

	// Registry dependencies need a requirement; git and path sources pin
	// themselves and may omit it.
	if dep.Requirement == "" {
		if dep.Publishable() {
			return Dependency{}, &InvalidDependencyError{Name: name, Reason: "a version requirement is required"}
		}
		return dep, nil
	}

	if _, err := semver.NewConstraint(dep.Requirement); err != nil {
		return Dependency{}, &InvalidDependencyError{Name: name, Reason: fmt.Sprintf("invalid version requirement %q", dep.Requirement)}
	}

	return dep, nil
}
