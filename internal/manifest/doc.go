// SPDX-License-Identifier: MPL-2.0

// Package manifest loads and validates freight.toml, the project manifest
// that drives publishing.
//
// The manifest declares the package name and version, the files included in
// a release, the declared dependencies, and documentation settings. Loading
// normalizes dependency entries (string shorthand or table form), validates
// the package name and version, and records which dependencies are excluded
// from publishing (git and path sources cannot be resolved by the registry).
package manifest
