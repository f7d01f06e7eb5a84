// SPDX-License-Identifier: MPL-2.0

// Package docset produces the documentation artifact uploaded to the
// registry. It resolves and runs the external documentation generator,
// locates the generated output directory, and bundles the output into an
// in-memory tar.gz archive.
//
// The package is organized into three concerns:
//   - generator.go: docs command resolution and execution
//   - output.go: conventional output directory probing
//   - archive.go: tar.gz bundling through a transient temp file
package docset
