// SPDX-License-Identifier: MPL-2.0

// Package sdist assembles release tarballs for upload to the registry.
// Archives are deterministic: the same manifest and file contents always
// produce byte-identical output and therefore a stable checksum.
package sdist
