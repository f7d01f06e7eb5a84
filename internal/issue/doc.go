// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// This package defines error types that include remediation steps and
// Markdown-formatted guidance for the headline publish failures: a missing or
// invalid manifest, an absent docs generator, missing docs output, and
// registry credential problems.
package issue
