// SPDX-License-Identifier: MPL-2.0

// Package registry implements the client side of the freight registry API.
// It provides release and documentation uploads, grace-window deletions, and
// the classification of registry responses into user-facing outcomes.
//
// The package is organized into three concerns:
//   - session.go: authenticated HTTP session with the four registry operations
//   - outcome.go: response classification (success / not-found / failure)
//   - apierror.go: rendering of structured registry error payloads
package registry
