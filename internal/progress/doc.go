// SPDX-License-Identifier: MPL-2.0

// Package progress provides upload progress reporting for registry transfers.
//
// A Sink receives (sent, total) byte counts as an upload advances. The
// counting Reader drives a Sink from the request body, and Bar renders an
// in-place console progress bar. Discard is the no-op Sink used when
// progress output is disabled.
package progress
