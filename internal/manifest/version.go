// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"github.com/Masterminds/semver/v3"
)

// CanonicalVersion normalizes a caller-supplied version string into the
// registry's canonical representation: full semver without a leading "v"
// (e.g. "v1.2.0" and "1.2" both become "1.2.0").
//
// Revert operations accept versions from the command line, so this is more
// lenient than manifest validation; the error wraps ErrInvalidVersion.
func CanonicalVersion(s string) (string, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return "", &InvalidVersionError{Value: s, Reason: err.Error()}
	}
	return v.String(), nil
}
