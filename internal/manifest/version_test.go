// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"testing"
)

func TestCanonicalVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "1.2.3", "1.2.3"},
		{"v prefix stripped", "v1.2.0", "1.2.0"},
		{"partial version completed", "1.2", "1.2.0"},
		{"major only", "2", "2.0.0"},
		{"prerelease preserved", "2.0.0-rc.1", "2.0.0-rc.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := CanonicalVersion(tt.input)
			if err != nil {
				t.Fatalf("CanonicalVersion(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("CanonicalVersion(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalVersion_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "latest", "one.two.three", "1.2.3.4"} {
		_, err := CanonicalVersion(input)
		if err == nil {
			t.Errorf("CanonicalVersion(%q): expected error, got nil", input)
			continue
		}
		if !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("CanonicalVersion(%q): error should wrap ErrInvalidVersion, got: %v", input, err)
		}
	}
}
