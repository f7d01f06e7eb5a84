// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultFiles are the glob patterns used when [package].files is not set.
var DefaultFiles = []string{"src/**", "include/**", "README*", "LICENSE*", Filename}

var (
	// ErrNoMatches is the sentinel error wrapped by NoMatchError.
	ErrNoMatches = errors.New("pattern matched no files")
	// ErrNoFiles is returned when file resolution selects nothing at all.
	ErrNoFiles = errors.New("no files to publish")
)

type (
	// FileEntry is one file selected for publishing.
	FileEntry struct {
		// RelPath is the slash-separated path relative to the manifest directory.
		RelPath string
		// Size is the file size in bytes.
		Size int64
	}

	// NoMatchError is returned when an explicitly declared files pattern
	// matches nothing. It wraps ErrNoMatches for errors.Is() compatibility.
	NoMatchError struct {
		Pattern string
	}
)

// Error implements the error interface for NoMatchError.
func (e *NoMatchError) Error() string {
	return fmt.Sprintf("files pattern %q matched no files", e.Pattern)
}

// Unwrap returns ErrNoMatches for errors.Is() compatibility.
func (e *NoMatchError) Unwrap() error { return ErrNoMatches }

// ResolveFiles expands the manifest's file patterns against the manifest
// directory and returns the selected regular files sorted by relative path.
//
// Explicitly declared patterns that match nothing are an error (a typo in
// freight.toml should not silently shrink a release). When DefaultFiles
// applies, individual patterns may come up empty; only an entirely empty
// result is an error.
func (m *Manifest) ResolveFiles() ([]FileEntry, error) {
	patterns := m.Package.Files
	declared := len(patterns) > 0
	if !declared {
		patterns = DefaultFiles
	}

	fsys := os.DirFS(m.Dir)
	seen := make(map[string]int64)

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid files pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 && declared {
			return nil, &NoMatchError{Pattern: pattern}
		}

		for _, match := range matches {
			if _, dup := seen[match]; dup {
				continue
			}
			info, err := fs.Stat(fsys, match)
			if err != nil {
				return nil, fmt.Errorf("failed to stat %s: %w", match, err)
			}
			if !info.Mode().IsRegular() {
				continue
			}
			seen[match] = info.Size()
		}
	}

	if len(seen) == 0 {
		return nil, ErrNoFiles
	}

	entries := make([]FileEntry, 0, len(seen))
	for rel, size := range seen {
		entries = append(entries, FileEntry{RelPath: rel, Size: size})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].RelPath < entries[j].RelPath })

	return entries, nil
}
