// SPDX-License-Identifier: MPL-2.0

package docset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// outputDirNames are the conventional generator output directories, probed
// in order.
var outputDirNames = []string{"doc", "docs"}

var (
	// ErrNoOutputDir is returned when no conventional output directory exists
	// under the project root.
	ErrNoOutputDir = errors.New("documentation output directory not found")

	// ErrNoIndex is returned when an output directory exists but holds no
	// index.html, which the registry requires as the docs entry point.
	ErrNoIndex = errors.New("documentation output has no index.html")
)

// FindOutputDir locates the generator's output below root. doc/ is probed
// before docs/, and a directory only counts when it contains an index.html.
func FindOutputDir(root string) (string, error) {
	var missingIndex string

	for _, name := range outputDirNames {
		dir := filepath.Join(root, name)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
			if missingIndex == "" {
				missingIndex = name
			}
			continue
		}
		return dir, nil
	}

	if missingIndex != "" {
		return "", fmt.Errorf("%w in %s/", ErrNoIndex, missingIndex)
	}
	return "", ErrNoOutputDir
}
