// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"freight-cli/internal/manifest"

	"github.com/spf13/cobra"
)

var (
	initForce bool

	// initCmd creates a new freight.toml
	initCmd = &cobra.Command{
		Use:   "init [path]",
		Short: "Create a starter freight.toml in the current directory",
		Long: `Create a starter freight.toml in the current directory.

The generated manifest declares a package named after the directory with
placeholder metadata and the default file patterns. Edit it before the
first publish.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing freight.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := manifest.Filename
	if len(args) > 0 {
		filename = args[0]
	}

	// Check if file exists
	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	name := packageNameFromDir(filepath.Base(filepath.Dir(absPath)))
	if err := os.WriteFile(filename, []byte(starterManifest(name)), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Edit freight.toml: set the version, description, and files")
	fmt.Println("  2. Run 'freight build' to inspect the release tarball")
	fmt.Println("  3. Run 'freight publish' to publish the package and its docs")

	return nil
}

// packageNameFromDir derives a valid package name from a directory name:
// lowercased, invalid characters replaced with underscores, and trimmed to
// start with a letter. Directories yielding nothing usable fall back to a
// placeholder the user must edit.
func packageNameFromDir(dir string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(dir) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	name := strings.TrimLeft(b.String(), "0123456789_")
	if name == "" {
		return "my_package"
	}
	return name
}

// starterManifest renders the initial freight.toml contents.
func starterManifest(name string) string {
	return fmt.Sprintf(`name = %q
version = "0.1.0"
description = "A short description of the package"

[package]
files = ["src/**", "README*", "LICENSE*", "freight.toml"]
licenses = ["MIT"]

# Declare registry dependencies here. Git and path dependencies are
# usable locally but excluded from published releases.
# [dependencies]
# semverlib = "~> 1.2"

# Override the documentation generator if needed.
# [docs]
# command = "freight-docs build"
`, name)
}
