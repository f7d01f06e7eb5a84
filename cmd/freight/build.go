// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"freight-cli/internal/manifest"
	"freight-cli/internal/sdist"

	"github.com/spf13/cobra"
)

// newBuildCommand creates the `freight build` command, which builds the
// release tarball locally without contacting the registry.
func newBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the release tarball without publishing",
		Long: `Build the release tarball without publishing.

The tarball is written next to freight.toml as '<name>-<version>.tar.gz'
and its contents and checksum are printed. The build is deterministic:
rebuilding an unchanged project yields a byte-identical archive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			man, err := loadManifest(cmd.ErrOrStderr())
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}

			if err := runBuild(cmd.OutOrStdout(), man); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), formatErrorForDisplay(err, verbose))
				return &ExitError{Code: 1, Err: err}
			}

			return nil
		},
	}
}

// runBuild packages the release tarball and writes it into the manifest
// directory. All user-facing output goes through stdout.
func runBuild(stdout io.Writer, man *manifest.Manifest) error {
	files, err := man.ResolveFiles()
	if err != nil {
		return fmt.Errorf("resolving files to publish: %w", err)
	}

	tarball, err := sdist.Create(man, files)
	if err != nil {
		return fmt.Errorf("building release tarball: %w", err)
	}

	outPath := filepath.Join(man.Dir, tarball.Name)
	if err := os.WriteFile(outPath, tarball.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tarball.Name, err)
	}

	fmt.Fprintln(stdout, TitleStyle.Render(fmt.Sprintf("Built %s %s", man.EffectiveName(), man.Version)))
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  %s\n", sdist.MetadataFilename)
	for _, f := range files {
		fmt.Fprintf(stdout, "  %s (%s)\n", f.RelPath, formatFileSize(f.Size))
	}
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s Wrote %s (%s)\n", SuccessStyle.Render("✓"), outPath, formatFileSize(int64(len(tarball.Data))))
	fmt.Fprintf(stdout, "  %s\n", VerboseStyle.Render("sha256: "+tarball.Checksum))

	return nil
}
