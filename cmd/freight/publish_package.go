// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"freight-cli/internal/manifest"
	"freight-cli/internal/progress"
	"freight-cli/internal/registry"
	"freight-cli/internal/sdist"
	"freight-cli/internal/tui"
)

// createPackage publishes the release tarball: summary, confirmation,
// packaging, upload, and outcome rendering.
func createPackage(ctx context.Context, p publishParams) error {
	files, err := p.man.ResolveFiles()
	if err != nil {
		return fmt.Errorf("resolving files to publish: %w", err)
	}
	included, excluded := p.man.SplitDependencies()

	name := p.man.EffectiveName()
	version := p.man.Version

	renderPublishSummary(p, name, version, files, included, excluded)

	if p.dryRun {
		fmt.Fprintln(p.stdout, "Dry run, skipping publish.")
		return nil
	}

	if !p.yes {
		confirmed, confirmErr := p.confirm(tui.ConfirmOptions{
			Title:       fmt.Sprintf("Publish %s %s to %s?", name, version, p.session.Host()),
			Affirmative: "Yes",
			Negative:    "No",
		})
		if confirmErr != nil && !errors.Is(confirmErr, tui.ErrCancelled) {
			return fmt.Errorf("confirmation prompt: %w", confirmErr)
		}
		if confirmErr != nil || !confirmed {
			fmt.Fprintln(p.stdout, "Publishing cancelled.")
			return errDeclined
		}
	}

	tarball, err := sdist.Create(p.man, files)
	if err != nil {
		return fmt.Errorf("building release tarball: %w", err)
	}

	sink := progress.Discard
	if p.progress {
		sink = progress.NewBar(p.stdout, tarball.Name).Sink()
	}

	out, err := p.session.CreateRelease(ctx, name, tarball.Data, p.replace, sink)
	if err != nil {
		fmt.Fprintf(p.stderr, "%s Publishing failed: %v\n", ErrorStyle.Render("✗"), err)
		return &registryError{op: "create release", err: err}
	}
	if out.Kind != registry.Success {
		fmt.Fprintf(p.stderr, "%s Publishing %s %s failed\n", ErrorStyle.Render("✗"), name, version)
		fmt.Fprintln(p.stderr, registry.FormatError(out))
		return &registryError{op: "create release", outcome: out}
	}

	fmt.Fprintf(p.stdout, "%s Published %s %s\n", SuccessStyle.Render("✓"), name, version)
	fmt.Fprintf(p.stdout, "  %s\n", CmdStyle.Render(packageURL(p.session.Host(), name, version)))
	fmt.Fprintf(p.stdout, "  %s\n", VerboseStyle.Render("sha256: "+tarball.Checksum))
	return nil
}

// renderPublishSummary prints what is about to be published: files with
// sizes, dependencies, exclusions, licenses, and the conduct notice.
func renderPublishSummary(p publishParams, name, version string, files []manifest.FileEntry, included, excluded []manifest.Dependency) {
	fmt.Fprintln(p.stdout, TitleStyle.Render(fmt.Sprintf("Publishing %s %s", name, version)))
	if p.man.Description != "" {
		fmt.Fprintf(p.stdout, "%s\n", SubtitleStyle.Render(p.man.Description))
	}
	fmt.Fprintln(p.stdout)

	fmt.Fprintf(p.stdout, "%s\n", SubtitleStyle.Render("Files:"))
	for _, f := range files {
		fmt.Fprintf(p.stdout, "  %s (%s)\n", f.RelPath, formatFileSize(f.Size))
	}

	if len(included) > 0 {
		fmt.Fprintf(p.stdout, "\n%s\n", SubtitleStyle.Render("Dependencies:"))
		for _, dep := range included {
			line := fmt.Sprintf("  %s %s", dep.Name, dep.Requirement)
			if dep.Optional {
				line += " (optional)"
			}
			fmt.Fprintln(p.stdout, line)
		}
	}

	if len(excluded) > 0 {
		fmt.Fprintf(p.stdout, "\n%s\n", WarningStyle.Render("! Excluded dependencies (git and path sources are not published):"))
		for _, dep := range excluded {
			source := "path"
			if dep.Git != "" {
				source = "git"
			}
			fmt.Fprintf(p.stdout, "  %s (%s)\n", dep.Name, source)
		}
	}

	if len(p.man.Package.Licenses) > 0 {
		fmt.Fprintf(p.stdout, "\n%s", SubtitleStyle.Render("Licenses:"))
		for _, license := range p.man.Package.Licenses {
			fmt.Fprintf(p.stdout, " %s", license)
		}
		fmt.Fprintln(p.stdout)
	}

	fmt.Fprintln(p.stdout)
	fmt.Fprintln(p.stdout, "By publishing you agree to the registry code of conduct:")
	fmt.Fprintf(p.stdout, "  %s\n", CmdStyle.Render(conductURL(p.session.Host())))
	fmt.Fprintln(p.stdout)
}
