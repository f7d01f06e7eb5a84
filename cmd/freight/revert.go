// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"freight-cli/internal/registry"
)

// revertRelease deletes one published version of the package.
func revertRelease(ctx context.Context, p publishParams, version string) error {
	name := p.man.EffectiveName()

	if p.dryRun {
		fmt.Fprintf(p.stdout, "Dry run, would revert %s %s.\n", name, version)
		return nil
	}

	out, err := p.session.DeleteRelease(ctx, name, version)
	return renderRevertResult(p, "delete release", name+" "+version, out, err)
}

// revertDocs deletes the hosted documentation of one published version.
func revertDocs(ctx context.Context, p publishParams, version string) error {
	name := p.man.EffectiveName()

	if p.dryRun {
		fmt.Fprintf(p.stdout, "Dry run, would revert documentation for %s %s.\n", name, version)
		return nil
	}

	out, err := p.session.DeleteDocs(ctx, name, version)
	return renderRevertResult(p, "delete docs", "documentation for "+name+" "+version, out, err)
}

// renderRevertResult prints the result of one deletion and converts failed
// calls into a registryError for exit classification. Failures are rendered
// here so a combined revert can report one step and still run the other.
func renderRevertResult(p publishParams, op, subject string, out registry.Outcome, err error) error {
	if err != nil {
		fmt.Fprintf(p.stderr, "%s Failed to revert %s: %v\n", ErrorStyle.Render("✗"), subject, err)
		return &registryError{op: op, err: err}
	}
	if out.Kind != registry.Success {
		fmt.Fprintf(p.stderr, "%s Failed to revert %s\n", ErrorStyle.Render("✗"), subject)
		fmt.Fprintln(p.stderr, registry.FormatError(out))
		return &registryError{op: op, outcome: out}
	}

	fmt.Fprintf(p.stdout, "%s Reverted %s\n", SuccessStyle.Render("✓"), subject)
	return nil
}
