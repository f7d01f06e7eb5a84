// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"freight-cli/internal/docset"
	"freight-cli/internal/issue"
	"freight-cli/internal/progress"
	"freight-cli/internal/registry"
)

// createDocs builds the documentation with the external generator, archives
// the output directory, and uploads the archive.
func createDocs(ctx context.Context, p publishParams) error {
	name := p.man.EffectiveName()
	version := p.man.Version

	canonical := p.canonical
	if canonical == "" {
		canonical = canonicalDocsURL(p.session.Host(), name)
	}

	argv, err := docset.Command(p.man, p.docsCommand, canonical)
	if err != nil {
		return fmt.Errorf("resolving documentation command: %w", err)
	}

	if p.dryRun {
		fmt.Fprintf(p.stdout, "Dry run, would run '%s' and upload the documentation archive.\n", strings.Join(argv, " "))
		return nil
	}

	fmt.Fprintf(p.stdout, "Building documentation for %s %s\n", name, version)
	if err := docset.Generate(ctx, p.man.Dir, argv, p.stdout, p.stderr); err != nil {
		if errors.Is(err, docset.ErrGeneratorNotFound) {
			renderIssueCard(p.stderr, issue.GeneratorNotFoundId)
			return issue.NewErrorContext().
				WithOperation("generate documentation").
				WithResource(argv[0]).
				WithSuggestion("Install freight-docs or set docs.command in freight.toml").
				Wrap(err).
				BuildError()
		}
		return fmt.Errorf("documentation generator failed: %w", err)
	}

	outDir, err := docset.FindOutputDir(p.man.Dir)
	if err != nil {
		renderIssueCard(p.stderr, issue.DocsOutputMissingId)
		return issue.NewErrorContext().
			WithOperation("locate documentation output").
			WithResource(p.man.Dir).
			WithSuggestion("The generator must write an index.html into doc/ or docs/").
			Wrap(err).
			BuildError()
	}

	archive, err := docset.BuildArchive(outDir)
	if err != nil {
		return fmt.Errorf("building docs archive: %w", err)
	}

	sink := progress.Discard
	if p.progress {
		sink = progress.NewBar(p.stdout, "documentation").Sink()
	}

	out, err := p.session.CreateDocs(ctx, name, version, archive, sink)
	if err != nil {
		fmt.Fprintf(p.stderr, "%s Publishing documentation failed: %v\n", ErrorStyle.Render("✗"), err)
		return &registryError{op: "create docs", err: err}
	}

	switch out.Kind {
	case registry.Success:
		fmt.Fprintf(p.stdout, "%s Published documentation for %s %s\n", SuccessStyle.Render("✓"), name, version)
		fmt.Fprintf(p.stdout, "  %s\n", CmdStyle.Render(docsURL(p.session.Host(), name, version)))
		return nil
	case registry.NotFound:
		// The registry hosts docs per published version; a 404 here means
		// the version itself is missing, not the docs endpoint.
		fmt.Fprintf(p.stderr, "%s %s %s has not been published yet, so its documentation cannot be hosted.\n",
			WarningStyle.Render("!"), name, version)
		fmt.Fprintln(p.stderr, "Run 'freight publish package' first.")
		return fmt.Errorf("%w: %s %s", errDocsNotPublished, name, version)
	default:
		fmt.Fprintf(p.stderr, "%s Publishing documentation for %s %s failed\n", ErrorStyle.Render("✗"), name, version)
		fmt.Fprintln(p.stderr, registry.FormatError(out))
		return &registryError{op: "create docs", outcome: out}
	}
}
