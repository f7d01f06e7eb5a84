// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"freight-cli/internal/config"
	"freight-cli/internal/docset"
	"freight-cli/internal/issue"
	"freight-cli/internal/manifest"
	"freight-cli/internal/registry"
	"freight-cli/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Publish targets. The empty target covers both the package and its docs.
const (
	targetAll     = ""
	targetPackage = "package"
	targetDocs    = "docs"
)

var (
	// errUsage is the sentinel error wrapped by invalidTargetError.
	errUsage = errors.New("invalid arguments")

	// errDeclined marks a declined confirmation prompt. Declining is a
	// deliberate no-op, never a failure; runPublish maps it to success.
	errDeclined = errors.New("publishing declined")

	// errDocsNotPublished marks a docs upload rejected because the
	// referenced package version does not exist on the registry yet.
	errDocsNotPublished = errors.New("package version not published")
)

type (
	// invalidTargetError is returned for positional arguments other than
	// "package" or "docs". It wraps errUsage for errors.Is().
	invalidTargetError struct {
		Target string
	}

	// registryError marks a failed registry call: either a non-success
	// response or a transport failure. The user-facing rendering happens at
	// the call site, in sequence with the rest of the flow's output; this
	// value only drives control flow and the process exit code.
	registryError struct {
		op      string
		outcome registry.Outcome
		err     error
	}

	// confirmFunc matches tui.Confirm and exists so tests can script the
	// confirmation prompt.
	confirmFunc func(tui.ConfirmOptions) (bool, error)

	// publishParams bundles the collaborators and flags for the publish
	// command, enabling the core logic in runPublish to be tested without a
	// real Cobra command or a live registry.
	publishParams struct {
		stdout  io.Writer
		stderr  io.Writer
		session *registry.Session
		man     *manifest.Manifest
		confirm confirmFunc

		target      string // "", "package", or "docs"
		revert      string // revert version (empty = create)
		progress    bool   // progress bars enabled for uploads
		canonical   string // --canonical override for the docs generator
		replace     bool   // --replace flag: allow re-publishing a version
		yes         bool   // --yes flag: skip confirmation prompt
		dryRun      bool   // --dry-run flag: stop before any registry call
		docsCommand string // configured docs generator (docs.command)
	}
)

// Error implements the error interface for invalidTargetError.
func (e *invalidTargetError) Error() string {
	return fmt.Sprintf(`unknown argument %q for freight publish

Valid forms:
  freight publish            publish the package and its documentation
  freight publish package    publish only the package
  freight publish docs       publish only the documentation`, e.Target)
}

// Unwrap returns errUsage for errors.Is() compatibility.
func (e *invalidTargetError) Unwrap() error { return errUsage }

// Error implements the error interface for registryError.
func (e *registryError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.op, e.err)
	}
	return fmt.Sprintf("%s: registry responded with status %d", e.op, e.outcome.Status)
}

// Unwrap returns the transport error, if any.
func (e *registryError) Unwrap() error { return e.err }

// newPublishCommand creates the `freight publish` command, which publishes
// the package release and its documentation to the registry, or reverts a
// previously published version.
func newPublishCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [package|docs]",
		Short: "Publish the package and its documentation to the registry",
		Long: `Publish the package and its documentation to the registry.

Without an argument both are published: the release tarball first, then
the generated documentation. The 'package' and 'docs' arguments restrict
the operation to one artifact.

With --revert the same forms un-publish a version instead. Reverting is
only possible within the registry's grace window after publishing.`,
		Example: `  # Publish the package and its documentation
  freight publish

  # Publish only the release tarball
  freight publish package

  # Build and publish only the documentation
  freight publish docs

  # Revert version 1.2.3 (package and docs)
  freight publish --revert 1.2.3

  # Re-publish an existing version within the grace window
  freight publish package --replace --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			target := targetAll
			if len(args) > 0 {
				target = args[0]
			}

			// The target decides which collaborators get touched at all, so
			// it is validated before config, manifest, or session work.
			if target != targetAll && target != targetPackage && target != targetDocs {
				err := &invalidTargetError{Target: target}
				fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
				return &ExitError{Code: 1, Err: err}
			}

			p, err := newPublishParams(cmd, target)
			if err != nil {
				if msg := formatPublishError(err); msg != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), msg)
				}
				return &ExitError{Code: classifyPublishExitCode(err), Err: err}
			}

			if err := runPublish(cmd.Context(), p); err != nil {
				if msg := formatPublishError(err); msg != "" {
					fmt.Fprintln(p.stderr, msg)
				}
				return &ExitError{Code: classifyPublishExitCode(err), Err: err}
			}

			return nil
		},
	}

	cmd.Flags().String("revert", "", "Revert (un-publish) the given version instead of publishing")
	cmd.Flags().Bool("progress", true, "Show upload progress bars")
	cmd.Flags().String("canonical", "", "Canonical documentation URL passed to the generator")
	cmd.Flags().Bool("replace", false, "Allow re-publishing an already published version")
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	cmd.Flags().Bool("dry-run", false, "Validate and show what would happen without contacting the registry")

	return cmd
}

// newPublishParams resolves configuration, manifest, and registry session
// for one publish invocation. Fatal configuration problems are rendered as
// issue cards here, before any network activity.
func newPublishParams(cmd *cobra.Command, target string) (publishParams, error) {
	revert, _ := cmd.Flags().GetString("revert")
	progressFlag, _ := cmd.Flags().GetBool("progress")
	canonical, _ := cmd.Flags().GetString("canonical")
	replace, _ := cmd.Flags().GetBool("replace")
	yes, _ := cmd.Flags().GetBool("yes")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	stderr := cmd.ErrOrStderr()
	cfg := config.Get()

	man, err := loadManifest(stderr)
	if err != nil {
		return publishParams{}, err
	}

	// The environment wins over the config file so CI jobs can inject
	// credentials without writing them to disk.
	apiKey := os.Getenv("FREIGHT_API_KEY")
	if apiKey == "" {
		apiKey = string(cfg.Registry.APIKey)
	}
	if apiKey == "" && !dryRun {
		renderIssueCard(stderr, issue.APIKeyMissingId)
		return publishParams{}, issue.NewErrorContext().
			WithOperation("authenticate with the registry").
			WithSuggestion("Set the FREIGHT_API_KEY environment variable").
			WithSuggestion("Or add registry.api_key to your config file").
			BuildError()
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "freight",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	opts := []registry.Option{
		registry.WithUserAgent("freight/" + Version),
		registry.WithAPIKey(apiKey),
		registry.WithLogger(logger),
	}
	if base := os.Getenv("FREIGHT_REGISTRY_URL"); base != "" {
		opts = append(opts, registry.WithBaseURL(base))
	} else if cfg.Registry.URL != "" {
		opts = append(opts, registry.WithBaseURL(string(cfg.Registry.URL)))
	}

	stdoutIsTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	return publishParams{
		stdout:      cmd.OutOrStdout(),
		stderr:      stderr,
		session:     registry.NewSession(opts...),
		man:         man,
		confirm:     tui.Confirm,
		target:      target,
		revert:      revert,
		progress:    progressFlag && cfg.UI.Progress && stdoutIsTTY,
		canonical:   canonical,
		replace:     replace,
		yes:         yes,
		dryRun:      dryRun,
		docsCommand: string(cfg.Docs.Command),
	}, nil
}

// loadManifest reads freight.toml from the working directory, rendering the
// matching issue card when it is missing or malformed.
func loadManifest(stderr io.Writer) (*manifest.Manifest, error) {
	man, err := manifest.Load(manifest.Filename)
	if err == nil {
		return man, nil
	}

	if errors.Is(err, manifest.ErrNotFound) {
		renderIssueCard(stderr, issue.ManifestNotFoundId)
		return nil, issue.NewErrorContext().
			WithOperation("load manifest").
			WithResource(manifest.Filename).
			WithSuggestion("Run 'freight init' to create a starter manifest").
			Wrap(err).
			BuildError()
	}

	renderIssueCard(stderr, issue.ManifestParseErrorId)
	return nil, issue.NewErrorContext().
		WithOperation("load manifest").
		WithResource(manifest.Filename).
		WithSuggestion("Fix the reported field and retry").
		Wrap(err).
		BuildError()
}

// renderIssueCard prints the catalog entry for id. Card rendering is
// best-effort; a rendering failure must not mask the underlying error.
func renderIssueCard(w io.Writer, id issue.Id) {
	rendered, err := issue.Get(id).Render("dark")
	if err != nil {
		return
	}
	fmt.Fprint(w, rendered)
}

// runPublish is the core publish logic, separated from Cobra for
// testability. All user-facing output goes through p.stdout and p.stderr.
func runPublish(ctx context.Context, p publishParams) error {
	err := dispatchPublish(ctx, p)
	if errors.Is(err, errDeclined) {
		return nil
	}
	return err
}

// dispatchPublish routes one invocation to the create or revert flows.
//
// The no-argument forms operate on both artifacts: create runs the package
// step and then the docs step, revert deletes the release and then the docs.
// The two registry calls are independent; see the per-branch comments for
// what stops the sequence and what does not.
func dispatchPublish(ctx context.Context, p publishParams) error {
	if p.revert != "" {
		version, err := manifest.CanonicalVersion(p.revert)
		if err != nil {
			return err
		}

		switch p.target {
		case targetPackage:
			return revertRelease(ctx, p, version)
		case targetDocs:
			return revertDocs(ctx, p, version)
		default:
			// Both deletions always run, release first. A failed one is
			// reported by the flow and never stops the other.
			releaseErr := revertRelease(ctx, p, version)
			docsErr := revertDocs(ctx, p, version)
			return errors.Join(releaseErr, docsErr)
		}
	}

	switch p.target {
	case targetPackage:
		return createPackage(ctx, p)
	case targetDocs:
		return createDocs(ctx, p)
	default:
		if err := createPackage(ctx, p); err != nil {
			var callErr *registryError
			if !errors.As(err, &callErr) {
				// Declined confirmation and local failures stop the whole
				// invocation. Only a failed registry call leaves the docs
				// step worth attempting.
				return err
			}
			return errors.Join(err, createDocs(ctx, p))
		}
		return createDocs(ctx, p)
	}
}

// classifyPublishExitCode maps a publish error to the process exit code.
// User-correctable problems (usage, manifest, generator, credentials) use
// exit code 1; failed registry calls and unexpected errors use exit code 2.
func classifyPublishExitCode(err error) int {
	// A failed registry call dominates: the combined flows can join one
	// with a user-correctable error from the other step.
	var callErr *registryError
	if errors.As(err, &callErr) {
		return 2
	}

	var actionable *issue.ActionableError
	switch {
	case errors.As(err, &actionable),
		errors.Is(err, errUsage),
		errors.Is(err, errDocsNotPublished),
		errors.Is(err, manifest.ErrNotFound),
		errors.Is(err, manifest.ErrInvalidVersion),
		errors.Is(err, manifest.ErrNoMatches),
		errors.Is(err, manifest.ErrNoFiles),
		errors.Is(err, docset.ErrGeneratorNotFound),
		errors.Is(err, docset.ErrNoOutputDir),
		errors.Is(err, docset.ErrNoIndex):
		return 1
	default:
		return 2
	}
}

// formatPublishError produces the final error line for the command, or ""
// when the flow already rendered the failure in sequence with its output.
func formatPublishError(err error) string {
	var callErr *registryError
	if errors.As(err, &callErr) {
		return ""
	}
	if errors.Is(err, errDocsNotPublished) {
		return ""
	}
	return formatErrorForDisplay(err, verbose)
}
