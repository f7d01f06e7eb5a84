// SPDX-License-Identifier: MPL-2.0

package docset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"mvdan.cc/sh/v3/shell"

	"freight-cli/internal/manifest"
)

// DefaultCommand is the generator invocation used when neither the manifest
// nor the user configuration overrides it.
const DefaultCommand = "freight-docs build"

// ErrGeneratorNotFound is returned when the resolved generator binary is not
// installed on PATH.
var ErrGeneratorNotFound = errors.New("documentation generator not found")

// Command resolves the generator argv for a manifest. Precedence: the
// manifest's [docs] command, then the configured command, then
// DefaultCommand. The command string is split with shell quoting rules, and
// the canonical URL is appended as a --canonical argument so version alias
// pages can point back at the latest documentation.
func Command(m *manifest.Manifest, configured, canonical string) ([]string, error) {
	raw := m.Docs.Command
	if raw == "" {
		raw = configured
	}
	if raw == "" {
		raw = DefaultCommand
	}

	argv, err := shell.Fields(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing docs command %q: %w", raw, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("docs command %q contains no words", raw)
	}

	return append(argv, "--canonical", canonical), nil
}

// Generate runs the generator argv in dir, streaming its output to the given
// writers. A missing binary reports ErrGeneratorNotFound so callers can show
// installation guidance; a non-zero exit is returned as a plain error.
func Generate(ctx context.Context, dir string, argv []string, stdout, stderr io.Writer) error {
	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("%w: %s", ErrGeneratorNotFound, argv[0])
	}

	cmd := exec.CommandContext(ctx, bin, argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", argv[0], err)
	}
	return nil
}
