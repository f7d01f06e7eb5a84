// SPDX-License-Identifier: MPL-2.0

package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"freight-cli/internal/testutil"
)

func TestMustChdirRestoresOriginalDirectory(t *testing.T) {
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}

	dir := t.TempDir()
	cleanup := testutil.MustChdir(t, dir)

	got, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}
	// TempDir may be behind a symlink (macOS), so compare resolved paths.
	wantResolved, _ := filepath.EvalSymlinks(dir)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("got working directory %s, want %s", gotResolved, wantResolved)
	}

	cleanup()

	got, err = os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}
	if got != originalWd {
		t.Errorf("got working directory %s after cleanup, want %s", got, originalWd)
	}
}

func TestMustSetenvRestoresPreviousValue(t *testing.T) {
	const key = "FREIGHT_TESTUTIL_SETENV"

	if err := os.Setenv(key, "before"); err != nil {
		t.Fatalf("failed to seed env: %v", err)
	}
	defer os.Unsetenv(key)

	cleanup := testutil.MustSetenv(t, key, "after")
	if got := os.Getenv(key); got != "after" {
		t.Errorf("got %q, want %q", got, "after")
	}

	cleanup()
	if got := os.Getenv(key); got != "before" {
		t.Errorf("got %q after cleanup, want %q", got, "before")
	}
}

func TestMustUnsetenvRestoresValue(t *testing.T) {
	const key = "FREIGHT_TESTUTIL_UNSETENV"

	if err := os.Setenv(key, "value"); err != nil {
		t.Fatalf("failed to seed env: %v", err)
	}
	defer os.Unsetenv(key)

	cleanup := testutil.MustUnsetenv(t, key)
	if _, ok := os.LookupEnv(key); ok {
		t.Error("variable still set after MustUnsetenv")
	}

	cleanup()
	if got := os.Getenv(key); got != "value" {
		t.Errorf("got %q after cleanup, want %q", got, "value")
	}
}

func TestMustMkdirAllCreatesNestedDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	testutil.MustMkdirAll(t, nested, 0o755)

	info, err := os.Stat(nested)
	if err != nil {
		t.Fatalf("stat %s: %v", nested, err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", nested)
	}
}
