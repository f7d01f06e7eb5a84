// SPDX-License-Identifier: MPL-2.0

package docset

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// writeTree writes the given relative-path -> content files under a fresh
// temp dir and returns the directory.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating parent of %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", rel, err)
		}
	}
	return dir
}

// readArchive decodes archive data into entry name -> content.
func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()

	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("opening gzip stream: %v", err)
	}
	defer func() { _ = gz.Close() }() // test code: read-only stream

	entries := map[string]string{}
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("reading tar entry: %v", err)
		}
		body, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("reading %s: %v", hdr.Name, err)
		}
		entries[hdr.Name] = string(body)
	}
	return entries
}

func TestBuildArchive(t *testing.T) {
	docs := writeTree(t, map[string]string{
		"a.txt":     "x",
		"sub/b.txt": "y",
	})

	// Redirect temp files into a scratch dir so the cleanup guarantee is
	// observable. Setenv rules out t.Parallel here.
	scratch := t.TempDir()
	t.Setenv("TMPDIR", scratch)

	data, err := BuildArchive(docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := readArchive(t, data)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(entries), entries)
	}
	if got := entries["a.txt"]; got != "x" {
		t.Errorf("got a.txt content %q, want %q", got, "x")
	}
	if got := entries["sub/b.txt"]; got != "y" {
		t.Errorf("got sub/b.txt content %q, want %q", got, "y")
	}

	leftover, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatalf("reading scratch dir: %v", err)
	}
	if len(leftover) != 0 {
		t.Errorf("expected no temp files after archiving, found %d", len(leftover))
	}
}

func TestBuildArchive_RemovesTempFileOnFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	scratch := t.TempDir()
	t.Setenv("TMPDIR", scratch)

	if _, err := BuildArchive(missing); err == nil {
		t.Fatal("expected error for missing directory, got nil")
	}

	leftover, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatalf("reading scratch dir: %v", err)
	}
	if len(leftover) != 0 {
		t.Errorf("expected no temp files after failed archiving, found %d", len(leftover))
	}
}

func TestBuildArchive_SkipsSymlinks(t *testing.T) {
	t.Parallel()

	docs := writeTree(t, map[string]string{"index.html": "<html></html>"})
	if err := os.Symlink(filepath.Join(docs, "index.html"), filepath.Join(docs, "link.html")); err != nil {
		t.Skipf("symlinks not supported here: %v", err)
	}

	data, err := BuildArchive(docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := readArchive(t, data)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %v", len(entries), entries)
	}
	if _, ok := entries["link.html"]; ok {
		t.Error("symlink entry should not be archived")
	}
}

func TestBuildArchive_Deterministic(t *testing.T) {
	t.Parallel()

	docs := writeTree(t, map[string]string{
		"index.html":     "<html></html>",
		"css/styles.css": "body {}",
	})

	first, err := BuildArchive(docs)
	if err != nil {
		t.Fatalf("unexpected error on first build: %v", err)
	}
	second, err := BuildArchive(docs)
	if err != nil {
		t.Fatalf("unexpected error on second build: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("archiving the same tree twice produced different bytes")
	}
}
