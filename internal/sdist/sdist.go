// SPDX-License-Identifier: MPL-2.0

package sdist

import (
	"archive/tar"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/pelletier/go-toml/v2"

	"freight-cli/internal/manifest"
)

// MetadataFilename is the name of the release metadata entry embedded in
// every tarball. It is reserved; a package cannot ship a file by that name.
const MetadataFilename = "metadata.toml"

// entryMode is the fixed mode recorded for every archive entry. Fixing it
// keeps archives byte-identical across checkouts and platforms.
const entryMode = 0o644

type (
	// Tarball is an assembled release artifact ready for upload.
	Tarball struct {
		// Name is the artifact filename, <package>-<version>.tar.gz.
		Name string
		// Data is the complete tar.gz byte stream.
		Data []byte
		// Checksum is the lowercase hex SHA256 of Data.
		Checksum string
	}

	// metadata is the TOML document embedded as metadata.toml. Dependency
	// requirements are keyed by package name; go-toml emits map keys in
	// sorted order, which keeps the document reproducible.
	metadata struct {
		Name         string            `toml:"name"`
		Version      string            `toml:"version"`
		Description  string            `toml:"description,omitempty"`
		Licenses     []string          `toml:"licenses,omitempty"`
		Links        map[string]string `toml:"links,omitempty"`
		Dependencies map[string]string `toml:"dependencies,omitempty"`
	}

	// entry is one file staged for the archive.
	entry struct {
		path string
		data []byte
	}
)

// Create assembles the release tarball from a manifest and its resolved file
// list. Entries are sorted by path, timestamps are pinned to the epoch, modes
// are fixed, and the gzip stream carries no modification time, so rebuilding
// from identical inputs yields identical bytes.
func Create(m *manifest.Manifest, files []manifest.FileEntry) (*Tarball, error) {
	meta, err := marshalMetadata(m)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", MetadataFilename, err)
	}

	entries := make([]entry, 0, len(files)+1)
	entries = append(entries, entry{path: MetadataFilename, data: meta})

	for _, f := range files {
		if f.RelPath == MetadataFilename {
			return nil, fmt.Errorf("%s is reserved for release metadata", MetadataFilename)
		}
		data, err := os.ReadFile(filepath.Join(m.Dir, filepath.FromSlash(f.RelPath)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.RelPath, err)
		}
		entries = append(entries, entry{path: f.RelPath, data: data})
	}

	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.path, b.path)
	})

	data, err := writeArchive(entries)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	return &Tarball{
		Name:     fmt.Sprintf("%s-%s.tar.gz", m.EffectiveName(), m.Version),
		Data:     data,
		Checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// marshalMetadata renders the embedded metadata document. Only publishable
// dependencies appear; git and path sources never reach the registry.
func marshalMetadata(m *manifest.Manifest) ([]byte, error) {
	included, _ := m.SplitDependencies()
	deps := make(map[string]string, len(included))
	for _, d := range included {
		deps[d.Name] = d.Requirement
	}

	return toml.Marshal(metadata{
		Name:         m.EffectiveName(),
		Version:      m.Version,
		Description:  m.Description,
		Licenses:     m.Package.Licenses,
		Links:        m.Package.Links,
		Dependencies: deps,
	})
}

// writeArchive renders the sorted entries into an in-memory tar.gz stream.
func writeArchive(entries []entry) ([]byte, error) {
	var buf bytes.Buffer

	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		hdr := &tar.Header{
			Name:     e.path,
			Mode:     entryMode,
			Size:     int64(len(e.data)),
			// The epoch rather than the zero time: USTAR cannot encode
			// negative timestamps, and the zero time would force a PAX
			// extension record per entry.
			ModTime:  time.Unix(0, 0),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, fmt.Errorf("writing header for %s: %w", e.path, err)
		}
		if _, err := tw.Write(e.data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", e.path, err)
		}
	}

	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("closing tar stream: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("closing gzip stream: %w", err)
	}

	return buf.Bytes(), nil
}
