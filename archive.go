package arc

import (
	"io"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
)

// EntryInfo describes one entry written to an archive.
type EntryInfo struct {
	// Name is the archive-relative entry name.
	Name string

	// Size is the uncompressed entry size in bytes.
	Size uint64

	// Digest is the canonical digest of the entry's content.
	Digest digest.Digest
}

// Archive is the handle for a build's output. It owns the archive container
// writer and the temporary file backing it.
//
// Close finalizes the container and renames it into place at the
// destination path; until then the destination does not exist. Callers must
// close the handle, or the archive is never published.
type Archive struct {
	writer  Writer
	f       *os.File
	tmp     string
	dest    string
	entries []EntryInfo
}

// newArchive creates the temporary output file next to dest and the format
// writer on top of it. A non-nil newWriter overrides the format.
func newArchive(dest string, format Format, newWriter func(io.Writer) (Writer, error)) (*Archive, error) {
	f, err := os.CreateTemp(filepath.Dir(dest), ".arc-*")
	if err != nil {
		return nil, &WriteError{Path: dest, Err: err}
	}
	var w Writer
	if newWriter != nil {
		w, err = newWriter(f)
	} else {
		w, err = newFormatWriter(format, f)
	}
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, &WriteError{Path: dest, Err: err}
	}
	return &Archive{writer: w, f: f, tmp: f.Name(), dest: dest}, nil
}

// Path returns the destination path the archive is published to on Close.
func (a *Archive) Path() string { return a.dest }

// Entries returns the entries written, in archive order.
func (a *Archive) Entries() []EntryInfo { return a.entries }

// Close finalizes the archive container, flushes it to disk, and renames
// the temporary file into place at the destination path. Close is
// idempotent; on error the temporary file is removed and nothing appears at
// the destination.
func (a *Archive) Close() error {
	if a.f == nil {
		return nil
	}
	f := a.f
	a.f = nil
	if err := a.writer.Close(); err != nil {
		f.Close()
		os.Remove(a.tmp)
		return &WriteError{Path: a.dest, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(a.tmp)
		return &WriteError{Path: a.dest, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(a.tmp)
		return &WriteError{Path: a.dest, Err: err}
	}
	if err := os.Rename(a.tmp, a.dest); err != nil {
		os.Remove(a.tmp)
		return &WriteError{Path: a.dest, Err: err}
	}
	return nil
}

// discard releases the container and removes the temporary file. Used on
// failed or aborted builds.
func (a *Archive) discard() {
	if a.f == nil {
		return
	}
	a.writer.Close()
	a.f.Close()
	os.Remove(a.tmp)
	a.f = nil
}
