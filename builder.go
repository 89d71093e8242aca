package arc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/arc/internal/stream"
)

// Builder queues files and directories and writes them into a compressed
// archive. The queue preserves enqueue order; directories are flattened at
// build time.
//
// A Builder is not safe for concurrent use. Run concurrent builds with
// separate Builders.
type Builder struct {
	queue []queued
}

// queued is one enqueued entry: exactly one of file or dir is set.
type queued struct {
	file File
	dir  Dir
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddFile queues a single file. Its archive-relative name is its own name,
// at the archive root. Fails with ErrNilEntry on a nil file.
func (b *Builder) AddFile(f File) error {
	if f == nil {
		return ErrNilEntry
	}
	b.queue = append(b.queue, queued{file: f})
	return nil
}

// AddDirectory queues a directory subtree for recursive flattening at build
// time. The directory's own name becomes the leading path component for all
// of its descendants. Fails with ErrNilEntry on a nil directory.
func (b *Builder) AddDirectory(d Dir) error {
	if d == nil {
		return ErrNilEntry
	}
	b.queue = append(b.queue, queued{dir: d})
	return nil
}

// Build writes all queued entries into an archive and returns its handle.
// The caller must close the handle: output goes to a temporary file next to
// dest and is only renamed into place by Close, so a failed or aborted
// build leaves nothing at dest.
//
// Build returns *FileError when a file cannot be opened or read and no
// failure handler chose to skip it, *WriteError when the archive container
// or destination cannot be written, ErrAborted when a failure handler or
// the cancel predicate stopped the build, and the context error when ctx is
// canceled mid-copy.
func (b *Builder) Build(ctx context.Context, dest string, opts ...BuildOption) (*Archive, error) {
	cfg := buildConfig{format: FormatZip, chunkSize: stream.DefaultChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.chunkSize <= 0 {
		cfg.chunkSize = stream.DefaultChunkSize
	}

	entries := b.flatten()
	var target uint64
	for _, e := range entries {
		if e.file.Size() > 0 {
			target += uint64(e.file.Size())
		}
	}

	s := &buildState{cfg: cfg}
	s.log().Info("building archive",
		"dest", dest, "format", cfg.format.String(), "files", len(entries), "bytes", target)

	a, err := newArchive(dest, cfg.format, cfg.newWriter)
	if err != nil {
		return nil, err
	}
	if err := s.writeAll(ctx, a, entries); err != nil {
		a.discard()
		return nil, err
	}

	s.log().Info("archive built", "dest", dest, "files", len(a.entries), "bytes", s.total)
	return a, nil
}

// flatten expands queued directories and concatenates them with directly
// queued files, preserving enqueue order.
func (b *Builder) flatten() []flatEntry {
	var out []flatEntry
	for _, q := range b.queue {
		if q.file != nil {
			out = append(out, flatEntry{name: q.file.Name(), file: q.file})
			continue
		}
		out = flattenDir(q.dir, "", out)
	}
	return out
}

// buildState holds per-call state for one Build.
type buildState struct {
	cfg   buildConfig
	total uint64
	index int
}

// log returns the logger, falling back to a discard logger if nil.
func (s *buildState) log() *slog.Logger {
	if s.cfg.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.cfg.logger
}

// writeAll streams every flattened entry into the archive in order.
func (s *buildState) writeAll(ctx context.Context, a *Archive, entries []flatEntry) error {
	buf := make([]byte, s.cfg.chunkSize)
	for _, e := range entries {
		src, skip, err := s.open(e)
		if err != nil {
			return err
		}
		if skip {
			continue
		}
		err = s.writeOne(ctx, a, e, src, buf)
		src.Close()
		if err != nil {
			return err
		}
		s.index++
	}
	return nil
}

// open obtains the entry's reader, consulting the failure handler on error.
// A true skip means the handler chose to ignore the file.
func (s *buildState) open(e flatEntry) (io.ReadCloser, bool, error) {
	for attempt := 1; ; attempt++ {
		src, err := e.file.Open()
		if err == nil {
			return src, false, nil
		}
		if s.cfg.onFailure == nil {
			return nil, false, &FileError{Path: e.name, Err: err}
		}
		action := s.cfg.onFailure(Failure{Path: e.name, Attempt: attempt, Err: err})
		switch action {
		case ActionRetry:
			s.log().Debug("retrying file", "path", e.name, "attempt", attempt, "err", err)
		case ActionIgnore:
			s.log().Debug("skipping file", "path", e.name, "err", err)
			return nil, true, nil
		default:
			return nil, false, fmt.Errorf("%s: %w", e.name, ErrAborted)
		}
	}
}

// writeOne streams one file into a new archive entry, emitting progress per
// chunk and recording the entry's digest.
func (s *buildState) writeOne(ctx context.Context, a *Archive, e flatEntry, src io.Reader, buf []byte) error {
	size := e.file.Size()
	if size < 0 {
		return &FileError{Path: e.name, Err: fmt.Errorf("negative file size: %d", size)}
	}

	w, err := a.writer.CreateEntry(e.name, size)
	if err != nil {
		return &WriteError{Path: e.name, Err: err}
	}

	digester := digest.Canonical.Digester()
	dst := io.MultiWriter(w, digester.Hash())

	base := s.total
	n, err := stream.Copy(ctx, dst, io.LimitReader(src, size), buf, func(written uint64) error {
		s.total = base + written
		return s.notify(Progress{
			Path:       e.name,
			FileIndex:  s.index,
			FileBytes:  written,
			TotalBytes: s.total,
		})
	})
	if err != nil {
		var sink *stream.SinkError
		switch {
		case errors.As(err, &sink):
			return &WriteError{Path: e.name, Err: sink.Err}
		case errors.Is(err, ErrAborted), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			return &FileError{Path: e.name, Err: err}
		}
	}
	if n != uint64(size) {
		return &FileError{Path: e.name, Err: fmt.Errorf("size changed during build: expected %d, got %d", size, n)}
	}

	a.entries = append(a.entries, EntryInfo{Name: e.name, Size: n, Digest: digester.Digest()})
	return nil
}

// notify emits the progress event, then consults the cancel predicate.
func (s *buildState) notify(p Progress) error {
	if s.cfg.progress != nil {
		s.cfg.progress(p)
	}
	if s.cfg.cancel != nil && s.cfg.cancel() {
		return fmt.Errorf("%s: %w", p.Path, ErrAborted)
	}
	return nil
}
