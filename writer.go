package arc

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies an archive container and compression pairing.
type Format uint8

const (
	// FormatZip produces a zip archive with deflate-compressed entries.
	FormatZip Format = iota

	// FormatTarZstd produces a zstd-compressed tar stream.
	FormatTarZstd

	// FormatTarLZ4 produces an lz4-compressed tar stream.
	FormatTarLZ4
)

// String returns the conventional file extension for the format.
func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTarZstd:
		return "tar.zst"
	case FormatTarLZ4:
		return "tar.lz4"
	default:
		return "unknown"
	}
}

// Writer consumes named entries and produces one compressed container.
//
// CreateEntry starts the next entry and returns the writer for its bytes;
// starting an entry finishes the previous one. Entry names pass through
// unmodified, including non-ASCII names; size must match the bytes
// subsequently written (the tar formats encode it in the entry header).
// Close finalizes the container without closing the underlying writer.
type Writer interface {
	CreateEntry(name string, size int64) (io.Writer, error)
	Close() error
}

// newFormatWriter constructs the Writer for f writing to w.
func newFormatWriter(f Format, w io.Writer) (Writer, error) {
	switch f {
	case FormatZip:
		return NewZipWriter(w), nil
	case FormatTarZstd:
		return NewTarZstdWriter(w)
	case FormatTarLZ4:
		return NewTarLZ4Writer(w), nil
	default:
		return nil, fmt.Errorf("arc: unknown format %d", f)
	}
}

// zipWriter writes entries into a zip container.
type zipWriter struct {
	zw *zip.Writer
}

// NewZipWriter creates a Writer producing a zip archive on w. Entries are
// deflate-compressed.
func NewZipWriter(w io.Writer) Writer {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})
	return &zipWriter{zw: zw}
}

func (w *zipWriter) CreateEntry(name string, _ int64) (io.Writer, error) {
	return w.zw.Create(name)
}

func (w *zipWriter) Close() error {
	return w.zw.Close()
}

// tarWriter writes entries into a tar stream through a compressor.
type tarWriter struct {
	tw   *tar.Writer
	comp io.Closer
}

// NewTarZstdWriter creates a Writer producing a zstd-compressed tar stream
// on w.
func NewTarZstdWriter(w io.Writer) (Writer, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1), zstd.WithLowerEncoderMem(true))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	return &tarWriter{tw: tar.NewWriter(enc), comp: enc}, nil
}

// NewTarLZ4Writer creates a Writer producing an lz4-compressed tar stream
// on w.
func NewTarLZ4Writer(w io.Writer) Writer {
	lw := lz4.NewWriter(w)
	return &tarWriter{tw: tar.NewWriter(lw), comp: lw}
}

func (w *tarWriter) CreateEntry(name string, size int64) (io.Writer, error) {
	hdr := &tar.Header{
		Name:     name,
		Size:     size,
		Mode:     0o644,
		ModTime:  time.Now(),
		Typeflag: tar.TypeReg,
		Format:   tar.FormatPAX,
	}
	if err := w.tw.WriteHeader(hdr); err != nil {
		return nil, err
	}
	return w.tw, nil
}

func (w *tarWriter) Close() error {
	if err := w.tw.Close(); err != nil {
		w.comp.Close()
		return err
	}
	return w.comp.Close()
}
