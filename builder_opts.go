package arc

import (
	"io"
	"log/slog"

	"github.com/meigma/arc/internal/stream"
)

// DefaultChunkSize is the copy chunk size used when BuildWithChunkSize is
// not set.
const DefaultChunkSize = stream.DefaultChunkSize

// buildConfig holds configuration for one Build call.
type buildConfig struct {
	format    Format
	chunkSize int
	progress  ProgressFunc
	onFailure FailureFunc
	cancel    func() bool
	newWriter func(io.Writer) (Writer, error)
	logger    *slog.Logger
}

// BuildOption configures a single Build call.
type BuildOption func(*buildConfig)

// BuildWithFormat selects the archive container format.
// FormatZip is the default.
func BuildWithFormat(f Format) BuildOption {
	return func(cfg *buildConfig) {
		cfg.format = f
	}
}

// BuildWithChunkSize sets the copy chunk size in bytes. Progress events
// fire once per chunk, so smaller chunks mean finer-grained progress at the
// cost of more callback invocations. Zero or negative uses
// DefaultChunkSize.
func BuildWithChunkSize(n int) BuildOption {
	return func(cfg *buildConfig) {
		cfg.chunkSize = n
	}
}

// BuildWithProgress registers a callback for build progress events.
func BuildWithProgress(fn ProgressFunc) BuildOption {
	return func(cfg *buildConfig) {
		cfg.progress = fn
	}
}

// BuildWithOnFailure registers the handler consulted when opening a file
// fails. Without a handler, the first open failure fails the build.
func BuildWithOnFailure(fn FailureFunc) BuildOption {
	return func(cfg *buildConfig) {
		cfg.onFailure = fn
	}
}

// BuildWithCancel registers a predicate consulted on every progress
// notification. When it returns true the build stops with ErrAborted and
// the output is discarded. Cancellation is observed at chunk boundaries,
// not mid-chunk.
func BuildWithCancel(fn func() bool) BuildOption {
	return func(cfg *buildConfig) {
		cfg.cancel = fn
	}
}

// BuildWithWriter supplies a custom archive writer constructor, overriding
// the configured format. The constructor receives the destination stream.
func BuildWithWriter(fn func(io.Writer) (Writer, error)) BuildOption {
	return func(cfg *buildConfig) {
		cfg.newWriter = fn
	}
}

// BuildWithLogger sets the logger for build instrumentation. A nil logger
// discards all output.
func BuildWithLogger(logger *slog.Logger) BuildOption {
	return func(cfg *buildConfig) {
		cfg.logger = logger
	}
}
