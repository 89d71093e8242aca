// Package stream implements the chunked copy loop used by the archive
// builder.
package stream

import (
	"context"
	"io"
)

// DefaultChunkSize is the copy chunk size used when none is configured.
const DefaultChunkSize = 64 * 1024

// SinkError wraps a failure on the destination side of a copy so callers
// can tell write failures apart from source read failures.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string { return e.Err.Error() }
func (e *SinkError) Unwrap() error { return e.Err }

// Copy streams src into dst in chunks of len(buf) bytes, checking for
// context cancellation before each read. It returns the number of bytes
// written.
//
// fn is invoked with the running byte count after every chunk and once more
// when src is exhausted; a zero-length source produces exactly one fn(0)
// call. A non-nil error from fn stops the copy and is returned unchanged.
func Copy(ctx context.Context, dst io.Writer, src io.Reader, buf []byte, fn func(written uint64) error) (uint64, error) {
	var written uint64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		nr, er := src.Read(buf)
		if nr > 0 {
			nw, ew := dst.Write(buf[:nr])
			if nw > 0 {
				written += uint64(nw)
			}
			if ew != nil {
				return written, &SinkError{Err: ew}
			}
			if nw != nr {
				return written, &SinkError{Err: io.ErrShortWrite}
			}
			if fn != nil {
				if err := fn(written); err != nil {
					return written, err
				}
			}
		}
		if er != nil {
			if er == io.EOF {
				if fn != nil {
					if err := fn(written); err != nil {
						return written, err
					}
				}
				return written, nil
			}
			return written, er
		}
	}
}
