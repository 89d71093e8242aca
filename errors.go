package arc

import (
	"errors"
	"fmt"
)

var (
	// ErrNilEntry is returned when a nil file or directory is queued.
	ErrNilEntry = errors.New("arc: nil entry")

	// ErrAborted is returned when a failure handler or a cancel predicate
	// stops the build. The archive output is discarded.
	ErrAborted = errors.New("arc: build aborted")

	// ErrDuplicateName is returned when a directory already contains a
	// child with the same name.
	ErrDuplicateName = errors.New("arc: duplicate name")
)

// FileError reports a failure opening or reading a queued file. Path is the
// archive-relative name of the file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("arc: file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// WriteError reports a failure writing to the archive container or the
// destination file. Write failures are never offered to a failure handler;
// they are not specific to one source file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("arc: write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
