package arc

// Progress is a snapshot of build progress. One event fires after every
// copied chunk and one more when the current file completes, so every file,
// including an empty one, produces at least one event.
type Progress struct {
	// Path is the archive-relative name of the file being written.
	Path string

	// FileIndex is the zero-based index of the current file among files
	// actually written. Ignored files do not consume an index.
	FileIndex int

	// FileBytes is the number of bytes written so far for the current file.
	FileBytes uint64

	// TotalBytes is the number of bytes written across the whole build so
	// far. It is monotonically non-decreasing.
	TotalBytes uint64
}

// ProgressFunc receives progress updates during a build. It is called
// synchronously from the copy loop; a slow callback slows the build.
type ProgressFunc func(Progress)
