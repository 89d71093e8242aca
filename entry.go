package arc

import "io"

// File is one archivable file. Implementations must report a stable Size:
// the value returned before Open must match the bytes the opened reader
// yields, or the build fails for that file.
type File interface {
	// Name returns the display name, the last element of the path.
	Name() string

	// Path returns the full identifier of the file in its source tree.
	Path() string

	// Size returns the file's length in bytes.
	Size() int64

	// Parent returns the containing directory, or nil for a file that was
	// constructed outside a tree. It exists for navigation only; the file
	// does not own its parent.
	Parent() Dir

	// Open returns a reader over the file's content. The caller closes it.
	Open() (io.ReadCloser, error)
}

// Dir is a directory subtree. Child collections are ordered; a name appears
// at most once per directory.
type Dir interface {
	// Name returns the display name, the last element of the path.
	Name() string

	// Path returns the full identifier of the directory in its source tree.
	Path() string

	// Parent returns the containing directory, or nil at the root.
	Parent() Dir

	// Files returns the child files in order.
	Files() []File

	// Dirs returns the child directories in order.
	Dirs() []Dir
}

// flatEntry pairs a file with its archive-relative entry name.
type flatEntry struct {
	name string
	file File
}

// flattenDir appends dir's subtree to out depth-first, files before child
// directories, each in the order the directory reports them. Entry names
// join the traversal path with "/" and are not cleaned or escaped.
func flattenDir(dir Dir, prefix string, out []flatEntry) []flatEntry {
	prefix += dir.Name()
	for _, f := range dir.Files() {
		out = append(out, flatEntry{name: prefix + "/" + f.Name(), file: f})
	}
	for _, d := range dir.Dirs() {
		out = flattenDir(d, prefix+"/", out)
	}
	return out
}
