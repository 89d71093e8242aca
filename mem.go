package arc

import (
	"bytes"
	"fmt"
	"io"
)

// MemFile is a File backed by an in-memory byte slice. Open returns a fresh
// reader on every call, so the same MemFile can be archived repeatedly.
type MemFile struct {
	name   string
	data   []byte
	parent *MemDir
}

// NewMemFile creates a standalone in-memory file. The data slice is not
// copied; callers must not mutate it after construction.
func NewMemFile(name string, data []byte) *MemFile {
	return &MemFile{name: name, data: data}
}

// Name returns the file's display name.
func (f *MemFile) Name() string { return f.name }

// Path returns the file's full name from the root of its tree.
func (f *MemFile) Path() string {
	if f.parent == nil {
		return f.name
	}
	return f.parent.Path() + "/" + f.name
}

// Size returns the length of the backing slice.
func (f *MemFile) Size() int64 { return int64(len(f.data)) }

// Parent returns the containing directory, or nil for a standalone file.
func (f *MemFile) Parent() Dir {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

// Open returns a new reader over the backing slice.
func (f *MemFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// MemDir is a Dir assembled in memory. Children keep insertion order and
// names are unique within a directory.
type MemDir struct {
	name   string
	parent *MemDir
	files  []*MemFile
	dirs   []*MemDir
	names  map[string]struct{}
}

// NewMemDir creates an empty in-memory directory.
func NewMemDir(name string) *MemDir {
	return &MemDir{name: name, names: make(map[string]struct{})}
}

// Name returns the directory's display name.
func (d *MemDir) Name() string { return d.name }

// Path returns the directory's full name from the root of its tree.
func (d *MemDir) Path() string {
	if d.parent == nil {
		return d.name
	}
	return d.parent.Path() + "/" + d.name
}

// Parent returns the containing directory, or nil at the root.
func (d *MemDir) Parent() Dir {
	if d.parent == nil {
		return nil
	}
	return d.parent
}

// Files returns the child files in insertion order.
func (d *MemDir) Files() []File {
	out := make([]File, len(d.files))
	for i, f := range d.files {
		out[i] = f
	}
	return out
}

// Dirs returns the child directories in insertion order.
func (d *MemDir) Dirs() []Dir {
	out := make([]Dir, len(d.dirs))
	for i, sub := range d.dirs {
		out[i] = sub
	}
	return out
}

// AddFile creates a file under d and returns it. The data slice is not
// copied. Fails with ErrDuplicateName if the name is already taken.
func (d *MemDir) AddFile(name string, data []byte) (*MemFile, error) {
	if err := d.claim(name); err != nil {
		return nil, err
	}
	f := &MemFile{name: name, data: data, parent: d}
	d.files = append(d.files, f)
	return f, nil
}

// AddDir creates a subdirectory under d and returns it. Fails with
// ErrDuplicateName if the name is already taken.
func (d *MemDir) AddDir(name string) (*MemDir, error) {
	if err := d.claim(name); err != nil {
		return nil, err
	}
	sub := &MemDir{name: name, parent: d, names: make(map[string]struct{})}
	d.dirs = append(d.dirs, sub)
	return sub, nil
}

func (d *MemDir) claim(name string) error {
	if _, taken := d.names[name]; taken {
		return fmt.Errorf("%w: %s in %s", ErrDuplicateName, name, d.Path())
	}
	d.names[name] = struct{}{}
	return nil
}
