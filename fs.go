package arc

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// fsFile is a File backed by a filesystem. The size is captured at
// construction so the length reported before Open matches the stream.
type fsFile struct {
	fsys   afero.Fs
	path   string
	name   string
	size   int64
	parent *fsDir
}

func (f *fsFile) Name() string { return f.name }
func (f *fsFile) Path() string { return f.path }
func (f *fsFile) Size() int64  { return f.size }

func (f *fsFile) Parent() Dir {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *fsFile) Open() (io.ReadCloser, error) {
	return f.fsys.Open(f.path)
}

// fsDir is a Dir backed by a filesystem. The subtree is read once at
// construction: children are ordered by name and the tree is a snapshot,
// later filesystem changes are not observed.
type fsDir struct {
	fsys   afero.Fs
	path   string
	name   string
	parent *fsDir
	files  []File
	dirs   []Dir
}

func (d *fsDir) Name() string { return d.name }
func (d *fsDir) Path() string { return d.path }

func (d *fsDir) Parent() Dir {
	if d.parent == nil {
		return nil
	}
	return d.parent
}

func (d *fsDir) Files() []File { return d.files }
func (d *fsDir) Dirs() []Dir   { return d.dirs }

// NewOSFile creates a File for a path on the real filesystem.
func NewOSFile(path string) (File, error) {
	return NewFSFile(afero.NewOsFs(), path)
}

// NewOSDir creates a Dir for a directory on the real filesystem. The
// subtree is enumerated immediately.
func NewOSDir(path string) (Dir, error) {
	return NewFSDir(afero.NewOsFs(), path)
}

// NewFSFile creates a File for a path on fsys.
func NewFSFile(fsys afero.Fs, path string) (File, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("arc: %s is a directory", path)
	}
	return &fsFile{fsys: fsys, path: path, name: info.Name(), size: info.Size()}, nil
}

// NewFSDir creates a Dir for a directory on fsys, enumerating the whole
// subtree immediately. Regular files are included; symlinks and other
// irregular entries are skipped.
func NewFSDir(fsys afero.Fs, path string) (Dir, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("arc: %s is not a directory", path)
	}
	d := &fsDir{fsys: fsys, path: path, name: info.Name()}
	if err := d.load(); err != nil {
		return nil, err
	}
	return d, nil
}

// load reads the directory and recurses into subdirectories.
func (d *fsDir) load() error {
	infos, err := afero.ReadDir(d.fsys, d.path)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", d.path, err)
	}
	for _, info := range infos {
		child := filepath.Join(d.path, info.Name())
		switch {
		case info.IsDir():
			sub := &fsDir{fsys: d.fsys, path: child, name: info.Name(), parent: d}
			if err := sub.load(); err != nil {
				return err
			}
			d.dirs = append(d.dirs, sub)
		case info.Mode().IsRegular():
			d.files = append(d.files, &fsFile{
				fsys:   d.fsys,
				path:   child,
				name:   info.Name(),
				size:   info.Size(),
				parent: d,
			})
		}
	}
	return nil
}
