package arc

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestTree assembles root/{file1, dir1/{file2,file3}, dir2/dir2/dir2/{file1,file2}}.
func buildTestTree(t *testing.T) *MemDir {
	t.Helper()

	root := NewMemDir("root")
	_, err := root.AddFile("file1", []byte("one"))
	require.NoError(t, err)

	dir1, err := root.AddDir("dir1")
	require.NoError(t, err)
	_, err = dir1.AddFile("file2", []byte("two"))
	require.NoError(t, err)
	_, err = dir1.AddFile("file3", []byte("three"))
	require.NoError(t, err)

	dir2, err := root.AddDir("dir2")
	require.NoError(t, err)
	mid, err := dir2.AddDir("dir2")
	require.NoError(t, err)
	deep, err := mid.AddDir("dir2")
	require.NoError(t, err)
	_, err = deep.AddFile("file1", []byte("deep one"))
	require.NoError(t, err)
	_, err = deep.AddFile("file2", []byte("deep two"))
	require.NoError(t, err)

	return root
}

func flatNames(entries []flatEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

func TestFlattenDir(t *testing.T) {
	t.Parallel()

	root := buildTestTree(t)
	entries := flattenDir(root, "", nil)

	want := []string{
		"root/file1",
		"root/dir1/file2",
		"root/dir1/file3",
		"root/dir2/dir2/dir2/file1",
		"root/dir2/dir2/dir2/file2",
	}
	if diff := cmp.Diff(want, flatNames(entries)); diff != "" {
		t.Errorf("flattened names mismatch (-want +got):\n%s", diff)
	}
}

func TestMemDirDuplicateName(t *testing.T) {
	t.Parallel()

	d := NewMemDir("root")
	_, err := d.AddFile("a", nil)
	require.NoError(t, err)

	_, err = d.AddFile("a", []byte("again"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	// A directory may not reuse a file's name either.
	_, err = d.AddDir("a")
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = d.AddDir("b")
	require.NoError(t, err)
	_, err = d.AddDir("b")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestMemFileOpenIsFresh(t *testing.T) {
	t.Parallel()

	f := NewMemFile("a.txt", []byte("hello"))

	for i := 0; i < 2; i++ {
		r, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
		require.NoError(t, r.Close())
	}
}

func TestMemTreeNavigation(t *testing.T) {
	t.Parallel()

	root := buildTestTree(t)
	dir1 := root.Dirs()[0]
	file2 := dir1.Files()[0]

	assert.Equal(t, "root/dir1", dir1.Path())
	assert.Equal(t, "root/dir1/file2", file2.Path())
	assert.Equal(t, dir1, file2.Parent())
	assert.Equal(t, Dir(root), dir1.Parent())
	assert.Nil(t, root.Parent())

	standalone := NewMemFile("solo", nil)
	assert.Nil(t, standalone.Parent())
	assert.Equal(t, "solo", standalone.Path())
}

func TestNewFSDir(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("root/sub", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "root/a.txt", []byte("alpha"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "root/sub/b.txt", []byte("beta"), 0o644))

	d, err := NewFSDir(fsys, "root")
	require.NoError(t, err)

	entries := flattenDir(d, "", nil)
	assert.Equal(t, []string{"root/a.txt", "root/sub/b.txt"}, flatNames(entries))

	f := entries[0].file
	assert.Equal(t, int64(5), f.Size())
	r, err := f.Open()
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "alpha", string(data))
}

func TestNewFSDirNotADirectory(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "plain", []byte("x"), 0o644))

	_, err := NewFSDir(fsys, "plain")
	assert.Error(t, err)

	_, err = NewFSDir(fsys, "missing")
	assert.Error(t, err)
}

func TestNewOSDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.txt"), []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "leaf.txt"), []byte("leaf"), 0o644))

	d, err := NewOSDir(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), d.Name())

	entries := flattenDir(d, "", nil)
	want := []string{
		filepath.Base(dir) + "/nested/leaf.txt",
		filepath.Base(dir) + "/top.txt",
	}
	assert.ElementsMatch(t, want, flatNames(entries))
}

func TestNewFSFile(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "data.bin", []byte{1, 2, 3}, 0o644))
	require.NoError(t, fsys.MkdirAll("d", 0o755))

	f, err := NewFSFile(fsys, "data.bin")
	require.NoError(t, err)
	assert.Equal(t, "data.bin", f.Name())
	assert.Equal(t, int64(3), f.Size())

	_, err = NewFSFile(fsys, "d")
	assert.Error(t, err)
	_, err = NewFSFile(fsys, "missing")
	assert.Error(t, err)
}
