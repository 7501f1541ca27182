package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestClean(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"designs/logo.png", "designs/logo.png", false},
		{"/designs//logo.png", "designs/logo.png", false},
		{"designs\\logo.png", "designs/logo.png", false},
		{"./a/./b.txt", "a/b.txt", false},
		{"../etc/passwd", "", true},
		{"designs/../../secret", "", true},
		{"", "", true},
		{"/", "", true},
	}
	for _, tt := range tests {
		got, err := Clean(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPath, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLocalDiskPutOpenDelete(t *testing.T) {
	disk, err := NewLocalDisk(t.TempDir())
	require.NoError(t, err)

	rel, err := disk.Put("designs", "Logo.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "designs/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))
	assert.True(t, disk.Exists(rel))

	obj, err := disk.Open(rel)
	require.NoError(t, err)
	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	require.NoError(t, obj.Close())
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, int64(9), obj.Size)

	require.NoError(t, disk.Delete(rel))
	assert.False(t, disk.Exists(rel))
	assert.NoError(t, disk.Delete(rel))

	_, err = disk.Open(rel)
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalDiskRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	disk, err := NewLocalDisk(filepath.Join(root, "app"))
	require.NoError(t, err)
	writeFile(t, root, "secret.txt", "top secret")

	assert.False(t, disk.Exists("../secret.txt"))
	_, err = disk.Open("../secret.txt")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = disk.Put("../outside", "x.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalDiskDirectoryIsNotAFile(t *testing.T) {
	root := t.TempDir()
	disk, err := NewLocalDisk(root)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "designs"), 0o755))

	assert.False(t, disk.Exists("designs"))
	_, err = disk.Open("designs")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	disk, err := NewLocalDisk(root)
	require.NoError(t, err)

	writeFile(t, root, "designs/primary.png", "primary")
	writeFile(t, root, "public/designs/legacy.png", "legacy")
	writeFile(t, root, "designs/both.png", "primary")
	writeFile(t, root, "public/designs/both.png", "public")

	got, err := Resolve(disk, "designs/primary.png")
	require.NoError(t, err)
	assert.Equal(t, "designs/primary.png", got)

	got, err = Resolve(disk, "designs/legacy.png")
	require.NoError(t, err)
	assert.Equal(t, "public/designs/legacy.png", got)

	got, err = Resolve(disk, "designs/both.png")
	require.NoError(t, err)
	assert.Equal(t, "designs/both.png", got)

	_, err = Resolve(disk, "designs/missing.png")
	assert.ErrorIs(t, err, ErrNotExist)

	_, err = Resolve(disk, "../x.png")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
