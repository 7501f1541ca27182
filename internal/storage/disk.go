package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the directory tried when a stored path is not found at
// the disk root.
const PublicPrefix = "public/"

var (
	ErrInvalidPath = errors.New("path escapes storage root")
	ErrNotExist    = errors.New("file does not exist")
)

// Object is an opened stored file.
type Object struct {
	io.ReadCloser
	Name string
	Size int64
}

// Disk stores files under relative, slash-separated paths.
type Disk interface {
	Exists(p string) bool
	Open(p string) (*Object, error)
	Put(dir, filename string, r io.Reader) (string, error)
	Delete(p string) error
}

// LocalDisk is a Disk backed by a directory on the local filesystem.
type LocalDisk struct {
	root string
}

func NewLocalDisk(root string) (*LocalDisk, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalDisk{root: abs}, nil
}

func (d *LocalDisk) Root() string {
	return d.root
}

// Clean normalizes a relative storage path. Paths that would leave the root
// are rejected.
func Clean(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" {
		return "", ErrInvalidPath
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+p), "/")
	if cleaned == "" {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

func (d *LocalDisk) abs(p string) (string, error) {
	cleaned, err := Clean(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.root, filepath.FromSlash(cleaned)), nil
}

// Exists reports whether p names a regular file on the disk.
func (d *LocalDisk) Exists(p string) bool {
	full, err := d.abs(p)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.Mode().IsRegular()
}

func (d *LocalDisk) Open(p string) (*Object, error) {
	full, err := d.abs(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, ErrNotExist
	}
	return &Object{ReadCloser: f, Name: info.Name(), Size: info.Size()}, nil
}

// Put writes r under dir with a generated unique name that keeps the
// extension of filename, and returns the relative path.
func (d *LocalDisk) Put(dir, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	rel := uuid.NewString() + ext
	if dir != "" {
		cleanedDir, err := Clean(dir)
		if err != nil {
			return "", err
		}
		rel = cleanedDir + "/" + rel
	}

	full, err := d.abs(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("close file: %w", err)
	}
	return rel, nil
}

// Delete removes p. Missing files are not an error.
func (d *LocalDisk) Delete(p string) error {
	full, err := d.abs(p)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Resolve returns p when it exists on the disk, otherwise the public/
// variant of p when that exists.
func Resolve(disk Disk, p string) (string, error) {
	cleaned, err := Clean(p)
	if err != nil {
		return "", err
	}
	if disk.Exists(cleaned) {
		return cleaned, nil
	}
	fallback := PublicPrefix + cleaned
	if disk.Exists(fallback) {
		return fallback, nil
	}
	return "", ErrNotExist
}
