package filesystem

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/lmcintyre/AnimAssist/pkg/errors"
)

// FS is the file access workflows need.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	// WriteFileAtomic writes data to a sibling temporary file and renames
	// it over name, so name is either untouched or complete.
	WriteFileAtomic(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	Rename(oldpath, newpath string) error
}

// aferoFS implements FS using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) FS {
	return &aferoFS{fs: fs}
}

// NewOS creates a filesystem backed by the operating system
func NewOS() FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewMemory creates an empty in-memory filesystem
func NewMemory() FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) WriteFileAtomic(name string, data []byte, perm fs.FileMode) error {
	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}

	tmp, err := afero.TempFile(a.fs, dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = a.fs.Chmod(tmpName, perm)
	}
	if err == nil {
		err = a.fs.Rename(tmpName, name)
	}
	if err != nil {
		_ = a.fs.Remove(tmpName)
		return err
	}
	return nil
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}

// RequireFiles fails with ErrFileNotFound naming every path that does not
// exist as a regular file.
func RequireFiles(fsys FS, paths ...string) error {
	var missing []string
	for _, p := range paths {
		info, err := fsys.Stat(p)
		if err != nil || info.IsDir() {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrFileNotFound, "all input files must exist, missing: %v", missing).
			WithDetail("missing", missing)
	}
	return nil
}

// ReadInput reads an input file, mapping failures to coded errors.
func ReadInput(fsys FS, path, what string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if stderrors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "%s file %s does not exist", what, path).
			WithDetail("path", path)
	}
	return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s file %s", what, path).
		WithDetail("path", path)
}
