// Package fs wraps the filesystem calls debugd makes at startup and shutdown.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/fx"
	"go.uber.org/multierr"
)

//go:generate mockgen -destination=fsmock/fs_mock.go -package=fsmock . DebugdFS

// Module is the Fx module for this package.
var Module = fx.Provide(New)

const (
	_dirMode  os.FileMode = 0o755
	_fileMode os.FileMode = 0o644
)

// DebugdFS covers the log folder, the server info file and the configuration directory.
type DebugdFS interface {
	// MkdirAll creates a directory and all its parents.
	MkdirAll(path string) error
	// FileExists reports whether path exists and is a regular file.
	FileExists(path string) (bool, error)
	ReadFile(name string) ([]byte, error)
	// WriteFileAtomic replaces name with data so readers never observe a partial file.
	WriteFileAtomic(name string, data []byte) error
	// Remove deletes name. A missing file is not an error.
	Remove(name string) error
}

type osFS struct{}

// New creates a DebugdFS backed by the os package.
func New() DebugdFS {
	return osFS{}
}

func (osFS) MkdirAll(path string) error { return os.MkdirAll(path, _dirMode) }

func (osFS) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (osFS) WriteFileAtomic(name string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, ignoreNotExist(os.Remove(tmp.Name())))
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return multierr.Append(err, tmp.Close())
	}
	if err = tmp.Chmod(_fileMode); err != nil {
		return multierr.Append(err, tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}

func (osFS) Remove(name string) error {
	return ignoreNotExist(os.Remove(name))
}

func ignoreNotExist(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
