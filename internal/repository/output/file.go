package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/oshokin/unity-packer/internal/domain/asset"
)

const (
	// PackageExtension is the extension given to every written package.
	PackageExtension = ".unitypackage"

	// DefaultFilePermissions is used for the written package.
	DefaultFilePermissions = 0o644

	// lockSuffix is appended to the package path to name its lock file.
	lockSuffix = ".lock"
)

// ErrLocked is returned when another process is writing the same package.
var ErrLocked = errors.New("package is being written by another process")

// File is an exclusively locked, freshly created package file.
type File struct {
	// path is the package location.
	path string
	// lock guards path against concurrent writers.
	lock *flock.Flock
	// file is the open package.
	file *os.File
}

// PackagePath returns name with its extension replaced by PackageExtension.
func PackagePath(name string) string {
	name = filepath.Clean(name)

	return strings.TrimSuffix(name, filepath.Ext(name)) + PackageExtension
}

// Create locks path, removes any file or directory found there and creates an empty file.
func Create(path string) (*File, error) {
	path = filepath.Clean(path)
	lock := flock.New(path + lockSuffix)

	locked, err := lock.TryLock()
	if err != nil {
		return nil, asset.NewIOError(lock.Path(), fmt.Errorf("acquire lock: %w", err))
	}

	if !locked {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}

	if err = os.RemoveAll(path); err != nil {
		unlock(lock)

		return nil, asset.NewIOError(path, fmt.Errorf("remove previous package: %w", err))
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, DefaultFilePermissions)
	if err != nil {
		unlock(lock)

		return nil, asset.NewIOError(path, err)
	}

	return &File{
		path: path,
		lock: lock,
		file: f,
	}, nil
}

// Name returns the package path.
func (f *File) Name() string {
	return f.path
}

// Write appends p to the package.
func (f *File) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

// Close flushes the package to disk and releases the lock.
func (f *File) Close() error {
	defer unlock(f.lock)

	if err := f.file.Sync(); err != nil {
		_ = f.file.Close()

		return asset.NewIOError(f.path, fmt.Errorf("sync package: %w", err))
	}

	if err := f.file.Close(); err != nil {
		return asset.NewIOError(f.path, fmt.Errorf("close package: %w", err))
	}

	return nil
}

// Discard closes and deletes an incomplete package, then releases the lock.
func (f *File) Discard() error {
	defer unlock(f.lock)

	_ = f.file.Close()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return asset.NewIOError(f.path, fmt.Errorf("remove incomplete package: %w", err))
	}

	return nil
}

// unlock releases the lock and removes the lock file.
func unlock(lock *flock.Flock) {
	_ = lock.Unlock()
	_ = os.Remove(lock.Path())
}
