package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/require"
)

// TestPackagePath verifies the package extension replaces any existing one.
func TestPackagePath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "demo.unitypackage", PackagePath("demo"))
	require.Equal(t, "demo.unitypackage", PackagePath("demo.tar"))
	require.Equal(t, "out/demo.unitypackage", PackagePath("out/demo.unitypackage"))
	require.Equal(t, "demo.v1.unitypackage", PackagePath("demo.v1.zip"))
}

// TestCreate_ReplacesExistingFile ensures previous contents are not merged into the new package.
func TestCreate_ReplacesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "demo.unitypackage")
	require.NoError(t, os.WriteFile(path, []byte("stale package contents"), 0o600))

	f, err := Create(path)
	require.NoError(t, err)

	_, err = f.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(contents))

	// Lock file is cleaned up.
	_, err = os.Stat(path + lockSuffix)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestCreate_ReplacesDirectory checks that a directory at the target path is removed.
func TestCreate_ReplacesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "demo.unitypackage")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "nested", "file"), []byte("x"), 0o600))

	f, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, info.Mode().IsRegular())
}

// TestCreate_Locked verifies a second writer is rejected while the lock is held.
func TestCreate_Locked(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "demo.unitypackage")

	other := flock.New(path + lockSuffix)
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)

	f, err := Create(path)
	require.ErrorIs(t, err, ErrLocked)
	require.Nil(t, f)

	require.NoError(t, other.Unlock())
}

// TestDiscard removes the incomplete package.
func TestDiscard(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "demo.unitypackage")

	f, err := Create(path)
	require.NoError(t, err)
	require.Equal(t, path, f.Name())
	require.NoError(t, f.Discard())

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}
