package integration

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/unity-packer/internal/config"
	"github.com/oshokin/unity-packer/internal/service/packager"
)

// TestPackager_FromProjectDirectory packs a project the way the CLI is used from a
// Unity project folder: relative paths, the default analysed path and a settings file.
func TestPackager_FromProjectDirectory(t *testing.T) {
	// Run from inside the project directory.
	chdir(t, t.TempDir())

	// A small project; Editor scripts are excluded by the settings file.
	files := map[string]string{
		"Assets/Scripts.meta":                "fileFormatVersion: 2\nguid: 11111111111111111111111111111111\nfolderAsset: yes\n",
		"Assets/Scripts/Player.cs":           "public class Player {}",
		"Assets/Scripts/Player.cs.meta":      "\ufefffileFormatVersion: 2\nguid: 22222222222222222222222222222222\n",
		"Assets/Editor/PlayerEditor.cs":      "public class PlayerEditor {}",
		"Assets/Editor/PlayerEditor.cs.meta": "fileFormatVersion: 2\nguid: 33333333333333333333333333333333\n",
	}
	for name, contents := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
		require.NoError(t, os.WriteFile(name, []byte(contents), 0o600))
	}

	settings := config.Default()
	settings.Exclude = []string{"Editor/**"}
	settings.Reproducible = true
	require.NoError(t, config.Save(config.DefaultConfigFilename, settings))

	// Run packager with timeout context.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	options := &packager.Options{
		PackageName: "Player",
		ProjectRoot: ".",
	}

	require.NoError(t, packager.Run(ctx, options))

	// Verify the package was written with the expected members.
	pathnames := readPathnames(t, "Player.unitypackage")
	require.Equal(t, map[string]string{
		"11111111111111111111111111111111/pathname": "Assets/Scripts",
		"22222222222222222222222222222222/pathname": "Assets/Scripts/Player.cs",
	}, pathnames)
}

// readPathnames returns the pathname members of a package.
func readPathnames(t *testing.T, path string) map[string]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer func() {
		_ = f.Close()
	}()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	pathnames := make(map[string]string)
	tr := tar.NewReader(gz)

	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return pathnames
		}

		require.NoError(t, err)

		if filepath.Base(hdr.Name) != "pathname" {
			continue
		}

		data, err := io.ReadAll(tr)
		require.NoError(t, err)

		pathnames[hdr.Name] = string(data)
	}
}

// chdir changes the working directory for the duration of the test, like t.Chdir.
func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
