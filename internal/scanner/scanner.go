package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/unity-packer/internal/domain/asset"
	"github.com/oshokin/unity-packer/internal/logger"
)

// Scan walks root and returns one entry per descriptor, in lexical walk order.
//
// When projectRoot is not empty every logical path is made relative to it and a
// descriptor outside of it fails the scan with asset.ErrPath. Any error aborts
// the scan and no entries are returned.
func Scan(ctx context.Context, root, projectRoot string, opts ...Option) ([]asset.Entry, error) {
	o := newOptions(opts...)

	var entries []asset.Entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return asset.NewIOError(path, walkErr)
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if o.isExcluded(root, path) {
			logger.DebugKV(ctx, "Skipping excluded path", "path", path)

			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() || !o.isDescriptor(d.Name()) {
			return nil
		}

		// A descriptor shares the fate of the asset it describes.
		if assetPath := strings.TrimSuffix(path, o.suffix); o.isExcluded(root, assetPath) {
			logger.DebugKV(ctx, "Skipping descriptor of excluded asset", "path", path)

			return nil
		}

		entry, err := readEntry(path, projectRoot, o.suffix)
		if err != nil {
			return err
		}

		logger.DebugKV(ctx, "Parsed descriptor", "guid", entry.GUID, "path", entry.LogicalPath)

		entries = append(entries, *entry)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// readEntry builds the entry for a single descriptor.
func readEntry(descriptorPath, projectRoot, suffix string) (*asset.Entry, error) {
	guid, err := ReadGUID(descriptorPath)
	if err != nil {
		return nil, err
	}

	assetPath := strings.TrimSuffix(descriptorPath, suffix)

	assetFile, err := regularFile(assetPath)
	if err != nil {
		return nil, err
	}

	logicalPath, err := LogicalPath(assetPath, projectRoot)
	if err != nil {
		return nil, err
	}

	return &asset.Entry{
		GUID:           guid,
		LogicalPath:    logicalPath,
		AssetFile:      assetFile,
		DescriptorFile: descriptorPath,
	}, nil
}

// regularFile returns path if it is an existing regular file and "" if it is
// missing or not a regular file (a folder descriptor, for instance).
func regularFile(path string) (string, error) {
	info, err := os.Stat(path)

	switch {
	case err == nil && info.Mode().IsRegular():
		return path, nil
	case err == nil, errors.Is(err, fs.ErrNotExist):
		return "", nil
	default:
		return "", asset.NewIOError(path, err)
	}
}

// LogicalPath returns the path recorded in the package for assetPath.
//
// Without a project root the path is kept as walked. With one, both paths are
// made absolute and the root is stripped as a whole-component prefix.
// The result always uses forward slashes.
func LogicalPath(assetPath, projectRoot string) (string, error) {
	if projectRoot == "" {
		return filepath.ToSlash(filepath.Clean(assetPath)), nil
	}

	absPath, err := filepath.Abs(assetPath)
	if err != nil {
		return "", asset.NewIOError(assetPath, err)
	}

	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", asset.NewIOError(projectRoot, err)
	}

	rel, ok := trimRoot(absPath, absRoot)
	if !ok {
		return "", asset.NewPathError(assetPath, projectRoot)
	}

	return filepath.ToSlash(rel), nil
}

// trimRoot strips root from path when path equals root or lies below it.
func trimRoot(path, root string) (string, bool) {
	if path == root {
		return "", true
	}

	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	if !strings.HasPrefix(path, prefix) {
		return "", false
	}

	return strings.TrimPrefix(path, prefix), true
}
