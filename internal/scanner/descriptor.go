package scanner

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/unity-packer/internal/domain/asset"
)

// guidKey is the top-level descriptor field holding the identifier.
const guidKey = "guid"

// byteOrderMark is injected by some editors at the start of descriptors.
var byteOrderMark = []byte("\xef\xbb\xbf")

var (
	// errMissingGUID is returned when the descriptor has no top-level guid field.
	errMissingGUID = errors.New("guid field is missing")
	// errGUIDNotScalar is returned when guid holds a mapping, a sequence or null.
	errGUIDNotScalar = errors.New("guid field is not a scalar")
	// errEmptyGUID is returned when guid is an empty string.
	errEmptyGUID = errors.New("guid field is empty")
)

// ReadGUID reads the descriptor at path and returns its guid.
// Read failures are reported as asset.ErrIO, content failures as asset.ErrParse.
func ReadGUID(path string) (string, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", asset.NewIOError(path, err)
	}

	guid, err := ParseGUID(contents)
	if err != nil {
		return "", asset.NewParseError(path, err)
	}

	return guid, nil
}

// ParseGUID extracts the top-level scalar guid field from descriptor contents.
// Only the first YAML document is considered.
func ParseGUID(contents []byte) (string, error) {
	contents = bytes.TrimPrefix(contents, byteOrderMark)

	var document yaml.Node
	if err := yaml.Unmarshal(contents, &document); err != nil {
		return "", fmt.Errorf("decode yaml: %w", err)
	}

	if document.Kind != yaml.DocumentNode || len(document.Content) == 0 {
		return "", errMissingGUID
	}

	root := document.Content[0]
	if root.Kind != yaml.MappingNode {
		return "", errMissingGUID
	}

	// Mapping content alternates keys and values.
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Value != guidKey {
			continue
		}

		if value.Kind != yaml.ScalarNode || value.ShortTag() == "!!null" {
			return "", errGUIDNotScalar
		}

		if value.Value == "" {
			return "", errEmptyGUID
		}

		return value.Value, nil
	}

	return "", errMissingGUID
}
