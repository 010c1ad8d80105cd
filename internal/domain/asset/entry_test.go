package asset

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEntry_HasAsset verifies folder entries report no payload.
func TestEntry_HasAsset(t *testing.T) {
	t.Parallel()

	folder := &Entry{
		GUID:           "80b54747fd9534ef3bf4f5dec0cb319a",
		LogicalPath:    "Assets/Materials",
		DescriptorFile: "Assets/Materials.meta",
	}
	require.False(t, folder.HasAsset())

	file := &Entry{
		GUID:           "37d6e1e5ec83e454eb86b47f81fe116a",
		LogicalPath:    "Assets/Cube.prefab",
		AssetFile:      "Assets/Cube.prefab",
		DescriptorFile: "Assets/Cube.prefab.meta",
	}
	require.True(t, file.HasAsset())
}

// TestEntry_MemberName checks members are nested under the GUID directory.
func TestEntry_MemberName(t *testing.T) {
	t.Parallel()

	e := &Entry{GUID: "37d6e1e5ec83e454eb86b47f81fe116a"}

	require.Equal(t, "37d6e1e5ec83e454eb86b47f81fe116a/pathname", e.MemberName(PathnameMember))
	require.Equal(t, "37d6e1e5ec83e454eb86b47f81fe116a/asset.meta", e.MemberName(DescriptorMember))
	require.Equal(t, "37d6e1e5ec83e454eb86b47f81fe116a/asset", e.MemberName(PayloadMember))
}

// TestError_Is ensures kinds and causes are both reachable through errors.Is.
func TestError_Is(t *testing.T) {
	t.Parallel()

	err := error(NewIOError("Assets/x.meta", os.ErrNotExist))
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.NotErrorIs(t, err, ErrParse)

	err = NewPathError("/elsewhere/Assets/x", "/project")
	require.ErrorIs(t, err, ErrPath)
	require.Contains(t, err.Error(), "/elsewhere/Assets/x")
	require.Contains(t, err.Error(), "/project")

	var assetErr *Error
	require.True(t, errors.As(err, &assetErr))
	require.Equal(t, "/project", assetErr.Root)
}
