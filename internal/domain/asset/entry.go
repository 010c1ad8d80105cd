package asset

import "path"

const (
	// DefaultDescriptorSuffix is the suffix that marks a descriptor file.
	DefaultDescriptorSuffix = ".meta"

	// PathnameMember holds the logical path of the asset inside the archive.
	PathnameMember = "pathname"
	// DescriptorMember holds a copy of the descriptor file.
	DescriptorMember = "asset.meta"
	// PayloadMember holds a copy of the asset file. Folder entries have none.
	PayloadMember = "asset"
)

// Entry is a single descriptor discovered by a scan.
type Entry struct {
	// GUID is the identifier parsed from the descriptor.
	GUID string
	// LogicalPath is the asset path recorded in the archive, relative to the project root if one was given.
	LogicalPath string
	// AssetFile is the payload path. Empty when the descriptor refers to a folder or a missing file.
	AssetFile string
	// DescriptorFile is the path of the parsed descriptor.
	DescriptorFile string
}

// HasAsset reports whether the entry carries a payload file.
func (e *Entry) HasAsset() bool {
	return e.AssetFile != ""
}

// MemberName returns the archive name of a member nested under the entry's GUID directory.
func (e *Entry) MemberName(member string) string {
	return path.Join(e.GUID, member)
}
