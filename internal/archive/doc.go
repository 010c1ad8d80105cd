// Package archive writes discovered entries as a Unity package: a gzip
// compressed tar stream holding one directory per GUID with the pathname,
// asset.meta and (for files) asset members.
//
// The pathname member is sized by the character count of the logical path
// rather than its byte length. Existing package readers expect this, so it
// is reproduced for non-ASCII paths too.
package archive
