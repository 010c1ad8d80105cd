// Package packager builds Unity packages from a project tree.
//
// It loads settings, scans the analysed path for descriptors, then replaces
// the output package with a freshly assembled archive. The same scan backs
// List, which prints what a pack would contain without writing anything.
package packager
