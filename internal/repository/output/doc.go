// Package output manages the package file on disk.
//
// A File takes an advisory lock next to the target, removes whatever was at
// the target path (a stale package or even a directory) and exposes a fresh
// file as the archive sink.
package output
