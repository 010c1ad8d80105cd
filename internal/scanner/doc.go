// Package scanner discovers asset descriptors in a project tree.
//
// Scan walks a directory in lexical order, parses every descriptor it finds,
// pairs it with its companion asset file and computes the path recorded in
// the package. Any failure aborts the whole scan: a project in an
// inconsistent state never produces a partial result.
package scanner
