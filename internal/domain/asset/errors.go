package asset

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks an unreadable path, an unwritable sink or a file that vanished between discovery and read.
	ErrIO = errors.New("i/o failure")
	// ErrParse marks a descriptor with invalid syntax or without a usable guid field.
	ErrParse = errors.New("malformed descriptor")
	// ErrPath marks a discovered path that does not lie under the project root.
	ErrPath = errors.New("path is outside of project root")
)

// Error describes a fatal scan or assembly failure.
// Kind is one of ErrIO, ErrParse or ErrPath and can be matched with errors.Is.
type Error struct {
	// Kind classifies the failure.
	Kind error
	// Path is the offending file or directory.
	Path string
	// Root is the project root, set only for ErrPath.
	Root string
	// Err is the underlying cause, if any.
	Err error
}

// NewIOError wraps err as an ErrIO failure on path.
func NewIOError(path string, err error) *Error {
	return &Error{Kind: ErrIO, Path: path, Err: err}
}

// NewParseError wraps err as an ErrParse failure on path.
func NewParseError(path string, err error) *Error {
	return &Error{Kind: ErrParse, Path: path, Err: err}
}

// NewPathError reports that path does not lie under root.
func NewPathError(path, root string) *Error {
	return &Error{Kind: ErrPath, Path: path, Root: root}
}

func (e *Error) Error() string {
	switch {
	case e.Root != "" && e.Err != nil:
		return fmt.Sprintf("%v: %q (root %q): %v", e.Kind, e.Path, e.Root, e.Err)
	case e.Root != "":
		return fmt.Sprintf("%v: %q is conflicting with root %q", e.Kind, e.Path, e.Root)
	case e.Err != nil:
		return fmt.Sprintf("%v: %q: %v", e.Kind, e.Path, e.Err)
	default:
		return fmt.Sprintf("%v: %q", e.Kind, e.Path)
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}
