// Package asset contains the core domain types shared by the scanner and the
// archive assembler.
//
// It defines Entry (one discovered descriptor with its optional payload) and
// the error taxonomy (ErrIO, ErrParse, ErrPath) used to report fatal failures
// together with the offending path.
package asset
