package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/oshokin/unity-packer/internal/domain/asset"
)

const (
	// blockSize is the tar record granularity.
	blockSize = 512
	// memberMode is used for the pathname member and for every member in reproducible mode.
	memberMode = 0o644
)

var (
	// epoch is the modification time of generated members.
	epoch = time.Unix(0, 0)
	// errNotRegular is returned when a source path is not a regular file anymore.
	errNotRegular = errors.New("not a regular file")
)

// writer holds the open streams of one assembly.
type writer struct {
	// gz compresses everything written to the sink.
	gz *gzip.Writer
	// tw writes tar records into gz.
	tw *tar.Writer
	// sink names the destination in errors.
	sink string
	// opts are the assembly settings.
	opts *options
}

// Assemble writes entries, in order, as a gzip-compressed tar stream to sink.
// The stream is finalized once, after the last entry. On error the sink may
// hold a truncated stream that must not be used.
func Assemble(ctx context.Context, entries []asset.Entry, sink io.Writer, opts ...Option) error {
	o := newOptions(opts...)

	gz, err := gzip.NewWriterLevel(sink, o.level)
	if err != nil {
		return fmt.Errorf("create gzip stream: %w", err)
	}

	w := &writer{
		gz:   gz,
		tw:   tar.NewWriter(gz),
		sink: sinkName(sink),
		opts: o,
	}

	for i := range entries {
		if err = ctx.Err(); err != nil {
			return err
		}

		entry := &entries[i]
		if err = w.writeEntry(entry); err != nil {
			return err
		}

		if o.onEntry != nil {
			o.onEntry(entry)
		}
	}

	return w.close()
}

// writeEntry writes the members of a single entry.
func (w *writer) writeEntry(entry *asset.Entry) error {
	if err := w.writePathname(entry); err != nil {
		return err
	}

	if err := w.copyFile(entry.MemberName(asset.DescriptorMember), entry.DescriptorFile); err != nil {
		return err
	}

	if !entry.HasAsset() {
		return nil
	}

	return w.copyFile(entry.MemberName(asset.PayloadMember), entry.AssetFile)
}

// writePathname writes the pathname member.
//
// The header declares the character count of the logical path while the data
// is the whole UTF-8 encoding, padded by its byte length. tar.Writer refuses a
// size mismatch, so the record is written around it.
func (w *writer) writePathname(entry *asset.Entry) error {
	name := entry.MemberName(asset.PathnameMember)
	data := []byte(entry.LogicalPath)

	header, err := headerBlock(&tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     memberMode,
		Size:     int64(utf8.RuneCount(data)),
		ModTime:  epoch,
		Format:   tar.FormatGNU,
	})
	if err != nil {
		return asset.NewIOError(name, err)
	}

	if err = w.tw.Flush(); err != nil {
		return w.writeError(name, err)
	}

	record := make([]byte, 0, len(header)+len(data)+blockSize)
	record = append(record, header...)
	record = append(record, data...)
	record = append(record, make([]byte, padding(len(data)))...)

	if _, err = w.gz.Write(record); err != nil {
		return w.writeError(name, err)
	}

	return nil
}

// copyFile writes the file at src as the member name.
func (w *writer) copyFile(name, src string) error {
	f, err := os.Open(filepath.Clean(src))
	if err != nil {
		return asset.NewIOError(src, err)
	}

	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return asset.NewIOError(src, err)
	}

	if !info.Mode().IsRegular() {
		return asset.NewIOError(src, errNotRegular)
	}

	if err = w.tw.WriteHeader(w.fileHeader(name, info)); err != nil {
		return w.writeError(name, err)
	}

	if _, err = io.CopyN(w.tw, f, info.Size()); err != nil {
		return asset.NewIOError(src, fmt.Errorf("copy into %s: %w", name, err))
	}

	return nil
}

// fileHeader describes a copied source file.
func (w *writer) fileHeader(name string, info os.FileInfo) *tar.Header {
	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     int64(info.Mode().Perm()),
		Size:     info.Size(),
		ModTime:  info.ModTime().Truncate(time.Second),
		Format:   tar.FormatGNU,
	}

	if w.opts.reproducible {
		header.Mode = memberMode
		header.ModTime = epoch
	}

	return header
}

// close writes the tar trailer and finishes the gzip stream.
func (w *writer) close() error {
	if err := w.tw.Close(); err != nil {
		return w.writeError("tar trailer", err)
	}

	if err := w.gz.Close(); err != nil {
		return w.writeError("gzip trailer", err)
	}

	return nil
}

// writeError reports a failed write to the sink.
func (w *writer) writeError(member string, err error) error {
	return asset.NewIOError(w.sink, fmt.Errorf("write %s: %w", member, err))
}

// headerBlock renders hdr as tar header records.
func headerBlock(hdr *tar.Header) ([]byte, error) {
	var buf bytes.Buffer
	if err := tar.NewWriter(&buf).WriteHeader(hdr); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// padding returns the number of zero bytes completing a record of n bytes.
func padding(n int) int {
	return (blockSize - n%blockSize) % blockSize
}

// sinkName returns a printable name for the destination.
func sinkName(sink io.Writer) string {
	if named, ok := sink.(interface{ Name() string }); ok {
		return named.Name()
	}

	return "archive stream"
}
