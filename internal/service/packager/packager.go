package packager

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/oshokin/unity-packer/internal/archive"
	"github.com/oshokin/unity-packer/internal/config"
	"github.com/oshokin/unity-packer/internal/domain/asset"
	"github.com/oshokin/unity-packer/internal/logger"
	"github.com/oshokin/unity-packer/internal/repository/output"
	"github.com/oshokin/unity-packer/internal/scanner"
)

// Result summarizes a written package.
type Result struct {
	// Output is the package path.
	Output string
	// Entries are the packed entries in archive order.
	Entries []asset.Entry
	// Size is the package size in bytes.
	Size int64
	// Elapsed is the time spent scanning and writing.
	Elapsed time.Duration
}

// Run executes the packaging workflow.
func Run(ctx context.Context, opts *Options) error {
	cfg, closeLogs, err := Prepare(opts)
	if err != nil {
		return err
	}

	defer closeLogs()

	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "pack")

	_, err = Pack(ctx, opts, cfg)

	return err
}

// Pack scans opts.AnalysedPath and writes the package. Nothing is written when the scan fails.
func Pack(ctx context.Context, opts *Options, cfg *config.Config) (*Result, error) {
	started := time.Now()

	entries, err := scan(ctx, opts, cfg)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		logger.InfoKV(ctx, "Found meta entry", "path", entries[i].LogicalPath, "guid", entries[i].GUID)
	}

	outputPath := output.PackagePath(opts.PackageName)

	sink, err := output.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("create package: %w", err)
	}

	logger.InfoKV(ctx, "Packing", "output", outputPath, "entries", len(entries))

	bar := newProgressBar(len(entries))

	err = archive.Assemble(ctx, entries, sink,
		archive.WithCompressionLevel(cfg.CompressionLevel()),
		archive.WithReproducible(cfg.Reproducible),
		archive.WithProgress(func(*asset.Entry) {
			if bar != nil {
				_ = bar.Add(1)
			}
		}),
	)
	if err != nil {
		// A truncated package must never be mistaken for a valid one.
		_ = sink.Discard()

		return nil, fmt.Errorf("assemble %s: %w", outputPath, err)
	}

	if err = sink.Close(); err != nil {
		return nil, err
	}

	if bar != nil {
		_ = bar.Finish()
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return nil, asset.NewIOError(outputPath, err)
	}

	result := &Result{
		Output:  outputPath,
		Entries: entries,
		Size:    info.Size(),
		Elapsed: time.Since(started),
	}

	logger.InfoKV(ctx, "Done",
		"output", result.Output,
		"entries", len(result.Entries),
		"size", humanize.Bytes(uint64(result.Size)),
		"elapsed", result.Elapsed.Round(time.Millisecond),
	)

	return result, nil
}

// scan runs the descriptor scanner with the configured options.
func scan(ctx context.Context, opts *Options, cfg *config.Config) ([]asset.Entry, error) {
	logger.InfoKV(ctx, "Scanning", "path", opts.AnalysedPath, "project_root", opts.ProjectRoot)

	entries, err := scanner.Scan(ctx, opts.AnalysedPath, opts.ProjectRoot,
		scanner.WithDescriptorSuffix(cfg.DescriptorSuffix),
		scanner.WithExclude(cfg.Exclude...),
	)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", opts.AnalysedPath, err)
	}

	return entries, nil
}

// newProgressBar returns a bar drawn on stderr, or nil when stderr is not a terminal.
func newProgressBar(total int) *progressbar.ProgressBar {
	if total == 0 || !logger.IsTerminal() {
		return nil
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Packing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
