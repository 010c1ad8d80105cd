package packager

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/unity-packer/internal/domain/asset"
	"github.com/oshokin/unity-packer/internal/logger"
)

// noPayload is shown for entries packed without an asset member.
const noPayload = "-"

// List scans opts.AnalysedPath and prints the entries a pack would write, without writing a package.
func List(ctx context.Context, opts *Options, w io.Writer) error {
	cfg, closeLogs, err := Prepare(opts)
	if err != nil {
		return err
	}

	defer closeLogs()

	// The table goes to stdout too, so only problems are logged.
	ctx = logger.WithMinLevel(logger.WithName(ctx, "list"), zapcore.WarnLevel)

	entries, err := scan(ctx, opts, cfg)
	if err != nil {
		return err
	}

	rendered, err := renderEntries(entries)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintln(w, rendered); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}

	return nil
}

// renderEntries formats entries as a table in scan order.
func renderEntries(entries []asset.Entry) (string, error) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "GUID", "Path", "Asset"})

	var total uint64

	for i := range entries {
		size := noPayload

		if entries[i].HasAsset() {
			info, err := os.Stat(entries[i].AssetFile)
			if err != nil {
				return "", asset.NewIOError(entries[i].AssetFile, err)
			}

			total += uint64(info.Size())
			size = humanize.Bytes(uint64(info.Size()))
		}

		tw.AppendRow(table.Row{strconv.Itoa(i + 1), entries[i].GUID, entries[i].LogicalPath, size})
	}

	tw.AppendFooter(table.Row{"", "", fmt.Sprintf("%d entries", len(entries)), humanize.Bytes(total)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	return tw.Render(), nil
}
