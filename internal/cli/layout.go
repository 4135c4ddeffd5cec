package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nakamurapomeo/collage-app/pkg/album"
	"github.com/nakamurapomeo/collage-app/pkg/gallery"
	"github.com/nakamurapomeo/collage-app/pkg/pipeline"
)

// layoutCommand creates the layout command for packing albums.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [album.json]",
		Short: "Pack an album into a justified layout",
		Long: `Pack an album into a justified layout.

The layout command takes an album.json file and breaks its items into rows
that each fill the container width, with row heights as close as possible to
the target. The output is a layout.json file that can be rendered to SVG,
PNG, or JSON using the 'render' command.

Items missing dimensions are resolved by decoding their source images
(local files or URLs) unless --no-probe is given.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyPackConfig(cmd, &opts, cfg)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "recompute even if a cached layout exists")

	// Pack flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "container width in pixels")
	cmd.Flags().Float64Var(&opts.TargetRowHeight, "target", opts.TargetRowHeight, "target row height in pixels")
	cmd.Flags().Float64Var(&opts.Gutter, "gutter", opts.Gutter, "spacing between tiles in pixels")
	cmd.Flags().BoolVar(&opts.SnapLastToEdge, "snap", opts.SnapLastToEdge, "stretch the last tile of each row to the container edge")
	cmd.Flags().Float64Var(&opts.LastRowCap, "cap", opts.LastRowCap, "cap the trailing row height at this multiple of the target (0 disables)")
	cmd.Flags().BoolVar(&opts.Probe, "probe", opts.Probe, "resolve missing item dimensions from source images")

	return cmd
}

// runLayout loads the album, packs the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	a, err := album.ReadAlbumFile(input)
	if err != nil {
		return fmt.Errorf("load album %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	if opts.Probe && runner.Prober != nil {
		resolved, err := runner.Prober.ResolveItems(ctx, a.Items)
		if err != nil {
			c.Logger.Warn("some items could not be probed", "err", err)
		}
		if resolved > 0 {
			c.Logger.Debug("resolved item dimensions", "count", resolved)
		}
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Packing %d items...", len(a.Items)))
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, a, "", opts)
	if err != nil {
		spinner.StopWithError("Packing failed")
		return fmt.Errorf("pack layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Packed %d items into %d rows", len(layout.Items), layout.Rows))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := album.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	stats := gallery.MeasureRows(album.Parse(layout), layout.TargetRowHeight)

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(layout.Items), layout.Rows, stats.MeanDeviation, cacheHit)
	printNewline()
	printNextStep("Render", "collage render "+outputPath)

	return nil
}
