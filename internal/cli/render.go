package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nakamurapomeo/collage-app/pkg/album"
	"github.com/nakamurapomeo/collage-app/pkg/pipeline"
)

// renderCommand creates the render command for generating output artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [album.json|layout.json]",
		Short: "Render an album or layout to SVG, PNG, or JSON",
		Long: `Render an album or layout to SVG, PNG, or JSON.

The render command accepts either an album.json file (in which case the
layout is packed first) or a layout.json file produced by 'layout' (in
which case the stored geometry is rendered as-is).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyPackConfig(cmd, &opts, cfg)
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "recompute even if cached artifacts exist")

	// Pack flags (only used when the input is an album)
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "container width in pixels")
	cmd.Flags().Float64Var(&opts.TargetRowHeight, "target", opts.TargetRowHeight, "target row height in pixels")
	cmd.Flags().Float64Var(&opts.Gutter, "gutter", opts.Gutter, "spacing between tiles in pixels")
	cmd.Flags().BoolVar(&opts.SnapLastToEdge, "snap", opts.SnapLastToEdge, "stretch the last tile of each row to the container edge")
	cmd.Flags().Float64Var(&opts.LastRowCap, "cap", opts.LastRowCap, "cap the trailing row height at this multiple of the target (0 disables)")
	cmd.Flags().BoolVar(&opts.Probe, "probe", opts.Probe, "resolve missing item dimensions from source images")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.Labels, "labels", opts.Labels, "draw item captions on tiles")
	cmd.Flags().BoolVar(&opts.Images, "images", opts.Images, "embed item sources in SVG output")
	cmd.Flags().StringVar(&opts.Background, "background", opts.Background, "background color (hex)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "raster scale for PNG output")
	cmd.Flags().BoolVar(&opts.Stats, "stats", opts.Stats, "include row statistics in JSON output")

	return cmd
}

// runRender dispatches on the input file type and renders the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts.Logger = logger

	// A layout file carries container geometry; an album file is just items.
	// Try the layout shape first since its validation is stricter.
	var (
		artifacts map[string][]byte
		itemCount int
		rowCount  int
		cacheHit  bool
	)
	if layout, layoutErr := album.UnmarshalLayout(data); layoutErr == nil {
		logger.Debug("input is a layout file", "items", len(layout.Items))
		spinner := newSpinnerWithContext(ctx, "Rendering layout...")
		spinner.Start()

		artifacts, cacheHit, err = runner.RenderWithCacheInfo(ctx, layout, opts)
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return fmt.Errorf("render: %w", err)
		}
		spinner.Stop()
		itemCount, rowCount = len(layout.Items), layout.Rows
	} else {
		a, albumErr := album.UnmarshalAlbum(data)
		if albumErr != nil {
			return fmt.Errorf("parse input %s: not a layout (%v) and not an album (%v)", input, layoutErr, albumErr)
		}
		logger.Debug("input is an album file", "items", len(a.Items))
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Packing and rendering %d items...", len(a.Items)))
		spinner.Start()

		result, execErr := runner.Execute(ctx, a, opts)
		if execErr != nil {
			spinner.StopWithError("Rendering failed")
			return fmt.Errorf("render: %w", execErr)
		}
		spinner.Stop()
		artifacts = result.Artifacts
		itemCount, rowCount = result.Stats.ItemCount, result.Stats.RowCount
		cacheHit = result.CacheInfo.RenderHit
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(itemCount, rowCount, 0, cacheHit)

	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .json), it strips that extension.
// This is used when generating multiple files (e.g., album.svg, album.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each rendered format to its own file and returns the
// paths written. A single format with an explicit output path goes exactly
// there; everything else derives file names from the base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}

		var path string
		if output != "" && len(formats) == 1 {
			path = output
		} else {
			path = basePath(output, input) + "." + format
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
