package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nakamurapomeo/collage-app/pkg/album"
	"github.com/nakamurapomeo/collage-app/pkg/gallery"
	"github.com/nakamurapomeo/collage-app/pkg/pipeline"
)

// defaultPreviewTarget is the initial target row height in terminal rows.
const defaultPreviewTarget = 6

// previewCommand creates the preview command for interactive layout tuning.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		target  int
		noProbe bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "preview [album.json]",
		Short: "Preview a packed album interactively in the terminal",
		Long: `Preview a packed album interactively in the terminal.

The preview command packs the album at the current terminal width and draws
each tile as a colored block. The layout is recomputed live on terminal
resize, and the target row height can be adjusted with the +/- keys to see
how row breaks shift.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyPackConfig(cmd, &opts, cfg)
			return c.runPreview(cmd.Context(), args[0], opts, target, noProbe)
		},
	}

	cmd.Flags().IntVar(&target, "target", defaultPreviewTarget, "initial target row height in terminal rows")
	cmd.Flags().Float64Var(&opts.Gutter, "gutter", opts.Gutter, "spacing between tiles in terminal cells")
	cmd.Flags().BoolVar(&opts.SnapLastToEdge, "snap", opts.SnapLastToEdge, "stretch the last tile of each row to the container edge")
	cmd.Flags().BoolVar(&noProbe, "no-probe", false, "skip resolving missing item dimensions")

	return cmd
}

// runPreview loads the album and runs the bubbletea preview loop.
func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options, target int, noProbe bool) error {
	a, err := album.ReadAlbumFile(input)
	if err != nil {
		return fmt.Errorf("load album %s: %w", input, err)
	}

	if !noProbe {
		prober := newProber(false)
		if _, err := prober.ResolveItems(ctx, a.Items); err != nil {
			printWarning("some items could not be probed: %v", err)
		}
	}

	galleryOpts := gallery.Options{
		Gutter:         opts.Gutter,
		SnapLastToEdge: opts.SnapLastToEdge,
	}
	model := NewPreviewModel(a.Name, a.GalleryItems(), target, galleryOpts)

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
