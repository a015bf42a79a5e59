package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/newsreel/pkg/card"
	"github.com/matzehuels/newsreel/pkg/news"
	"github.com/matzehuels/newsreel/pkg/progress"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	configPath string // optional TOML config override file
	mode       string // card layout: "grid" or "adaptive"
	opening    bool   // also render the collection opening slide
}

// renderCommand creates the render command, which draws one card frame per
// manifest segment.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [manifest]",
		Short: "Render one card frame per news item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML configuration override file")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "card layout: grid (default), adaptive")
	cmd.Flags().BoolVar(&opts.opening, "opening", false, "also render the collection opening slide")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, manifestPath string, opts *renderOpts) error {
	mode, err := card.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	cfg, err := c.loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	segments, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	sw := newStopwatch(c.Logger)
	renderer := card.NewRenderer(cfg, nil, c.Logger)

	rep := progress.Func(func(current, total int, message string) {
		printProgress(current, total, message)
	})
	if err := renderer.RenderAll(cmd.Context(), segments, mode, rep); err != nil {
		printError("rendering failed: %v", err)
		return err
	}

	if opts.opening {
		path, err := renderer.RenderOpening(segments)
		if err != nil {
			printError("opening slide failed: %v", err)
			return err
		}
		printFile(path)
	}

	sw.done(renderSummary(segments))
	printSuccess("rendered %d cards", len(segments))
	for _, seg := range segments {
		printFile(seg.CardImagePath)
	}
	return nil
}

func renderSummary(segments []*news.Segment) string {
	points := 0
	for _, seg := range segments {
		points += seg.PointCount()
	}
	return fmt.Sprintf("Rendered %d cards, %d points", len(segments), points)
}
