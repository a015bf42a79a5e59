package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/newsreel/pkg/progress"
	"github.com/matzehuels/newsreel/pkg/timeline"
)

// composeOpts holds the command-line flags for the compose command.
type composeOpts struct {
	configPath string // optional TOML config override file
	output     string // output video path; empty selects the default
	transition string // transition effect: "click" or "swoosh"
}

// composeCommand creates the compose command, which assembles rendered cards
// and narration into the final collection video.
func (c *CLI) composeCommand() *cobra.Command {
	var opts composeOpts

	cmd := &cobra.Command{
		Use:   "compose [manifest]",
		Short: "Assemble cards and narration into the collection video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompose(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML configuration override file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output video path (default: <videos>/news_collection.mp4)")
	cmd.Flags().StringVar(&opts.transition, "transition", "", "transition sound: click (default), swoosh")

	return cmd
}

func (c *CLI) runCompose(cmd *cobra.Command, manifestPath string, opts *composeOpts) error {
	cfg, err := c.loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.transition != "" {
		if _, err := timeline.ParseEffect(opts.transition); err != nil {
			return err
		}
		cfg.Video.Transition = opts.transition
	}
	segments, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	info := timeline.Info(segments, cfg.Layout.CanvasWidth, cfg.Layout.CanvasHeight, cfg.Video.FPS)
	printInfo("composing %d segments, %s nominal", info.SegmentCount, info.DurationFormatted)

	sw := newStopwatch(c.Logger)
	assembler := timeline.NewAssembler(cfg, c.Logger)

	rep := progress.Func(func(current, total int, message string) {
		printProgress(current, total, message)
	})
	video, err := assembler.Assemble(cmd.Context(), segments, opts.output, rep)
	if err != nil {
		printError("composition failed: %v", err)
		return err
	}

	sw.done("Exported " + timeline.FormatDuration(video.TotalDuration) + " video")
	printSuccess("video ready")
	printFile(video.Path)
	return nil
}
