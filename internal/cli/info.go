package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/newsreel/pkg/timeline"
)

// infoCommand creates the info command, which probes the timeline a manifest
// would produce without encoding anything.
func (c *CLI) infoCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "info [manifest]",
		Short: "Print the timeline a manifest would produce",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(configPath)
			if err != nil {
				return err
			}
			segments, err := loadManifest(args[0])
			if err != nil {
				return err
			}

			info := timeline.Info(segments, cfg.Layout.CanvasWidth, cfg.Layout.CanvasHeight, cfg.Video.FPS)
			printKeyValue("segments", fmt.Sprintf("%d", info.SegmentCount))
			printKeyValue("clips", fmt.Sprintf("%d", info.ClipCount))
			printKeyValue("duration", info.DurationFormatted)
			printKeyValue("resolution", info.Resolution)
			printKeyValue("fps", fmt.Sprintf("%d", info.FPS))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML configuration override file")
	return cmd
}
