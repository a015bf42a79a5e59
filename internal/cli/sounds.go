package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/newsreel/pkg/timeline"
)

// soundsCommand creates the sounds command, which pre-generates the
// synthetic transition sound files. Compose does this on demand; the command
// exists so the effects can be audited or regenerated by hand.
func (c *CLI) soundsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sounds",
		Short: "Generate the transition sound files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(configPath)
			if err != nil {
				return err
			}
			fx, err := timeline.EnsureEffects(cfg.Paths.AudioDir)
			if err != nil {
				printError("sound generation failed: %v", err)
				return err
			}
			printSuccess("transition sounds ready")
			printFile(fx.Click)
			printFile(fx.Swoosh)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML configuration override file")
	return cmd
}
