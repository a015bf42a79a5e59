// Package cli implements the newsreel command-line interface.
//
// This package provides commands for rendering news-card frames, composing
// the collection video, probing the timeline, and pre-generating the
// transition sounds. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Draw one card frame per news item from a manifest
//   - compose: Assemble rendered cards and narration into the final video
//   - info: Print the timeline a manifest would produce, without encoding
//   - sounds: Generate the synthetic transition sound files
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/newsreel/pkg/buildinfo"
	"github.com/matzehuels/newsreel/pkg/config"
)

// appName is the application name used for display.
const appName = "newsreel"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Newsreel turns news items into narrated card videos",
		Long:         `Newsreel renders each news item of a manifest as a styled card frame and assembles the frames, narration audio, and transition sounds into a single collection video.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.composeCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.soundsCommand())

	return root
}

// loadConfig resolves the effective configuration for a command invocation.
func (c *CLI) loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		c.Logger.Debug("loaded configuration", "path", path)
	}
	return cfg, nil
}
