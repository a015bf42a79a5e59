// Package config holds the immutable configuration values shared by the card
// renderer and the timeline assembler.
//
// All layout, typography, and encoding constants live here as explicit values
// passed into each component at construction, never as ambient global state,
// so tests can inject alternate dimensions and fonts deterministically.
// Defaults match the reference card design; a TOML file can override any
// field via [Load].
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/newsreel/pkg/errors"
)

// Layout holds canvas dimensions and typography for both card modes.
// All pixel values assume the fixed 1920x1080 canvas; rendering is not
// responsive by design.
type Layout struct {
	CanvasWidth  int `toml:"canvas_width"`
	CanvasHeight int `toml:"canvas_height"`

	// Adaptive single-card mode.
	Padding         float64 `toml:"padding"`
	TitleFontSize   float64 `toml:"title_font_size"`
	PointFontSize   float64 `toml:"point_font_size"`
	MetaFontSize    float64 `toml:"meta_font_size"`
	BulletFontSize  float64 `toml:"bullet_font_size"`
	LineHeight      float64 `toml:"line_height"`
	TitleLineHeight float64 `toml:"title_line_height"`
	PointSpacing    float64 `toml:"point_spacing"`
	MinCardHeight   float64 `toml:"min_card_height"`
	MaxCardHeight   float64 `toml:"max_card_height"`
	CardWidthRatio  float64 `toml:"card_width_ratio"`

	// Multi-card grid mode.
	HeadingFontSize  float64 `toml:"heading_font_size"`
	SubtitleFontSize float64 `toml:"subtitle_font_size"`
	BodyFontSize     float64 `toml:"body_font_size"`
	FooterFontSize   float64 `toml:"footer_font_size"`
	IconFontSize     float64 `toml:"icon_font_size"`
	BodyLineHeight   float64 `toml:"body_line_height"`
	GridMargin       float64 `toml:"grid_margin"`
	GridGap          float64 `toml:"grid_gap"`
	GridTop          float64 `toml:"grid_top"`
	GridBottomInset  float64 `toml:"grid_bottom_inset"`

	// Extra font files searched before the per-OS system candidates.
	FontPaths []string `toml:"font_paths"`
}

// Video holds the fixed encoding parameters. Encoding always uses one frame
// rate, one codec pair, and one bitrate per render.
type Video struct {
	FPS        int    `toml:"fps"`
	Codec      string `toml:"codec"`
	AudioCodec string `toml:"audio_codec"`
	Bitrate    string `toml:"bitrate"`
	Preset     string `toml:"preset"`

	// Transition selects which synthetic effect is layered under scene
	// changes: "click" or "swoosh".
	Transition string `toml:"transition"`
}

// Paths holds the output directory tree. Directories are created on demand.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	ImageDir  string `toml:"image_dir"`
	AudioDir  string `toml:"audio_dir"`
	VideoDir  string `toml:"video_dir"`
}

// Config is the complete immutable configuration value.
type Config struct {
	Layout Layout `toml:"layout"`
	Video  Video  `toml:"video"`
	Paths  Paths  `toml:"paths"`
}

// Default returns the reference configuration. Output directories live under
// the user's documents folder so repeated runs reuse cached assets.
func Default() Config {
	base := defaultOutputBase()
	return Config{
		Layout: Layout{
			CanvasWidth:  1920,
			CanvasHeight: 1080,

			Padding:         80,
			TitleFontSize:   70,
			PointFontSize:   45,
			MetaFontSize:    35,
			BulletFontSize:  50,
			LineHeight:      65,
			TitleLineHeight: 90,
			PointSpacing:    25,
			MinCardHeight:   500,
			MaxCardHeight:   980,
			CardWidthRatio:  0.85,

			HeadingFontSize:  80,
			SubtitleFontSize: 36,
			BodyFontSize:     26,
			FooterFontSize:   24,
			IconFontSize:     20,
			BodyLineHeight:   36,
			GridMargin:       100,
			GridGap:          30,
			GridTop:          220,
			GridBottomInset:  100,
		},
		Video: Video{
			FPS:        30,
			Codec:      "libx264",
			AudioCodec: "aac",
			Bitrate:    "8000k",
			Preset:     "medium",
			Transition: "click",
		},
		Paths: Paths{
			OutputDir: base,
			ImageDir:  filepath.Join(base, "images"),
			AudioDir:  filepath.Join(base, "audio"),
			VideoDir:  filepath.Join(base, "videos"),
		},
	}
}

// Load returns the default configuration overlaid with values from a TOML
// file. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidManifest, err, "load config %s", path)
	}
	return cfg, nil
}

// EnsureDirs creates every output directory, idempotently.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.ImageDir, c.Paths.AudioDir, c.Paths.VideoDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
		}
	}
	return nil
}

// defaultOutputBase resolves the per-user output root. Falls back to the
// working directory when the home directory cannot be determined.
func defaultOutputBase() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("newsreel-output")
	}
	return filepath.Join(home, "Documents", "Newsreel", "output")
}
