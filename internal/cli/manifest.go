package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/newsreel/pkg/errors"
	"github.com/matzehuels/newsreel/pkg/news"
)

// manifest is the TOML project file through which upstream output (card
// text, narration audio, selected photos) enters the pipeline.
//
// Example:
//
//	style = "blue"
//
//	[[segments]]
//	title = "科技早报"
//	source = "测试来源"
//	published = "2026-08-30"
//	audio = "audio/001.mp3"
//	duration = 12.5
//	photos = ["photos/a.jpg"]
//
//	[[segments.points]]
//	subtitle = "要点"
//	content = "某公司发布新一代芯片"
type manifest struct {
	Style    string            `toml:"style"`
	Segments []manifestSegment `toml:"segments"`
}

type manifestSegment struct {
	Title     string          `toml:"title"`
	Source    string          `toml:"source"`
	Published string          `toml:"published"`
	Audio     string          `toml:"audio"`
	Duration  float64         `toml:"duration"`
	Card      string          `toml:"card"`
	Photos    []string        `toml:"photos"`
	Points    []manifestPoint `toml:"points"`
}

type manifestPoint struct {
	Subtitle string `toml:"subtitle"`
	Content  string `toml:"content"`
}

// loadManifest parses a project manifest into validated segments. The
// per-project style is resolved once and stamped on every segment.
func loadManifest(path string) ([]*news.Segment, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.New(errors.ErrCodeFileNotFound, "manifest not found: %s", path)
	}

	var m manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest %s", path)
	}
	if len(m.Segments) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySegments, "manifest %s has no segments", path)
	}

	style, err := news.ParseStyle(m.Style)
	if err != nil {
		return nil, err
	}

	segments := make([]*news.Segment, 0, len(m.Segments))
	for _, ms := range m.Segments {
		seg := &news.Segment{
			Title:         ms.Title,
			Source:        ms.Source,
			Published:     ms.Published,
			Style:         style,
			AudioPath:     ms.Audio,
			AudioDuration: ms.Duration,
			CardImagePath: ms.Card,
			PhotoPaths:    ms.Photos,
		}
		for _, mp := range ms.Points {
			seg.Points = append(seg.Points, news.NewPoint(mp.Subtitle, mp.Content))
		}
		if err := seg.Validate(); err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return segments, nil
}
