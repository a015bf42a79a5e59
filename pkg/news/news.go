// Package news defines the data model shared by the card renderer and the
// timeline assembler.
//
// A [Segment] is one news item's complete render-time state: the card text
// produced upstream, the narration audio produced by the TTS collaborator,
// and the photos selected by the user. Segments are created by those upstream
// stages, mutated in place by the card renderer (CardImagePath) and consumed
// read-only by the timeline assembler.
package news

import (
	"os"

	"github.com/matzehuels/newsreel/pkg/errors"
)

// Style names one of the closed set of card color schemes.
type Style string

// The supported card styles. The zero value is not valid; use ParseStyle.
const (
	StyleBlue   Style = "blue"
	StylePink   Style = "pink"
	StyleGreen  Style = "green"
	StylePurple Style = "purple"
)

// DefaultStyle is used when a project does not pick a style.
const DefaultStyle = StyleBlue

// ParseStyle validates a style name against the closed set.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleBlue, StylePink, StyleGreen, StylePurple:
		return Style(s), nil
	case "":
		return DefaultStyle, nil
	}
	return "", errors.New(errors.ErrCodeInvalidStyle,
		"invalid style: %q (must be one of: blue, pink, green, purple)", s)
}

// Point is one key point on a card: a short label plus a detail sentence.
// Points are immutable once produced upstream and rendered verbatim.
type Point struct {
	Subtitle string // short label, ~4-6 characters
	Content  string // detail sentence, ~25-35 characters
}

// subtitlePrefixLen is the number of leading runes used to synthesize a
// subtitle for legacy bare-string points.
const subtitlePrefixLen = 5

// NewPoint builds a Point, synthesizing the subtitle from a fixed-length
// prefix of the content when the upstream stage supplied none. This collapses
// the legacy bare-string point shape at the ingestion boundary so the renderer
// only ever sees one representation.
func NewPoint(subtitle, content string) Point {
	if subtitle == "" {
		runes := []rune(content)
		if len(runes) > subtitlePrefixLen {
			runes = runes[:subtitlePrefixLen]
		}
		subtitle = string(runes)
	}
	return Point{Subtitle: subtitle, Content: content}
}

// MinPoints and MaxPoints bound the number of points on a card.
const (
	MinPoints = 1
	MaxPoints = 8
)

// Segment is one news item at render time.
type Segment struct {
	Title     string  // card title, ~8-12 characters
	Points    []Point // 1-8 key points
	Source    string  // feed name, shown in the adaptive card footer
	Published string  // publish date, shown in the adaptive card footer
	Style     Style   // card color scheme

	// Produced by the speech-synthesis collaborator.
	AudioPath     string
	AudioDuration float64 // seconds, must be > 0

	// Filled in by the card renderer.
	CardImagePath string

	// Already-downloaded local photos selected for this item (0-2).
	PhotoPaths []string
}

// PointCount returns the number of points, for grid selection.
func (s *Segment) PointCount() int { return len(s.Points) }

// Validate checks the textual invariants that must hold before rendering:
// a title and between MinPoints and MaxPoints points.
func (s *Segment) Validate() error {
	if s.Title == "" {
		return errors.New(errors.ErrCodeInvalidInput, "segment has no title")
	}
	if n := len(s.Points); n < MinPoints || n > MaxPoints {
		return errors.New(errors.ErrCodeInvalidInput,
			"segment %q has %d points (must be %d-%d)", s.Title, n, MinPoints, MaxPoints)
	}
	return nil
}

// RenderReady reports whether the segment can enter the timeline assembler:
// text valid, card image rendered, narration present with a positive duration,
// and every referenced file existing on disk. This is a precondition the
// engine checks, not produces.
func (s *Segment) RenderReady() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.CardImagePath == "" {
		return errors.New(errors.ErrCodeMissingAsset, "segment %q has no card image", s.Title)
	}
	if err := mustExist(s.CardImagePath, "card image"); err != nil {
		return err
	}
	if s.AudioPath == "" {
		return errors.New(errors.ErrCodeMissingAsset, "segment %q has no narration audio", s.Title)
	}
	if err := mustExist(s.AudioPath, "narration audio"); err != nil {
		return err
	}
	if s.AudioDuration <= 0 {
		return errors.New(errors.ErrCodeInvalidDuration,
			"segment %q has invalid audio duration %.2f", s.Title, s.AudioDuration)
	}
	for _, p := range s.PhotoPaths {
		if err := mustExist(p, "photo"); err != nil {
			return err
		}
	}
	return nil
}

func mustExist(path, kind string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.New(errors.ErrCodeMissingAsset, "%s does not exist: %s", kind, path)
	}
	return nil
}
