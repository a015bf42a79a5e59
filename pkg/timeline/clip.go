// Package timeline assembles rendered card frames and narration audio into
// the final collection video.
//
// The package is split into a pure planning stage, which turns segments into
// an ordered clip list with all durations and transition decisions resolved,
// and an effectful assembly stage, which encodes each planned clip and joins
// them. Planning is deterministic and fully testable without ffmpeg.
package timeline

import (
	"fmt"

	"github.com/matzehuels/newsreel/pkg/news"
)

// photoDuration is how long each selected photo is held on screen.
const photoDuration = 2.0

// Clip is one planned timeline entry: a still image held for a duration,
// with optional narration and an optional transition sound mixed at its
// start.
type Clip struct {
	ImagePath string
	Duration  float64

	// AudioPath is the narration track; empty for photo clips, which carry
	// only the transition sound.
	AudioPath string

	// MixTransition layers the transition effect at t=0. Photo clips always
	// carry it; card clips carry it except when the card opens the whole
	// timeline, which plays narration alone.
	MixTransition bool
}

// Plan expands segments into the ordered clip list. For each segment the
// selected photos come first, two seconds each, then the card held for the
// full narration duration.
func Plan(segments []*news.Segment) []Clip {
	var clips []Clip
	for _, seg := range segments {
		for _, photo := range seg.PhotoPaths {
			clips = append(clips, Clip{
				ImagePath:     photo,
				Duration:      photoDuration,
				MixTransition: true,
			})
		}
		clips = append(clips, Clip{
			ImagePath:     seg.CardImagePath,
			Duration:      seg.AudioDuration,
			AudioPath:     seg.AudioPath,
			MixTransition: len(clips) > 0,
		})
	}
	return clips
}

// NominalDuration sums all clip durations. The encoded video can differ by
// fractions of a second from codec frame alignment.
func NominalDuration(clips []Clip) float64 {
	total := 0.0
	for _, c := range clips {
		total += c.Duration
	}
	return total
}

// VideoInfo describes the video a segment list would produce, computed
// without encoding anything.
type VideoInfo struct {
	SegmentCount      int
	ClipCount         int
	TotalDuration     float64
	DurationFormatted string // M:SS
	Resolution        string
	FPS               int
}

// Info probes the timeline a segment list would produce.
func Info(segments []*news.Segment, width, height, fps int) VideoInfo {
	clips := Plan(segments)
	total := NominalDuration(clips)
	return VideoInfo{
		SegmentCount:      len(segments),
		ClipCount:         len(clips),
		TotalDuration:     total,
		DurationFormatted: FormatDuration(total),
		Resolution:        fmt.Sprintf("%dx%d", width, height),
		FPS:               fps,
	}
}

// FormatDuration renders seconds as M:SS, truncating fractions.
func FormatDuration(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
