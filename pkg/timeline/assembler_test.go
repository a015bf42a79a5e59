package timeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/newsreel/pkg/config"
	"github.com/matzehuels/newsreel/pkg/errors"
	"github.com/matzehuels/newsreel/pkg/news"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	base := t.TempDir()
	cfg.Paths.OutputDir = base
	cfg.Paths.ImageDir = filepath.Join(base, "images")
	cfg.Paths.AudioDir = filepath.Join(base, "audio")
	cfg.Paths.VideoDir = filepath.Join(base, "videos")
	return cfg
}

// readySegment writes real placeholder files so RenderReady passes without
// invoking any renderer.
func readySegment(t *testing.T, dir string, duration float64) *news.Segment {
	t.Helper()
	card := filepath.Join(dir, "card.png")
	audio := filepath.Join(dir, "audio.mp3")
	for _, p := range []string{card, audio} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return &news.Segment{
		Title:         "测试新闻",
		Points:        []news.Point{news.NewPoint("要点", "内容")},
		AudioPath:     audio,
		AudioDuration: duration,
		CardImagePath: card,
	}
}

func TestAssembleRejectsEmpty(t *testing.T) {
	cfg := testConfig(t)
	a := NewAssembler(cfg, nil)

	_, err := a.Assemble(context.Background(), nil, "", nil)
	if errors.GetCode(err) != errors.ErrCodeEmptySegments {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeEmptySegments)
	}
}

func TestAssembleFailsFast(t *testing.T) {
	cfg := testConfig(t)
	a := NewAssembler(cfg, nil)
	out := filepath.Join(cfg.Paths.VideoDir, "out.mp4")

	tests := []struct {
		name   string
		mutate func(*news.Segment)
		code   errors.Code
	}{
		{
			name:   "missing card image",
			mutate: func(s *news.Segment) { s.CardImagePath = filepath.Join(t.TempDir(), "gone.png") },
			code:   errors.ErrCodeMissingAsset,
		},
		{
			name:   "missing narration",
			mutate: func(s *news.Segment) { s.AudioPath = "" },
			code:   errors.ErrCodeMissingAsset,
		},
		{
			name:   "zero duration",
			mutate: func(s *news.Segment) { s.AudioDuration = 0 },
			code:   errors.ErrCodeInvalidDuration,
		},
		{
			name:   "missing photo",
			mutate: func(s *news.Segment) { s.PhotoPaths = []string{filepath.Join(t.TempDir(), "gone.jpg")} },
			code:   errors.ErrCodeMissingAsset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := readySegment(t, t.TempDir(), 5)
			bad := readySegment(t, t.TempDir(), 5)
			tt.mutate(bad)

			_, err := a.Assemble(context.Background(), []*news.Segment{good, bad}, out, nil)
			if errors.GetCode(err) != tt.code {
				t.Fatalf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
			// Fail-fast validation must abort before any file is produced.
			if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
				t.Errorf("output file exists after validation failure")
			}
		})
	}
}

func TestAssembleCancelledContext(t *testing.T) {
	cfg := testConfig(t)
	a := NewAssembler(cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seg := readySegment(t, t.TempDir(), 5)
	_, err := a.Assemble(ctx, []*news.Segment{seg}, "", nil)
	if errors.GetCode(err) != errors.ErrCodeEncodingFailed {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeEncodingFailed)
	}
}

func TestSegmentBoundaries(t *testing.T) {
	dir := t.TempDir()
	a := readySegment(t, dir, 5)
	a.PhotoPaths = []string{"p1", "p2"}
	b := readySegment(t, dir, 5)

	bounds := segmentBoundaries([]*news.Segment{a, b})
	if len(bounds) != 2 || bounds[0] != 3 || bounds[1] != 4 {
		t.Errorf("bounds = %v, want [3 4]", bounds)
	}
}
