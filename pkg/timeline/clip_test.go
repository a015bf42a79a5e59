package timeline

import (
	"testing"

	"github.com/matzehuels/newsreel/pkg/news"
)

func planSegment(duration float64, photos ...string) *news.Segment {
	return &news.Segment{
		Title:         "测试",
		Points:        []news.Point{news.NewPoint("要点", "内容")},
		AudioPath:     "/audio/a.mp3",
		AudioDuration: duration,
		CardImagePath: "/images/card.png",
		PhotoPaths:    photos,
	}
}

func TestPlan(t *testing.T) {
	t.Run("cards only", func(t *testing.T) {
		clips := Plan([]*news.Segment{planSegment(5), planSegment(5), planSegment(5)})
		if len(clips) != 3 {
			t.Fatalf("got %d clips, want 3", len(clips))
		}
		if got := NominalDuration(clips); got != 15 {
			t.Errorf("NominalDuration = %.1f, want 15.0", got)
		}
	})

	t.Run("photos precede their card at two seconds each", func(t *testing.T) {
		clips := Plan([]*news.Segment{planSegment(10, "/photos/1.jpg", "/photos/2.jpg")})
		if len(clips) != 3 {
			t.Fatalf("got %d clips, want 3", len(clips))
		}
		if clips[0].ImagePath != "/photos/1.jpg" || clips[0].Duration != 2.0 {
			t.Errorf("clip 0 = %+v, want first photo at 2.0s", clips[0])
		}
		if clips[1].ImagePath != "/photos/2.jpg" || clips[1].Duration != 2.0 {
			t.Errorf("clip 1 = %+v, want second photo at 2.0s", clips[1])
		}
		if clips[2].ImagePath != "/images/card.png" || clips[2].Duration != 10 {
			t.Errorf("clip 2 = %+v, want card at narration duration", clips[2])
		}
		if got := NominalDuration(clips); got != 14 {
			t.Errorf("NominalDuration = %.1f, want 14.0", got)
		}
	})

	t.Run("photo clips have no narration", func(t *testing.T) {
		clips := Plan([]*news.Segment{planSegment(4, "/photos/1.jpg")})
		if clips[0].AudioPath != "" {
			t.Errorf("photo clip carries narration %q", clips[0].AudioPath)
		}
		if clips[1].AudioPath != "/audio/a.mp3" {
			t.Errorf("card clip audio = %q", clips[1].AudioPath)
		}
	})

	t.Run("an opening card skips the transition", func(t *testing.T) {
		clips := Plan([]*news.Segment{planSegment(4), planSegment(6)})
		want := []bool{false, true}
		for i, clip := range clips {
			if clip.MixTransition != want[i] {
				t.Errorf("clip %d MixTransition = %v, want %v", i, clip.MixTransition, want[i])
			}
		}
	})

	t.Run("photo clips always carry the transition", func(t *testing.T) {
		clips := Plan([]*news.Segment{
			planSegment(4, "/photos/1.jpg"),
			planSegment(6),
		})
		want := []bool{true, true, true}
		for i, clip := range clips {
			if clip.MixTransition != want[i] {
				t.Errorf("clip %d MixTransition = %v, want %v", i, clip.MixTransition, want[i])
			}
		}
	})

	t.Run("empty input yields empty plan", func(t *testing.T) {
		if clips := Plan(nil); len(clips) != 0 {
			t.Errorf("got %d clips, want 0", len(clips))
		}
	})
}

func TestInfo(t *testing.T) {
	segs := []*news.Segment{
		planSegment(65, "/photos/1.jpg"),
		planSegment(10),
	}
	info := Info(segs, 1920, 1080, 30)

	if info.SegmentCount != 2 {
		t.Errorf("SegmentCount = %d, want 2", info.SegmentCount)
	}
	if info.ClipCount != 3 {
		t.Errorf("ClipCount = %d, want 3", info.ClipCount)
	}
	if info.TotalDuration != 77 {
		t.Errorf("TotalDuration = %.1f, want 77.0", info.TotalDuration)
	}
	if info.DurationFormatted != "1:17" {
		t.Errorf("DurationFormatted = %q, want 1:17", info.DurationFormatted)
	}
	if info.Resolution != "1920x1080" {
		t.Errorf("Resolution = %q", info.Resolution)
	}
	if info.FPS != 30 {
		t.Errorf("FPS = %d, want 30", info.FPS)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{9.9, "0:09"},
		{60, "1:00"},
		{75.4, "1:15"},
		{600, "10:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%.1f) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
