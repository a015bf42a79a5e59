package card

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/newsreel/pkg/config"
	"github.com/matzehuels/newsreel/pkg/errors"
	"github.com/matzehuels/newsreel/pkg/news"
	"github.com/matzehuels/newsreel/pkg/progress"
)

func testRenderer(t *testing.T) (*Renderer, config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.ImageDir = t.TempDir()
	return NewRenderer(cfg, FallbackFonts(), nil), cfg
}

func renderSegment(points int) *news.Segment {
	seg := &news.Segment{
		Title:     "科技早报",
		Source:    "测试来源",
		Published: "2026-08-30T09:00:00",
		Style:     news.StyleBlue,
	}
	for i := 0; i < points; i++ {
		seg.Points = append(seg.Points, news.NewPoint("", "某公司发布新一代芯片，性能大幅提升"))
	}
	return seg
}

func TestRenderGrid(t *testing.T) {
	r, cfg := testRenderer(t)

	for _, points := range []int{1, 4, 8} {
		seg := renderSegment(points)
		path, err := r.Render(context.Background(), seg, points, ModeGrid)
		if err != nil {
			t.Fatalf("Render(%d points): %v", points, err)
		}
		if seg.CardImagePath != path {
			t.Errorf("CardImagePath = %q, want %q", seg.CardImagePath, path)
		}
		assertCanvasPNG(t, path, cfg.Layout)
	}
}

func TestRenderAdaptive(t *testing.T) {
	r, cfg := testRenderer(t)
	seg := renderSegment(3)

	path, err := r.Render(context.Background(), seg, 1, ModeAdaptive)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertCanvasPNG(t, path, cfg.Layout)
}

func TestRenderSequentialNaming(t *testing.T) {
	r, _ := testRenderer(t)

	p1, err := r.Render(context.Background(), renderSegment(2), 1, ModeGrid)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := r.Render(context.Background(), renderSegment(2), 2, ModeGrid)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(p1) != "news_card_001.png" || filepath.Base(p2) != "news_card_002.png" {
		t.Errorf("unexpected names %q, %q", filepath.Base(p1), filepath.Base(p2))
	}
}

func TestRenderRejectsInvalidSegment(t *testing.T) {
	r, _ := testRenderer(t)

	_, err := r.Render(context.Background(), &news.Segment{Title: "无要点"}, 1, ModeGrid)
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestRenderAll(t *testing.T) {
	r, _ := testRenderer(t)
	segs := []*news.Segment{renderSegment(2), renderSegment(5)}

	var reports int
	rep := progress.Func(func(current, total int, _ string) {
		reports++
		if total != len(segs) {
			t.Errorf("total = %d, want %d", total, len(segs))
		}
	})
	if err := r.RenderAll(context.Background(), segs, ModeGrid, rep); err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if reports != len(segs) {
		t.Errorf("got %d progress reports, want %d", reports, len(segs))
	}
	for i, seg := range segs {
		if seg.CardImagePath == "" {
			t.Errorf("segment %d has no card image path", i)
		}
	}
}

func TestRenderAllEmpty(t *testing.T) {
	r, _ := testRenderer(t)
	err := r.RenderAll(context.Background(), nil, ModeGrid, nil)
	if errors.GetCode(err) != errors.ErrCodeEmptySegments {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeEmptySegments)
	}
}

func TestRenderOpening(t *testing.T) {
	r, cfg := testRenderer(t)

	segs := make([]*news.Segment, 10)
	for i := range segs {
		segs[i] = renderSegment(2)
	}
	path, err := r.RenderOpening(segs)
	if err != nil {
		t.Fatalf("RenderOpening: %v", err)
	}
	if filepath.Base(path) != "opening_slide.png" {
		t.Errorf("name = %q, want opening_slide.png", filepath.Base(path))
	}
	assertCanvasPNG(t, path, cfg.Layout)

	if _, err := r.RenderOpening(nil); errors.GetCode(err) != errors.ErrCodeEmptySegments {
		t.Errorf("empty list: code = %v, want %v", errors.GetCode(err), errors.ErrCodeEmptySegments)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"grid", ModeGrid, false},
		{"adaptive", ModeAdaptive, false},
		{"", ModeGrid, false},
		{"fancy", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitOpeningTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line1 string
		line2 string
	}{
		{"short stays single line", "简短标题", "简短标题", ""},
		{
			"long splits in two",
			"这是一条超过二十二个字符需要换行展示的较长新闻标题",
			"这是一条超过二十二个字符需要换行展示的较长新",
			"闻标题",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l1, l2 := splitOpeningTitle(tt.input)
			if l1 != tt.line1 || l2 != tt.line2 {
				t.Errorf("splitOpeningTitle(%q) = (%q, %q), want (%q, %q)",
					tt.input, l1, l2, tt.line1, tt.line2)
			}
		})
	}

	t.Run("overlong gets ellipsis", func(t *testing.T) {
		runes := make([]rune, 60)
		for i := range runes {
			runes[i] = '长'
		}
		l1, l2 := splitOpeningTitle(string(runes))
		if got := len([]rune(l1 + l2)); got != 2*openingLineRunes {
			t.Errorf("truncated length = %d runes, want %d", got, 2*openingLineRunes)
		}
		if tail := []rune(l2); string(tail[len(tail)-3:]) != "..." {
			t.Errorf("truncated title does not end in ellipsis: %q", l2)
		}
	})
}

func assertCanvasPNG(t *testing.T, path string, l config.Layout) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	b := img.Bounds()
	if b.Dx() != l.CanvasWidth || b.Dy() != l.CanvasHeight {
		t.Errorf("canvas = %dx%d, want %dx%d", b.Dx(), b.Dy(), l.CanvasWidth, l.CanvasHeight)
	}
}
