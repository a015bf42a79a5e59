package card

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/matzehuels/newsreel/pkg/errors"
	"github.com/matzehuels/newsreel/pkg/news"
)

// Opening slide chrome, in pixels.
const (
	openingTitleY     = 40
	openingTop        = 150 // grid top edge below the main title
	openingSideMargin = 50
	openingGapX       = 25
	openingGapY       = 20
	openingCardHeight = 90
	openingCardRadius = 12
	openingBarWidth   = 8
	openingColumns    = 3

	// Title truncation budget: two lines of this many runes, ellipsis past
	// that.
	openingLineRunes = 22
)

// openingTitle is the fixed heading of the opening slide.
const openingTitle = "今日速览"

// RenderOpening draws the collection overview slide: every segment title as a
// small card in a three-column grid with a colored accent bar and an
// estimated time badge. Writes opening_slide.png to the image directory and
// returns its path.
func (r *Renderer) RenderOpening(segments []*news.Segment) (string, error) {
	if len(segments) == 0 {
		return "", errors.New(errors.ErrCodeEmptySegments, "no segments for opening slide")
	}

	l := r.cfg.Layout
	dc := gg.NewContext(l.CanvasWidth, l.CanvasHeight)
	dc.SetRGB255(245, 245, 250)
	dc.Clear()

	heading := r.fonts.Face(l.HeadingFontSize)
	dc.SetFontFace(heading)
	dc.SetRGB255(255, 105, 180)
	w, _ := dc.MeasureString(openingTitle)
	dc.DrawStringAnchored(openingTitle, (float64(l.CanvasWidth)-w)/2, openingTitleY, 0, 1)

	cardW := (float64(l.CanvasWidth) - 2*openingSideMargin - openingGapX*(openingColumns-1)) / openingColumns

	titleFace := r.fonts.Face(28)
	timeFace := r.fonts.Face(26)

	for i, seg := range segments {
		col := i % openingColumns
		row := i / openingColumns
		x := openingSideMargin + float64(col)*(cardW+openingGapX)
		y := float64(openingTop) + float64(row)*(openingCardHeight+openingGapY)
		accent := openingBarCycle[i%len(openingBarCycle)]

		dc.SetRGBA255(0, 0, 0, 20)
		dc.DrawRoundedRectangle(x+4, y+4, cardW, openingCardHeight, openingCardRadius)
		dc.Fill()

		dc.DrawRoundedRectangle(x, y, cardW, openingCardHeight, openingCardRadius)
		dc.SetRGB255(255, 255, 255)
		dc.FillPreserve()
		dc.SetColor(accent)
		dc.SetLineWidth(4)
		dc.Stroke()

		dc.DrawRoundedRectangle(x+5, y+15, openingBarWidth, openingCardHeight-30, 4)
		dc.SetColor(accent)
		dc.Fill()

		dc.SetFontFace(titleFace)
		dc.SetRGB255(30, 30, 30)
		line1, line2 := splitOpeningTitle(seg.Title)
		dc.DrawStringAnchored(line1, x+25, y+18, 0, 1)
		if line2 != "" {
			dc.DrawStringAnchored(line2, x+25, y+18+32, 0, 1)
		}

		// Estimated position badge, right-aligned. The times are a rough
		// 30-second cadence, not the real timeline.
		badge := fmt.Sprintf("%02d:%02d", i/2, (i%2)*30+10)
		dc.SetFontFace(timeFace)
		dc.SetRGB255(140, 140, 140)
		bw, _ := dc.MeasureString(badge)
		dc.DrawStringAnchored(badge, x+cardW-bw-15, y+15, 0, 1)
	}

	if err := os.MkdirAll(r.cfg.Paths.ImageDir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeRenderFailed, err, "create image directory")
	}
	path := filepath.Join(r.cfg.Paths.ImageDir, "opening_slide.png")
	if err := dc.SavePNG(path); err != nil {
		return "", errors.Wrap(errors.ErrCodeRenderFailed, err, "save opening slide")
	}
	r.logger.Debug("rendered opening slide", "items", len(segments), "path", path)
	return path, nil
}

// splitOpeningTitle breaks a title into at most two fixed-length rune lines,
// truncating with an ellipsis when even two lines cannot hold it.
func splitOpeningTitle(title string) (string, string) {
	runes := []rune(title)
	if len(runes) > 2*openingLineRunes {
		runes = append(runes[:2*openingLineRunes-3], []rune("...")...)
	}
	if len(runes) <= openingLineRunes {
		return string(runes), ""
	}
	return string(runes[:openingLineRunes]), string(runes[openingLineRunes:])
}
