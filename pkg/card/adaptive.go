package card

import (
	"github.com/matzehuels/newsreel/pkg/config"
	"github.com/matzehuels/newsreel/pkg/news"
)

// Fixed vertical allowances in the adaptive card, in pixels.
const (
	separatorHeight = 40 // title divider block
	metaHeight      = 80 // footer row with source and date
	bulletIndent    = 70 // horizontal offset from bullet glyph to point text
)

// AdaptiveRect computes the single centered card rectangle for the adaptive
// layout mode. Height grows with the wrapped title and point text and is
// clamped to [MinCardHeight, MaxCardHeight]; width is a fixed ratio of the
// canvas. Line counts use the same pixel wrapper as rendering, so the sizing
// and the drawing never disagree.
func AdaptiveRect(seg *news.Segment, title, body Measurer, l config.Layout) Rect {
	cardW := float64(l.CanvasWidth) * l.CardWidthRatio

	titleMax := cardW - 2*l.Padding
	titleLines := CountLines(seg.Title, title, titleMax)

	pointMax := cardW - 2*l.Padding - bulletIndent
	totalPointLines := 0
	for _, p := range seg.Points {
		totalPointLines += CountLines(p.Content, body, pointMax)
	}

	cardH := l.Padding*2 +
		float64(titleLines)*l.TitleLineHeight +
		separatorHeight +
		float64(len(seg.Points))*l.PointSpacing +
		float64(totalPointLines)*l.LineHeight +
		metaHeight

	if cardH < l.MinCardHeight {
		cardH = l.MinCardHeight
	}
	if cardH > l.MaxCardHeight {
		cardH = l.MaxCardHeight
	}

	return Rect{
		X: (float64(l.CanvasWidth) - cardW) / 2,
		Y: (float64(l.CanvasHeight) - cardH) / 2,
		W: cardW,
		H: cardH,
	}
}
