// Package card renders news items into raster card frames.
//
// Two layouts are supported, selected by the caller: a multi-card grid
// (one rounded cell per key point, placed by a fixed lookup table) and an
// adaptive single card (a bulleted list on one centered card whose height
// follows its content). Both share the pixel-accurate text wrapper and the
// resolved font set.
//
// Rendering is single-threaded per call and side-effect-scoped to one output
// file; calls for independent segments may run in parallel.
package card

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"

	"github.com/matzehuels/newsreel/pkg/config"
	"github.com/matzehuels/newsreel/pkg/errors"
	"github.com/matzehuels/newsreel/pkg/news"
	"github.com/matzehuels/newsreel/pkg/observability"
	"github.com/matzehuels/newsreel/pkg/progress"
)

// Mode selects which card layout a render call produces.
type Mode string

const (
	// ModeGrid draws the multi-card grid layout (primary).
	ModeGrid Mode = "grid"
	// ModeAdaptive draws the single-card bulleted layout (alternate).
	ModeAdaptive Mode = "adaptive"
)

// ParseMode validates a layout mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGrid, ModeAdaptive:
		return Mode(s), nil
	case "":
		return ModeGrid, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"invalid layout mode: %q (must be one of: grid, adaptive)", s)
}

// Renderer produces one raster frame per segment.
type Renderer struct {
	cfg    config.Config
	fonts  *FontSet
	logger *log.Logger
}

// NewRenderer builds a renderer. A nil fonts resolves the system font set;
// a nil logger discards.
func NewRenderer(cfg config.Config, fonts *FontSet, logger *log.Logger) *Renderer {
	if fonts == nil {
		fonts = LoadFonts(cfg.Layout)
	}
	if logger == nil {
		logger = log.Default()
	}
	if fonts.Fallback {
		logger.Warn("no CJK-capable font found, using built-in fallback",
			"code", errors.ErrCodeFontUnavailable)
	}
	return &Renderer{cfg: cfg, fonts: fonts, logger: logger}
}

// Render draws seg in the given mode, writes the frame to the image
// directory as news_card_NNN.png, fills seg.CardImagePath, and returns the
// path.
func (r *Renderer) Render(ctx context.Context, seg *news.Segment, index int, mode Mode) (string, error) {
	if err := seg.Validate(); err != nil {
		return "", err
	}

	observability.Render().OnCardStart(ctx, index, seg.PointCount())
	start := time.Now()

	var path string
	var err error
	switch mode {
	case ModeAdaptive:
		path, err = r.renderAdaptive(seg, index)
	default:
		path, err = r.renderGrid(seg, index)
	}
	observability.Render().OnCardComplete(ctx, index, path, time.Since(start), err)
	if err != nil {
		return "", err
	}

	seg.CardImagePath = path
	r.logger.Debug("rendered card", "index", index, "mode", mode, "path", path)
	return path, nil
}

// cardPath returns the zero-padded sequential output path for a card frame,
// creating the image directory if absent.
func (r *Renderer) cardPath(index int) (string, error) {
	if err := os.MkdirAll(r.cfg.Paths.ImageDir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeRenderFailed, err, "create image directory")
	}
	return filepath.Join(r.cfg.Paths.ImageDir, fmt.Sprintf("news_card_%03d.png", index)), nil
}

// Grid layout chrome, in pixels.
const (
	gridTitleY       = 70  // main title top edge
	gridTitleShadow  = 3   // title shadow offset
	cellShadowOffset = 4   // cell shadow offset
	cellRadius       = 12  // cell corner radius
	cellInset        = 30  // inner padding of each cell
	cellIconSize     = 32  // icon background square
	cellHeaderDrop   = 45  // divider offset below the header top
	lineGapAfterRule = 25  // first body line offset below the divider
)

func (r *Renderer) renderGrid(seg *news.Segment, index int) (string, error) {
	l := r.cfg.Layout
	dc := gg.NewContext(l.CanvasWidth, l.CanvasHeight)
	dc.SetColor(gridCanvasBG)
	dc.Clear()

	// Main title, shadowed, centered at the top.
	heading := r.fonts.Face(l.HeadingFontSize)
	dc.SetFontFace(heading)
	titleW, _ := dc.MeasureString(seg.Title)
	titleX := (float64(l.CanvasWidth) - titleW) / 2
	dc.SetColor(shade(gridTitleColor, 2))
	dc.DrawStringAnchored(seg.Title, titleX+gridTitleShadow, gridTitleY+gridTitleShadow, 0, 1)
	dc.SetColor(gridTitleColor)
	dc.DrawStringAnchored(seg.Title, titleX, gridTitleY, 0, 1)

	area := Rect{
		X: l.GridMargin,
		Y: l.GridTop,
		W: float64(l.CanvasWidth) - 2*l.GridMargin,
		H: float64(l.CanvasHeight) - l.GridTop - l.GridBottomInset,
	}
	plan := PlanFor(seg.PointCount())

	subtitleFace := r.fonts.Face(l.SubtitleFontSize)
	bodyFace := r.fonts.Face(l.BodyFontSize)
	iconFace := r.fonts.Face(l.IconFontSize)
	bodyMeasure := FaceMeasurer{Face: bodyFace}

	for i, point := range seg.Points {
		cell := plan.CellRect(i, area, l.GridGap)
		border := borderCycle[i%len(borderCycle)]

		// Drop shadow in a darkened border tone, then the cell body with a
		// colored outline.
		dc.SetColor(shade(border, 3))
		dc.DrawRoundedRectangle(cell.X+cellShadowOffset, cell.Y+cellShadowOffset, cell.W, cell.H, cellRadius)
		dc.Fill()

		dc.DrawRoundedRectangle(cell.X, cell.Y, cell.W, cell.H, cellRadius)
		dc.SetRGB255(255, 255, 255)
		dc.FillPreserve()
		dc.SetColor(border)
		dc.SetLineWidth(2)
		dc.Stroke()

		// Header: tinted icon square, glyph, bold subtitle.
		headerY := cell.Y + cellInset
		iconX := cell.X + cellInset
		dc.SetColor(iconBGCycle[i%len(iconBGCycle)])
		dc.DrawRoundedRectangle(iconX, headerY, cellIconSize, cellIconSize, 6)
		dc.Fill()

		dc.SetFontFace(iconFace)
		dc.SetColor(border)
		dc.DrawStringAnchored(iconCycle[i%len(iconCycle)], iconX+cellIconSize/2, headerY+cellIconSize/2, 0.5, 0.35)

		dc.SetFontFace(subtitleFace)
		dc.SetRGB255(0, 0, 0)
		dc.DrawStringAnchored(point.Subtitle, iconX+cellIconSize+15, headerY+3, 0, 1)

		// Divider under the header in the border color.
		ruleY := headerY + cellHeaderDrop
		dc.SetColor(border)
		dc.SetLineWidth(2)
		dc.DrawLine(cell.X+cellInset, ruleY, cell.X+cell.W-cellInset, ruleY)
		dc.Stroke()

		// Body text wrapped to the cell width; lines past the bottom of the
		// cell are dropped silently.
		dc.SetFontFace(bodyFace)
		dc.SetRGB255(51, 51, 51)
		textY := ruleY + lineGapAfterRule
		for line := range Wrap(point.Content, bodyMeasure, cell.W-2*cellInset) {
			if textY+l.BodyLineHeight > cell.Y+cell.H-cellInset {
				break
			}
			dc.DrawStringAnchored(line, cell.X+cellInset, textY, 0, 1)
			textY += l.BodyLineHeight
		}
	}

	path, err := r.cardPath(index)
	if err != nil {
		return "", err
	}
	if err := dc.SavePNG(path); err != nil {
		return "", errors.Wrap(errors.ErrCodeRenderFailed, err, "save card %d", index)
	}
	return path, nil
}

// Adaptive layout chrome, in pixels.
const (
	adaptiveShadowOffset = 10
	adaptiveRadius       = 20
	adaptiveIconSize     = 60
	adaptiveIconInset    = 25
	adaptiveTitleTop     = 100 // first title line offset from the card top
	adaptiveRuleMargin   = 150 // divider inset from the card edges
	adaptiveFooterRise   = 70  // footer offset from the card bottom
)

func (r *Renderer) renderAdaptive(seg *news.Segment, index int) (string, error) {
	l := r.cfg.Layout
	scheme := SchemeFor(seg.Style)

	dc := gg.NewContext(l.CanvasWidth, l.CanvasHeight)
	dc.SetColor(scheme.Background)
	dc.Clear()

	titleFace := r.fonts.Face(l.TitleFontSize)
	pointFace := r.fonts.Face(l.PointFontSize)
	metaFace := r.fonts.Face(l.MetaFontSize)
	bulletFace := r.fonts.Face(l.BulletFontSize)

	rect := AdaptiveRect(seg, FaceMeasurer{Face: titleFace}, FaceMeasurer{Face: pointFace}, l)

	// Soft black shadow behind the card.
	dc.SetRGBA255(0, 0, 0, 30)
	dc.DrawRoundedRectangle(rect.X+adaptiveShadowOffset, rect.Y+adaptiveShadowOffset, rect.W, rect.H, adaptiveRadius+5)
	dc.Fill()

	// Card body with a thick accent outline.
	dc.DrawRoundedRectangle(rect.X, rect.Y, rect.W, rect.H, adaptiveRadius)
	dc.SetColor(scheme.CardBG)
	dc.FillPreserve()
	dc.SetColor(scheme.Border)
	dc.SetLineWidth(6)
	dc.Stroke()

	// Corner icon on an accent square.
	dc.SetColor(scheme.Border)
	dc.DrawRoundedRectangle(rect.X+adaptiveIconInset, rect.Y+adaptiveIconInset, adaptiveIconSize, adaptiveIconSize, 12)
	dc.Fill()
	dc.SetFontFace(r.fonts.Face(40))
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored(scheme.Icon,
		rect.X+adaptiveIconInset+adaptiveIconSize/2,
		rect.Y+adaptiveIconInset+adaptiveIconSize/2, 0.5, 0.35)

	y := rect.Y + adaptiveTitleTop

	// Centered title.
	dc.SetFontFace(titleFace)
	dc.SetColor(scheme.Title)
	for line := range Wrap(seg.Title, FaceMeasurer{Face: titleFace}, rect.W-2*l.Padding) {
		w, _ := dc.MeasureString(line)
		dc.DrawStringAnchored(line, rect.X+(rect.W-w)/2, y, 0, 1)
		y += l.TitleLineHeight
	}

	// Accent divider.
	y += 30
	dc.SetColor(scheme.Border)
	dc.SetLineWidth(4)
	dc.DrawLine(rect.X+adaptiveRuleMargin, y, rect.X+rect.W-adaptiveRuleMargin, y)
	dc.Stroke()
	y += 50

	// Bulleted points.
	bulletX := rect.X + l.Padding
	textX := bulletX + bulletIndent
	for _, point := range seg.Points {
		dc.SetFontFace(bulletFace)
		dc.SetColor(scheme.Border)
		dc.DrawStringAnchored("●", bulletX, y, 0, 1)

		dc.SetFontFace(pointFace)
		dc.SetColor(scheme.Text)
		for line := range Wrap(point.Content, FaceMeasurer{Face: pointFace}, rect.W-2*l.Padding-bulletIndent) {
			dc.DrawStringAnchored(line, textX, y, 0, 1)
			y += l.LineHeight
		}
		y += l.PointSpacing
	}

	// Footer: source on the left, date right-aligned.
	footerY := rect.Y + rect.H - adaptiveFooterRise
	dc.SetFontFace(metaFace)
	dc.SetColor(scheme.Meta)
	dc.DrawStringAnchored("来源: "+seg.Source, rect.X+l.Padding, footerY, 0, 1)

	date := publishDate(seg.Published)
	dateW, _ := dc.MeasureString(date)
	dc.DrawStringAnchored(date, rect.X+rect.W-l.Padding-dateW, footerY, 0, 1)

	path, err := r.cardPath(index)
	if err != nil {
		return "", err
	}
	if err := dc.SavePNG(path); err != nil {
		return "", errors.Wrap(errors.ErrCodeRenderFailed, err, "save card %d", index)
	}
	return path, nil
}

// RenderAll renders every segment in order, filling CardImagePath on each,
// and reports per-item progress. The first failure aborts the batch.
func (r *Renderer) RenderAll(ctx context.Context, segments []*news.Segment, mode Mode, rep progress.Reporter) error {
	if len(segments) == 0 {
		return errors.New(errors.ErrCodeEmptySegments, "no segments to render")
	}
	if rep == nil {
		rep = progress.Noop{}
	}
	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "render interrupted")
		}
		if _, err := r.Render(ctx, seg, i+1, mode); err != nil {
			return err
		}
		rep.Report(i+1, len(segments), seg.Title)
	}
	return nil
}

// publishDate trims an upstream timestamp to its date part.
func publishDate(published string) string {
	if i := strings.IndexByte(published, 'T'); i >= 0 {
		return published[:i]
	}
	if len(published) > 10 {
		return published[:10]
	}
	return published
}
