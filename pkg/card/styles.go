package card

import (
	"image/color"

	"github.com/matzehuels/newsreel/pkg/news"
)

// Scheme is the resolved color tuple for one card style.
type Scheme struct {
	Background color.RGBA // canvas fill
	CardBG     color.RGBA // card body fill
	Border     color.RGBA // border and accent strokes
	Title      color.RGBA
	Text       color.RGBA
	Meta       color.RGBA
	Icon       string // icon glyph for the adaptive card corner
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

var schemes = map[news.Style]Scheme{
	news.StyleBlue: {
		Background: rgb(245, 245, 250),
		CardBG:     rgb(255, 255, 255),
		Border:     rgb(64, 169, 255),
		Title:      rgb(30, 30, 30),
		Text:       rgb(60, 60, 60),
		Meta:       rgb(140, 140, 140),
		Icon:       "💬",
	},
	news.StylePink: {
		Background: rgb(245, 245, 250),
		CardBG:     rgb(255, 255, 255),
		Border:     rgb(255, 105, 180),
		Title:      rgb(30, 30, 30),
		Text:       rgb(60, 60, 60),
		Meta:       rgb(140, 140, 140),
		Icon:       "🚩",
	},
	news.StyleGreen: {
		Background: rgb(245, 245, 250),
		CardBG:     rgb(255, 255, 255),
		Border:     rgb(120, 220, 120),
		Title:      rgb(30, 30, 30),
		Text:       rgb(60, 60, 60),
		Meta:       rgb(140, 140, 140),
		Icon:       "🔧",
	},
	news.StylePurple: {
		Background: rgb(245, 245, 250),
		CardBG:     rgb(255, 255, 255),
		Border:     rgb(147, 112, 219),
		Title:      rgb(30, 30, 30),
		Text:       rgb(60, 60, 60),
		Meta:       rgb(140, 140, 140),
		Icon:       "📊",
	},
}

// SchemeFor resolves a style name to its color tuple. Unknown styles fall
// back to blue, matching the upstream default.
func SchemeFor(style news.Style) Scheme {
	if s, ok := schemes[style]; ok {
		return s
	}
	return schemes[news.StyleBlue]
}

// The grid layout cycles cell chrome through four fixed sets, indexed by
// point index mod 4, independent of the chosen scheme.
var (
	gridCanvasBG   = rgb(253, 240, 240)
	gridTitleColor = rgb(233, 78, 139)

	borderCycle = [4]color.RGBA{
		rgb(0, 0, 0),
		rgb(233, 78, 139),
		rgb(76, 175, 80),
		rgb(33, 150, 243),
	}

	iconBGCycle = [4]color.RGBA{
		rgb(227, 242, 253),
		rgb(252, 228, 236),
		rgb(232, 245, 233),
		rgb(227, 242, 253),
	}

	iconCycle = [4]string{"〈 〉", "🚩", "🔧", "📈"}
)

// openingBarCycle colors the opening slide's card accents, six colors cycled
// by item index.
var openingBarCycle = [6]color.RGBA{
	rgb(64, 169, 255),
	rgb(255, 105, 180),
	rgb(120, 220, 120),
	rgb(147, 112, 219),
	rgb(255, 165, 0),
	rgb(100, 200, 200),
}

// shade returns c darkened by an integer divisor, used for drop shadows that
// echo their border color.
func shade(c color.RGBA, div uint8) color.RGBA {
	return color.RGBA{R: c.R / div, G: c.G / div, B: c.B / div, A: 255}
}
