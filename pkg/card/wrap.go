package card

import (
	"iter"
	"slices"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Measurer reports the rendered pixel width of a string for one font face.
// It is the only text-metric capability the wrapping and sizing code needs,
// so tests can inject fixed metrics.
type Measurer interface {
	Width(s string) float64
}

// FaceMeasurer measures with a font.Face.
type FaceMeasurer struct {
	Face font.Face
}

// Width implements Measurer.
func (m FaceMeasurer) Width(s string) float64 {
	return fixedToFloat(font.MeasureString(m.Face, s))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Wrap splits s into lines whose measured width does not exceed maxWidth.
//
// Accumulation is greedy rune by rune, not word by word: the primary script
// is logographic and has no reliable word boundaries. A line is committed the
// moment adding the next rune would exceed the budget. A single rune that
// alone exceeds maxWidth is emitted as its own line, never split or dropped.
//
// The returned sequence is lazy and restartable; Wrap itself is a pure
// function of its inputs.
func Wrap(s string, m Measurer, maxWidth float64) iter.Seq[string] {
	return func(yield func(string) bool) {
		var line []rune
		for _, r := range s {
			candidate := string(append(line, r))
			if len(line) == 0 || m.Width(candidate) <= maxWidth {
				line = append(line, r)
				continue
			}
			if !yield(string(line)) {
				return
			}
			line = line[:0]
			line = append(line, r)
		}
		if len(line) > 0 {
			yield(string(line))
		}
	}
}

// WrapAll materializes Wrap's output into a slice.
func WrapAll(s string, m Measurer, maxWidth float64) []string {
	return slices.Collect(Wrap(s, m, maxWidth))
}

// CountLines returns the number of lines Wrap would produce without
// materializing them.
func CountLines(s string, m Measurer, maxWidth float64) int {
	n := 0
	for range Wrap(s, m, maxWidth) {
		n++
	}
	return n
}
