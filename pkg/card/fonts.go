package card

import (
	"os"
	"runtime"
	"slices"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/newsreel/pkg/config"
)

// FontSet resolves font faces for the card renderer. The underlying font
// file is located once at construction from a ranked candidate list; faces
// are derived per size on demand and cached.
//
// When no candidate can be loaded, Fallback is set and every face is the
// built-in bitmap font. Rendering proceeds, but CJK glyphs will display as
// boxes; callers should surface a warning.
type FontSet struct {
	// Fallback is true when no TrueType candidate could be loaded and the
	// minimal built-in face is in use.
	Fallback bool

	ttf *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// Installed CJK-capable font files tried in order, per platform. The list
// mirrors what the target systems actually ship; .ttc collections that the
// parser rejects are skipped and the search continues.
func systemCandidates() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/System/Library/Fonts/PingFang.ttc",
			"/System/Library/Fonts/STHeiti Light.ttc",
			"/System/Library/Fonts/Hiragino Sans GB.ttc",
		}
	case "windows":
		return []string{
			"C:/Windows/Fonts/msyh.ttc",
			"C:/Windows/Fonts/simhei.ttf",
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
			"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
		}
	}
}

// Font names handed to findfont when no ranked candidate resolves.
var discoveryNames = []string{
	"NotoSansSC-Regular.ttf",
	"NotoSansCJK-Regular.ttc",
	"wqy-microhei.ttc",
	"msyh.ttc",
	"simhei.ttf",
}

// LoadFonts resolves the first usable font from the configured extra paths,
// the per-OS system candidates, and findfont discovery, in that order.
// It never fails; the zero-dependency bitmap face is the last resort.
func LoadFonts(l config.Layout) *FontSet {
	paths := slices.Clone(l.FontPaths)
	paths = append(paths, systemCandidates()...)
	for _, name := range discoveryNames {
		if p, err := findfont.Find(name); err == nil {
			paths = append(paths, p)
		}
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		return &FontSet{ttf: f, faces: make(map[float64]font.Face)}
	}

	return &FontSet{Fallback: true, faces: make(map[float64]font.Face)}
}

// FallbackFonts returns a FontSet that always uses the built-in bitmap face.
// Tests use it for deterministic metrics without touching the host fonts.
func FallbackFonts() *FontSet {
	return &FontSet{Fallback: true, faces: make(map[float64]font.Face)}
}

// Face returns a font.Face at the given point size. Faces are cached; the
// method is safe for concurrent use by parallel renders.
func (s *FontSet) Face(size float64) font.Face {
	if s.Fallback {
		return basicfont.Face7x13
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(s.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	s.faces[size] = f
	return f
}

// Measurer returns a width Measurer at the given point size.
func (s *FontSet) Measurer(size float64) Measurer {
	return FaceMeasurer{Face: s.Face(size)}
}
