package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/paulmach/orb"
)

// GoTextShaper shapes text with the HarfBuzz port of go-text/typesetting.
// Text is split into bidi runs first; each run is shaped in its own
// direction and script, and the results are concatenated in visual order.
//
// GoTextShaper is safe for concurrent use. HarfbuzzShaper instances are
// pooled since they are not.
type GoTextShaper struct {
	pool sync.Pool
	lang language.Language
}

// NewGoTextShaper returns a shaper using lang for language-specific
// features. An empty lang defaults to English.
func NewGoTextShaper(lang string) *GoTextShaper {
	if lang == "" {
		lang = "en"
	}
	return &GoTextShaper{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		lang: language.NewLanguage(lang),
	}
}

// Shape implements Shaper. The face must come from a Font.
func (s *GoTextShaper) Shape(text string, face Face) (*Run, error) {
	ff, ok := face.(*fontFace)
	if !ok {
		return nil, &ShapeError{Text: text, Face: faceName(face), Err: ErrUnsupportedFace}
	}
	if text == "" {
		return NewRun(text, face, nil), nil
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	defer s.pool.Put(hb)

	var glyphs []Glyph
	pen := 0.0
	rtl := false
	for _, br := range bidiRuns(text) {
		dir := di.DirectionLTR
		if br.rtl {
			dir = di.DirectionRTL
			rtl = true
		}
		ff.mu.Lock()
		out := hb.Shape(shaping.Input{
			Text:      br.text,
			RunStart:  0,
			RunEnd:    len(br.text),
			Direction: dir,
			Face:      ff.shaping,
			Size:      floatToFixed(ff.size),
			Script:    runScript(br.text),
			Language:  s.lang,
		})
		ff.mu.Unlock()
		glyphs, pen = appendGlyphs(glyphs, out.Glyphs, pen, br.start)
	}

	r := NewRun(text, face, glyphs)
	r.RTL = rtl
	return r, nil
}

// appendGlyphs converts shaped glyphs to Glyph values starting at pen and
// returns the advanced pen. go-text measures y upwards.
func appendGlyphs(dst []Glyph, src []shaping.Glyph, pen float64, clusterBase int) ([]Glyph, float64) {
	for _, g := range src {
		x := pen + fixedToFloat(g.XOffset)
		y := -fixedToFloat(g.YOffset)
		out := Glyph{
			ID:      GlyphID(g.GlyphID),
			Cluster: clusterBase + g.TextIndex(),
			X:       x,
			Y:       y,
			Advance: fixedToFloat(g.Advance),
		}
		if g.Width != 0 && g.Height != 0 {
			// Height is negative when the glyph extends below YBearing.
			corner := orb.Point{x + fixedToFloat(g.XBearing), y - fixedToFloat(g.YBearing)}
			out.Bounds = orb.Bound{Min: corner, Max: corner}.Extend(orb.Point{
				corner[0] + fixedToFloat(g.Width),
				corner[1] - fixedToFloat(g.Height),
			})
			out.Inked = true
		}
		dst = append(dst, out)
		pen += out.Advance
	}
	return dst, pen
}

func faceName(f Face) string {
	if f == nil {
		return "<nil>"
	}
	return f.Name()
}
