package text

import (
	"log/slog"
	"unicode/utf8"
)

// fontRun is a span of text displayable by a single face.
type fontRun struct {
	text string
	face Face
}

// splitFontRuns splits s into maximal runs of runes sharing the same first
// capable face. The faces are scanned from the start for every rune, so an
// earlier face takes over again as soon as it can display the text. Runes
// no face can display are dropped.
func splitFontRuns(s string, faces []Face, logger *slog.Logger) []fontRun {
	var runs []fontRun
	start := 0
	var cur Face
	flush := func(end int) {
		if cur != nil && end > start {
			runs = append(runs, fontRun{text: s[start:end], face: cur})
		}
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		face := firstCapable(faces, r)
		switch {
		case face == nil:
			flush(i)
			logger.Debug("text: no face displays rune, dropping it",
				"rune", string(r), "offset", i, "text", s)
			cur, start = nil, i+size
		case face != cur:
			flush(i)
			cur, start = face, i
		}
		i += size
	}
	flush(len(s))
	return mergeRuns(runs)
}

// mergeRuns joins neighbouring runs of the same face, which occur around
// dropped runes.
func mergeRuns(runs []fontRun) []fontRun {
	out := runs[:0]
	for _, r := range runs {
		if n := len(out); n > 0 && out[n-1].face == r.face {
			out[n-1].text += r.text
			continue
		}
		out = append(out, r)
	}
	return out
}

func firstCapable(faces []Face, r rune) Face {
	for _, f := range faces {
		if f.HasGlyph(r) {
			return f
		}
	}
	return nil
}
