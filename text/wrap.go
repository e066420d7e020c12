package text

import (
	"strings"
	"unicode"

	"github.com/go-text/typesetting/segmenter"
)

// breakSegments splits s at its UAX #14 line-break opportunities. Each
// segment keeps its trailing whitespace, so the segments concatenate back
// to s.
func breakSegments(s string) []string {
	if s == "" {
		return nil
	}
	var seg segmenter.Segmenter
	seg.InitWithString(s)
	it := seg.LineIterator()
	var out []string
	for it.Next() {
		out = append(out, string(it.Line().Text))
	}
	return out
}

// wrapLine greedily packs the break segments of s into lines no wider than
// width as reported by measure. A segment wider than width on its own takes
// a line by itself. Trailing whitespace is trimmed from every line.
func wrapLine(s string, width float64, measure func(string) (float64, error)) ([]string, error) {
	var (
		lines []string
		cur   strings.Builder
	)
	for _, seg := range breakSegments(s) {
		if cur.Len() == 0 {
			cur.WriteString(seg)
			continue
		}
		w, err := measure(trimTrailingSpace(cur.String() + seg))
		if err != nil {
			return nil, err
		}
		if w <= width {
			cur.WriteString(seg)
			continue
		}
		lines = append(lines, trimTrailingSpace(cur.String()))
		cur.Reset()
		cur.WriteString(seg)
	}
	if cur.Len() > 0 || len(lines) == 0 {
		lines = append(lines, trimTrailingSpace(cur.String()))
	}
	return lines, nil
}

func trimTrailingSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// wordPieces splits s into alternating words and whitespace separators.
// Punctuation stays attached to its word.
func wordPieces(s string) []piece {
	var out []piece
	var cur strings.Builder
	space := false
	for i, r := range s {
		isSpace := unicode.IsSpace(r)
		if i > 0 && isSpace != space && cur.Len() > 0 {
			out = append(out, piece{text: cur.String(), space: space})
			cur.Reset()
		}
		space = isSpace
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		out = append(out, piece{text: cur.String(), space: space})
	}
	return out
}

// piece is a word or a whitespace separator.
type piece struct {
	text  string
	space bool
}
