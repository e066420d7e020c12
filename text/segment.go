package text

import (
	"unicode/utf8"

	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"
)

// bidiRun is a span of text with a single direction. start is the rune
// offset of the span in the segmented text.
type bidiRun struct {
	text  []rune
	start int
	rtl   bool
}

// bidiRuns splits s into directional runs in visual order. Runs of a
// right-to-left paragraph are reversed; deeper embedding levels are not
// reordered. Paragraph separators become runs of their own.
func bidiRuns(s string) []bidiRun {
	var out []bidiRun
	offset := 0
	for len(s) > 0 {
		para, sep := s, ""
		for i, r := range s {
			if props, _ := bidi.LookupRune(r); props.Class() == bidi.B {
				para, sep = s[:i], string(r)
				break
			}
		}
		runs := paragraphRuns(para, offset)
		out = append(out, runs...)
		offset += utf8.RuneCountInString(para)
		if sep != "" {
			out = append(out, bidiRun{text: []rune(sep), start: offset})
			offset++
		}
		s = s[len(para)+len(sep):]
	}
	return out
}

// paragraphRuns splits a paragraph without separators into directional
// runs in visual order.
func paragraphRuns(s string, offset int) []bidiRun {
	if s == "" {
		return nil
	}
	fallback := []bidiRun{{text: []rune(s), start: offset}}
	var p bidi.Paragraph
	if _, err := p.SetString(s); err != nil {
		return fallback
	}
	o, err := p.Order()
	if err != nil || o.NumRuns() == 0 {
		return fallback
	}
	runs := make([]bidiRun, 0, o.NumRuns())
	for i := 0; i < o.NumRuns(); i++ {
		r := o.Run(i)
		start, _ := r.Pos()
		runs = append(runs, bidiRun{
			text:  []rune(r.String()),
			start: offset + start,
			rtl:   r.Direction() == bidi.RightToLeft,
		})
	}
	if runs[0].rtl {
		for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
			runs[i], runs[j] = runs[j], runs[i]
		}
	}
	return runs
}

// runScript returns the script of the first rune with a real script, or
// Latin when every rune is common.
func runScript(runes []rune) language.Script {
	for _, r := range runes {
		if s := language.LookupScript(r); s.Strong() && s != language.Unknown {
			return s
		}
	}
	return language.Latin
}
