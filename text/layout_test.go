package text

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/gogpu/label/style"
)

// monoFace is a test face where every rune it covers is width pixels wide.
type monoFace struct {
	name   string
	size   float64
	width  float64
	covers func(r rune) bool
}

func newMonoFace(name string, covers func(rune) bool) *monoFace {
	return &monoFace{name: name, size: 10, width: 10, covers: covers}
}

func (f *monoFace) Name() string  { return f.name }
func (f *monoFace) Size() float64 { return f.size }
func (f *monoFace) Metrics() Metrics {
	return Metrics{Ascent: 0.8 * f.size, Descent: 0.2 * f.size}
}
func (f *monoFace) HasGlyph(r rune) bool {
	if f.covers == nil {
		return true
	}
	return f.covers(r)
}

// monoShaper shapes one glyph per rune. Non-space glyphs are inked from
// 0.7 * size above the baseline down to the baseline.
type monoShaper struct {
	calls int
}

func (s *monoShaper) Shape(text string, face Face) (*Run, error) {
	s.calls++
	f, ok := face.(*monoFace)
	if !ok {
		return nil, ErrUnsupportedFace
	}
	var glyphs []Glyph
	i := 0
	for _, r := range text {
		x := float64(i) * f.width
		g := Glyph{ID: GlyphID(r), Cluster: i, X: x, Advance: f.width}
		if r != ' ' {
			g.Bounds = orb.Bound{Min: orb.Point{x, -0.7 * f.size}, Max: orb.Point{x + f.width, 0}}
			g.Inked = true
		}
		glyphs = append(glyphs, g)
		i++
	}
	return NewRun(text, face, glyphs), nil
}

func isLetter(r rune) bool { return r >= 'a' && r <= 'z' || r == ' ' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }

func testEngine() (*Engine, *monoShaper) {
	s := &monoShaper{}
	return NewEngine(s), s
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// TestEngine_FastPath tests that simple text becomes one line of one run.
func TestEngine_FastPath(t *testing.T) {
	e, s := testEngine()
	face := newMonoFace("mono", nil)

	l, err := e.Layout("hello", []Face{face}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !l.SingleRun() {
		t.Fatalf("expected a single run, got %d lines", len(l.Lines))
	}
	if s.calls != 1 {
		t.Errorf("shaper called %d times, want 1", s.calls)
	}
	want := orb.Bound{Min: orb.Point{0, -7}, Max: orb.Point{50, 0}}
	if l.Bounds != want {
		t.Errorf("Bounds = %v, want %v", l.Bounds, want)
	}
	if l.Ascent() != 8 {
		t.Errorf("Ascent = %v, want 8", l.Ascent())
	}
}

// TestEngine_Newlines tests that explicit newlines stack lines by line height.
func TestEngine_Newlines(t *testing.T) {
	e, _ := testEngine()
	face := newMonoFace("mono", nil)

	l, err := e.Layout("ab\r\ncd\nef", []Face{face}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(l.Lines))
	}
	for i, line := range l.Lines {
		if want := float64(i) * 10; !approx(line.Y, want) {
			t.Errorf("line %d baseline = %v, want %v", i, line.Y, want)
		}
	}
	want := orb.Bound{Min: orb.Point{0, -7}, Max: orb.Point{20, 20}}
	if l.Bounds != want {
		t.Errorf("Bounds = %v, want %v", l.Bounds, want)
	}
}

// TestEngine_AutoWrap tests greedy packing of words up to the wrap width.
func TestEngine_AutoWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"packs words", "aaa bbb ccc", 75, []string{"aaa bbb", "ccc"}},
		{"fits", "aaa bbb", 200, []string{"aaa bbb"}},
		{"long word alone", "a verylongword b", 30, []string{"a", "verylongword", "b"}},
		{"every word", "aa bb cc", 25, []string{"aa", "bb", "cc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := testEngine()
			l, err := e.Layout(tt.text, []Face{newMonoFace("mono", nil)}, Options{AutoWrap: tt.width})
			if err != nil {
				t.Fatal(err)
			}
			got := lineTexts(l)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestEngine_FontRuns tests that mixed text is split by first capable face.
func TestEngine_FontRuns(t *testing.T) {
	e, _ := testEngine()
	letters := newMonoFace("letters", isLetter)
	all := newMonoFace("all", func(r rune) bool { return isLetter(r) || isDigit(r) })

	l, err := e.Layout("ab12cd", []Face{letters, all}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(l.Lines))
	}
	comps := l.Lines[0].Components
	if len(comps) != 3 {
		t.Fatalf("got %d components, want 3", len(comps))
	}
	wantText := []string{"ab", "12", "cd"}
	wantFace := []Face{letters, all, letters}
	for i, c := range comps {
		if c.Run.Text != wantText[i] || c.Run.Face != wantFace[i] {
			t.Errorf("component %d = %q/%s, want %q/%s",
				i, c.Run.Text, c.Run.Face.Name(), wantText[i], wantFace[i].Name())
		}
		if !approx(c.X, float64(i)*20) {
			t.Errorf("component %d X = %v, want %v", i, c.X, float64(i)*20)
		}
	}
}

// TestEngine_DropsUncoveredRunes tests that runes no face displays are skipped.
func TestEngine_DropsUncoveredRunes(t *testing.T) {
	e, _ := testEngine()
	l, err := e.Layout("a☃b", []Face{newMonoFace("letters", isLetter)}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := lineTexts(l); len(got) != 1 || got[0] != "ab" {
		t.Errorf("lines = %q, want [ab]", got)
	}
	if !approx(l.Width(), 20) {
		t.Errorf("Width = %v, want 20", l.Width())
	}
}

// TestEngine_WordSpacing tests the spacer inserted between words.
func TestEngine_WordSpacing(t *testing.T) {
	e, _ := testEngine()
	l, err := e.Layout("ab cd", []Face{newMonoFace("mono", nil)}, Options{WordSpacing: 5})
	if err != nil {
		t.Fatal(err)
	}
	comps := l.Lines[0].Components
	if len(comps) != 3 {
		t.Fatalf("got %d components, want 3", len(comps))
	}
	if !comps[1].Spacer || comps[0].Spacer || comps[2].Spacer {
		t.Errorf("only the middle component should be a spacer")
	}
	if !approx(comps[1].Width, 15) {
		t.Errorf("spacer width = %v, want 15", comps[1].Width)
	}
	if !approx(l.Lines[0].Width, 55) {
		t.Errorf("line width = %v, want 55", l.Lines[0].Width)
	}

	runs := 0
	for range l.Runs() {
		runs++
	}
	if runs != 2 {
		t.Errorf("Runs yielded %d runs, want 2 (spacer skipped)", runs)
	}
}

// TestEngine_CharSpacing tests tracking applied after every glyph.
func TestEngine_CharSpacing(t *testing.T) {
	e, _ := testEngine()
	l, err := e.Layout("abc", []Face{newMonoFace("mono", nil)}, Options{CharSpacing: 2})
	if err != nil {
		t.Fatal(err)
	}
	if !approx(l.Width(), 36) {
		t.Errorf("Width = %v, want 36", l.Width())
	}
	g := l.Lines[0].Components[0].Run.Glyphs
	if !approx(g[2].X, 24) {
		t.Errorf("third glyph X = %v, want 24", g[2].X)
	}
}

// TestEngine_EmptyLabel tests the placeholder and minimum box.
func TestEngine_EmptyLabel(t *testing.T) {
	e, _ := testEngine()
	l, err := e.Layout("", []Face{newMonoFace("mono", nil)}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Lines) != 1 || len(l.Lines[0].Components) != 1 {
		t.Fatalf("expected one placeholder component")
	}
	if l.Lines[0].Components[0].Run.Text != " " {
		t.Errorf("placeholder = %q, want single space", l.Lines[0].Components[0].Run.Text)
	}
	if l.Width() != 2 || l.Height() != 2 {
		t.Errorf("box = %vx%v, want 2x2", l.Width(), l.Height())
	}
}

// TestEngine_Align tests horizontal alignment of shorter lines.
func TestEngine_Align(t *testing.T) {
	tests := []struct {
		align float64
		want  float64
	}{
		{0, 0},
		{0.5, 10},
		{1, 20},
	}
	for _, tt := range tests {
		e, _ := testEngine()
		l, err := e.Layout("a\nabc", []Face{newMonoFace("mono", nil)}, Options{Align: tt.align})
		if err != nil {
			t.Fatal(err)
		}
		if !approx(l.Lines[0].X, tt.want) {
			t.Errorf("align %v: first line X = %v, want %v", tt.align, l.Lines[0].X, tt.want)
		}
		if !approx(l.Width(), 30) {
			t.Errorf("align %v: Width = %v, want 30", tt.align, l.Width())
		}
	}
}

// TestEngine_NoFaces tests that a layout needs at least one face.
func TestEngine_NoFaces(t *testing.T) {
	e, _ := testEngine()
	if _, err := e.Layout("x", nil, Options{}); !errors.Is(err, ErrNoFaces) {
		t.Errorf("err = %v, want ErrNoFaces", err)
	}
}

// TestEngine_ShapeErrorPropagates tests that shaping failures are returned.
func TestEngine_ShapeErrorPropagates(t *testing.T) {
	e := NewEngine(NewGoTextShaper(""))
	_, err := e.Layout("x", []Face{newMonoFace("mono", nil)}, Options{})
	if !errors.Is(err, ErrUnsupportedFace) {
		t.Errorf("err = %v, want ErrUnsupportedFace", err)
	}
}

// TestLayout_Glyphs tests the glyph traversal in label coordinates.
func TestLayout_Glyphs(t *testing.T) {
	e, _ := testEngine()
	l, err := e.Layout("ab c\nd", []Face{newMonoFace("mono", nil)}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var chars []rune
	var last orb.Point
	for g := range l.Glyphs() {
		chars = append(chars, g.Char)
		last = g.Origin
	}
	if string(chars) != "abcd" {
		t.Errorf("chars = %q, want abcd", string(chars))
	}
	if last != (orb.Point{0, 10}) {
		t.Errorf("last origin = %v, want [0 10]", last)
	}
}

// TestShieldBounds tests the shield footprint for every resize mode.
func TestShieldBounds(t *testing.T) {
	label := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{40, 10}}
	margins := style.Margins{Top: 1, Right: 2, Bottom: 3, Left: 4}
	tests := []struct {
		name   string
		shield *style.Shield
		want   orb.Bound
		ok     bool
	}{
		{"nil", nil, orb.Bound{}, false},
		{
			"natural size",
			&style.Shield{Width: 20, Height: 20},
			orb.Bound{Min: orb.Point{10, -5}, Max: orb.Point{30, 15}},
			true,
		},
		{
			"stretch",
			&style.Shield{Width: 20, Height: 20, Resize: style.ResizeStretch, Margins: margins},
			orb.Bound{Min: orb.Point{-4, -1}, Max: orb.Point{42, 13}},
			true,
		},
		{
			"proportional",
			&style.Shield{Width: 10, Height: 10, Resize: style.ResizeProportional, Margins: margins},
			orb.Bound{Min: orb.Point{-4, -17}, Max: orb.Point{42, 29}},
			true,
		},
		{
			"proportional wide graphic",
			&style.Shield{Width: 10, Height: 1, Resize: style.ResizeProportional},
			orb.Bound{Min: orb.Point{0, 3}, Max: orb.Point{40, 7}},
			true,
		},
		{
			"proportional tall graphic",
			&style.Shield{Width: 1, Height: 10, Resize: style.ResizeProportional},
			orb.Bound{Min: orb.Point{19.5, 0}, Max: orb.Point{20.5, 10}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ShieldBounds(label, tt.shield)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !boundNear(got, tt.want) {
				t.Errorf("ShieldBounds = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestFullBounds tests halo growth and the shield union.
func TestFullBounds(t *testing.T) {
	label := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{40, 10}}

	if got := FullBounds(label, 2, nil); got != (orb.Bound{Min: orb.Point{-2, -2}, Max: orb.Point{42, 12}}) {
		t.Errorf("halo only = %v", got)
	}
	got := FullBounds(label, 2, &style.Shield{Width: 20, Height: 30})
	want := orb.Bound{Min: orb.Point{-2, -10}, Max: orb.Point{42, 20}}
	if !boundNear(got, want) {
		t.Errorf("halo and shield = %v, want %v", got, want)
	}
}

func lineTexts(l *Layout) []string {
	out := make([]string, 0, len(l.Lines))
	for _, line := range l.Lines {
		var b strings.Builder
		for _, c := range line.Components {
			b.WriteString(c.Run.Text)
		}
		out = append(out, b.String())
	}
	return out
}

func boundNear(a, b orb.Bound) bool {
	return approx(a.Min[0], b.Min[0]) && approx(a.Min[1], b.Min[1]) &&
		approx(a.Max[0], b.Max[0]) && approx(a.Max[1], b.Max[1])
}
