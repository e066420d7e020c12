package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
)

// Font is a parsed font file. It holds the go-text font used for shaping
// and the sfnt font used for glyph outlines, both parsed from the same data
// so glyph IDs agree. One Font serves faces of any size.
//
// Font is safe for concurrent use.
type Font struct {
	name    string
	shaping *font.Font
	outline *sfnt.Font

	mu    sync.Mutex
	faces map[float64]*fontFace
}

// NewFont parses TrueType or OpenType font data. The data must not be
// modified afterwards.
func NewFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	gt, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font outlines: %w", err)
	}
	f := &Font{
		shaping: gt.Font,
		outline: sf,
		faces:   make(map[float64]*fontFace),
	}
	if name, err := sf.Name(nil, sfnt.NameIDFamily); err == nil {
		f.name = name
	}
	return f, nil
}

// LoadFont reads and parses a font file.
func LoadFont(path string) (*Font, error) {
	// #nosec G304 -- font path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFont(data)
}

// Name returns the family name recorded in the font, if any.
func (f *Font) Name() string { return f.name }

// Face returns the face of f at size pixels. Faces are cached per size.
func (f *Font) Face(size float64) Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := newFontFace(f, size)
	f.faces[size] = face
	return face
}
