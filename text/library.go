package text

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/label/style"
)

// Library maps font family names to loaded fonts. Family lookup is case
// insensitive.
//
// Library is safe for concurrent use.
type Library struct {
	mu       sync.RWMutex
	families map[string]*Font
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{families: make(map[string]*Font)}
}

// DefaultLibrary returns a library holding the Go fonts, registered as
// "Go", "sans-serif", "Go Mono" and "monospace".
func DefaultLibrary() (*Library, error) {
	lib := NewLibrary()
	regular, err := NewFont(goregular.TTF)
	if err != nil {
		return nil, err
	}
	mono, err := NewFont(gomono.TTF)
	if err != nil {
		return nil, err
	}
	lib.Register("Go", regular)
	lib.Register("sans-serif", regular)
	lib.Register("Go Mono", mono)
	lib.Register("monospace", mono)
	return lib, nil
}

// Register makes f available under family, replacing any previous font.
func (l *Library) Register(family string, f *Font) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.families[strings.ToLower(family)] = f
}

// Families returns the number of registered families.
func (l *Library) Families() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.families)
}

// Resolve returns the face for a style font request.
func (l *Library) Resolve(req style.Font) (Face, error) {
	l.mu.RLock()
	f, ok := l.families[strings.ToLower(req.Family)]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, req.Family)
	}
	return f.Face(req.Size), nil
}

// ResolveAll resolves every font of a style in order, skipping unknown
// families. It fails only when none resolves.
func (l *Library) ResolveAll(fonts []style.Font) ([]Face, error) {
	faces := make([]Face, 0, len(fonts))
	var firstErr error
	for _, req := range fonts {
		face, err := l.Resolve(req)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		faces = append(faces, face)
	}
	if len(faces) == 0 {
		if firstErr == nil {
			firstErr = ErrNoFaces
		}
		return nil, firstErr
	}
	return faces, nil
}
