package text

import (
	"errors"
	"testing"

	"github.com/gogpu/label/style"
)

// TestDefaultLibrary tests the registered Go font families.
func TestDefaultLibrary(t *testing.T) {
	lib, err := DefaultLibrary()
	if err != nil {
		t.Fatal(err)
	}
	if lib.Families() != 4 {
		t.Errorf("Families = %d, want 4", lib.Families())
	}
	for _, family := range []string{"Go", "sans-serif", "go mono", "MONOSPACE"} {
		face, err := lib.Resolve(style.Font{Family: family, Size: 12})
		if err != nil {
			t.Errorf("Resolve(%q): %v", family, err)
			continue
		}
		if face.Size() != 12 {
			t.Errorf("Resolve(%q) size = %v", family, face.Size())
		}
	}
}

// TestLibrary_ResolveAll tests skipping of unknown families.
func TestLibrary_ResolveAll(t *testing.T) {
	lib, err := DefaultLibrary()
	if err != nil {
		t.Fatal(err)
	}
	faces, err := lib.ResolveAll([]style.Font{{Family: "Nope", Size: 10}, {Family: "Go", Size: 10}})
	if err != nil {
		t.Fatal(err)
	}
	if len(faces) != 1 {
		t.Errorf("got %d faces, want 1", len(faces))
	}

	_, err = lib.ResolveAll([]style.Font{{Family: "Nope", Size: 10}})
	if !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("err = %v, want ErrUnknownFamily", err)
	}
	if _, err := NewLibrary().ResolveAll(nil); !errors.Is(err, ErrNoFaces) {
		t.Errorf("empty request: err = %v, want ErrNoFaces", err)
	}
}
