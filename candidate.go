package label

import (
	"maps"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/gogpu/label/style"
)

// Request asks for one feature to be labelled.
type Request struct {
	LayerID string
	Style   *style.Text

	// Feature supplies the geometry, in world coordinates, and the
	// properties the priority expression reads.
	Feature *geojson.Feature

	// Label is the text to draw.
	Label string

	// Priority is evaluated against the feature. Nil uses DefaultPriority.
	Priority Expression

	// ScaleRange limits the map scales at which the label is drawn.
	ScaleRange ScaleRange
}

// ScaleRange is a range of scale denominators, Min inclusive and Max
// exclusive. A zero Max is unbounded.
type ScaleRange struct {
	Min, Max float64
}

// Contains reports whether denominator d lies in r. A zero d is in every
// range.
func (r ScaleRange) Contains(d float64) bool {
	if d == 0 {
		return true
	}
	return d >= r.Min && (r.Max == 0 || d < r.Max)
}

// Candidate is a pending label: one feature, or every feature of a group
// sharing the same text.
type Candidate struct {
	Text       string
	Geometries []orb.Geometry
	Style      *style.Text

	// Priority orders candidates; higher is placed first.
	Priority float64

	layers map[string]struct{}
	order  int
}

// Layers returns the layers the candidate was submitted from, sorted.
func (c *Candidate) Layers() []string {
	return slices.Sorted(maps.Keys(c.layers))
}

// Params returns the placement options of the candidate style.
func (c *Candidate) Params() style.Options {
	return c.Style.Options
}

func (c *Candidate) inLayer(id string) bool {
	_, ok := c.layers[id]
	return ok
}
