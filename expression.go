package label

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/paulmach/orb/geojson"
)

// DefaultPriority is the priority of requests without a priority
// expression, or whose expression fails to evaluate.
const DefaultPriority = 1000

// ErrNoProperty is returned when a feature lacks the property a Property
// expression reads.
var ErrNoProperty = errors.New("label: feature has no such property")

// Expression computes a label priority from a feature.
type Expression interface {
	Evaluate(f *geojson.Feature) (float64, error)

	// IsLiteral reports whether the value is constant across features.
	// Grouped labels sum non-literal priorities and reassign literal ones.
	IsLiteral() bool
}

// Literal is a constant priority.
type Literal float64

// Evaluate implements Expression.
func (l Literal) Evaluate(*geojson.Feature) (float64, error) { return float64(l), nil }

// IsLiteral implements Expression.
func (Literal) IsLiteral() bool { return true }

// Property reads a numeric feature property. Numeric strings are accepted.
type Property string

// Evaluate implements Expression.
func (p Property) Evaluate(f *geojson.Feature) (float64, error) {
	if f == nil {
		return 0, fmt.Errorf("%w: %q", ErrNoProperty, string(p))
	}
	v, ok := f.Properties[string(p)]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: %q", ErrNoProperty, string(p))
	}
	switch v := v.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("label: property %q: %w", string(p), err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("label: property %q has type %T", string(p), v)
}

// IsLiteral implements Expression.
func (Property) IsLiteral() bool { return false }
