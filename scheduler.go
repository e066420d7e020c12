package label

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/gogpu/label/index"
	"github.com/gogpu/label/text"
)

// layerState tracks one layer through its render cycle.
type layerState struct {
	started bool
	enabled bool
}

// Scheduler collects label requests from map layers and places them in
// priority order.
//
// A render cycle brackets each layer's submissions with StartLayer and
// EndLayer, then calls RunPass once every layer is ended. Candidates live
// until Clear or ClearLayer.
//
// Scheduler is not safe for concurrent use, except for Stop which may be
// called from any goroutine to end a running pass.
type Scheduler struct {
	opts schedulerOptions

	layers     map[string]*layerState
	candidates []*Candidate
	groups     map[string]*Candidate
	reserved   []orb.Bound
	arrivals   int

	idx     *index.Index
	stopped atomic.Bool
}

// New creates a scheduler.
func New(opts ...Option) *Scheduler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.shaper == nil {
		o.shaper = text.NewGoTextShaper("")
	}
	return &Scheduler{
		opts:   o,
		layers: make(map[string]*layerState),
		groups: make(map[string]*Candidate),
		idx:    index.New(),
	}
}

func (s *Scheduler) logger() *slog.Logger {
	if s.opts.logger != nil {
		return s.opts.logger
	}
	return Logger()
}

// Start begins a render cycle, clearing a previous Stop.
func (s *Scheduler) Start() {
	s.stopped.Store(false)
}

// Stop asks a running pass to end before its next candidate. The candidate
// being placed is finished. Stop is safe for concurrent use.
func (s *Scheduler) Stop() {
	s.stopped.Store(true)
}

// Stopped reports whether Stop was called since the last Start.
func (s *Scheduler) Stopped() bool {
	return s.stopped.Load()
}

// StartLayer opens layer id for submissions and enables it.
func (s *Scheduler) StartLayer(id string) {
	st := s.layer(id)
	st.started = true
	st.enabled = true
}

// EndLayer closes layer id for submissions.
func (s *Scheduler) EndLayer(id string) error {
	st, ok := s.layers[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, id)
	}
	if !st.started {
		return fmt.Errorf("%w: %q", ErrLayerNotStarted, id)
	}
	st.started = false
	return nil
}

// EnableLayer makes the candidates of layer id take part in passes.
func (s *Scheduler) EnableLayer(id string) {
	s.layer(id).enabled = true
}

// DisableLayer keeps the candidates of layer id out of passes without
// deleting them.
func (s *Scheduler) DisableLayer(id string) {
	s.layer(id).enabled = false
}

// IsEnabled reports whether layer id takes part in passes.
func (s *Scheduler) IsEnabled(id string) bool {
	st, ok := s.layers[id]
	return ok && st.enabled
}

func (s *Scheduler) layer(id string) *layerState {
	st, ok := s.layers[id]
	if !ok {
		st = &layerState{}
		s.layers[id] = st
	}
	return st
}

func (s *Scheduler) anyStarted() (string, bool) {
	for id, st := range s.layers {
		if st.started {
			return id, true
		}
	}
	return "", false
}

// Submit adds a label request to the candidate store.
//
// Requests with blank text, no geometry, or a scale range excluding the
// scheduler scale are ignored. With grouping enabled in the style, requests
// sharing their text join one candidate: its geometries accumulate, and its
// priority is summed for expression priorities and reassigned for literal
// ones.
func (s *Scheduler) Submit(r Request) error {
	if r.Style == nil {
		return ErrNoStyle
	}
	if st, ok := s.layers[r.LayerID]; !ok || !st.started {
		return fmt.Errorf("%w: %q", ErrLayerNotStarted, r.LayerID)
	}
	log := s.logger()
	if strings.TrimSpace(r.Label) == "" {
		return nil
	}
	if !r.ScaleRange.Contains(s.opts.scale) {
		log.Debug("label: out of scale range", "label", r.Label, "scale", s.opts.scale)
		return nil
	}
	if r.Feature == nil || r.Feature.Geometry == nil {
		log.Debug("label: request without geometry", "label", r.Label, "layer", r.LayerID)
		return nil
	}

	g := r.Feature.Geometry
	if !s.opts.worldToScreen.IsIdentity() {
		g = project.Geometry(orb.Clone(g), s.opts.worldToScreen.Projection())
	}
	priority := s.priority(r)

	if r.Style.Options.Group {
		if c, ok := s.groups[r.Label]; ok {
			c.Geometries = append(c.Geometries, g)
			c.layers[r.LayerID] = struct{}{}
			if r.Priority != nil && !r.Priority.IsLiteral() {
				c.Priority += priority
			} else {
				c.Priority = priority
			}
			return nil
		}
	}

	c := &Candidate{
		Text:       r.Label,
		Geometries: []orb.Geometry{g},
		Style:      r.Style,
		Priority:   priority,
		layers:     map[string]struct{}{r.LayerID: {}},
		order:      s.arrivals,
	}
	s.arrivals++
	s.candidates = append(s.candidates, c)
	if r.Style.Options.Group {
		s.groups[r.Label] = c
	}
	return nil
}

func (s *Scheduler) priority(r Request) float64 {
	if r.Priority == nil {
		return DefaultPriority
	}
	v, err := r.Priority.Evaluate(r.Feature)
	if err != nil || math.IsNaN(v) {
		s.logger().Debug("label: priority evaluation failed, using default",
			"label", r.Label, "error", err)
		return DefaultPriority
	}
	return v
}

// ReserveArea blocks b, in screen coordinates, against every placement of
// later passes.
func (s *Scheduler) ReserveArea(b orb.Bound) {
	s.reserved = append(s.reserved, b)
}

// Len returns the number of stored candidates, including those of disabled
// layers.
func (s *Scheduler) Len() int {
	return len(s.candidates)
}

// OrderedCandidates returns the candidates of enabled layers by decreasing
// priority. Equal priorities keep submission order.
func (s *Scheduler) OrderedCandidates() []*Candidate {
	out := make([]*Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		if s.active(c) {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b *Candidate) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})
	return out
}

func (s *Scheduler) active(c *Candidate) bool {
	for id := range c.layers {
		if s.IsEnabled(id) {
			return true
		}
	}
	return false
}

// Clear removes every candidate, reserved area and layer. It fails with
// ErrLayerActive, changing nothing, while a layer is started.
func (s *Scheduler) Clear() error {
	if id, ok := s.anyStarted(); ok {
		return fmt.Errorf("%w: %q", ErrLayerActive, id)
	}
	s.candidates = nil
	s.reserved = nil
	s.arrivals = 0
	clear(s.groups)
	clear(s.layers)
	s.idx = index.New()
	return nil
}

// ClearLayer removes layer id and the candidates only it contributed to.
// Grouped candidates shared with other layers keep their geometries.
func (s *Scheduler) ClearLayer(id string) error {
	st, ok := s.layers[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, id)
	}
	if st.started {
		return fmt.Errorf("%w: %q", ErrLayerActive, id)
	}
	s.candidates = slices.DeleteFunc(s.candidates, func(c *Candidate) bool {
		if !c.inLayer(id) {
			return false
		}
		delete(c.layers, id)
		if len(c.layers) > 0 {
			return false
		}
		if s.groups[c.Text] == c {
			delete(s.groups, c.Text)
		}
		return true
	})
	delete(s.layers, id)
	return nil
}

// Index returns the conflict index left by the last pass.
func (s *Scheduler) Index() *index.Index {
	return s.idx
}
