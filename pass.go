package label

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/gogpu/label/index"
	"github.com/gogpu/label/placement"
	"github.com/gogpu/label/render"
	"github.com/gogpu/label/text"
)

// Stats summarizes a pass.
type Stats struct {
	// Candidates is the number of candidates ordered for the pass.
	Candidates int

	// Placed candidates produced at least one placement.
	Placed int

	// Dropped candidates found no acceptable position.
	Dropped int

	// Failed candidates were skipped after a geometry or text failure.
	Failed int

	// Skipped candidates were not tried because the pass was stopped or
	// its context ended.
	Skipped int
}

// RunPass places every candidate of the enabled layers in priority order,
// drawing accepted labels onto target. A nil target places labels without
// drawing. display is the visible screen area.
//
// The conflict index is rebuilt from the reserved areas, then grows with
// every accepted placement; it stays available through Index after the
// pass. A failure placing one candidate is logged and the pass continues.
//
// RunPass fails with ErrLayerActive while a layer is started, and returns
// the context error when ctx ends. Stop ends the pass without error.
func (s *Scheduler) RunPass(ctx context.Context, target render.Target, display orb.Bound) (Stats, error) {
	if id, ok := s.anyStarted(); ok {
		return Stats{}, fmt.Errorf("%w: %q", ErrLayerActive, id)
	}
	fonts, err := s.fonts()
	if err != nil {
		return Stats{}, fmt.Errorf("label: load fonts: %w", err)
	}

	log := s.logger()
	s.idx = index.New()
	s.idx.Reserve(s.reserved...)

	engine := text.NewEngine(s.opts.shaper)
	engine.Logger = log
	p := &placement.Painter{
		Index:   s.idx,
		Engine:  engine,
		Fonts:   fonts,
		Target:  target,
		Mode:    s.opts.mode,
		Display: display,
		Logger:  log,
	}

	cands := s.OrderedCandidates()
	stats := Stats{Candidates: len(cands)}
	for i, c := range cands {
		if err := ctx.Err(); err != nil {
			stats.Skipped = len(cands) - i
			return stats, err
		}
		if s.stopped.Load() {
			stats.Skipped = len(cands) - i
			log.Debug("label: pass stopped", "remaining", stats.Skipped)
			return stats, nil
		}

		n, err := paintCandidate(p, c)
		switch {
		case err != nil:
			stats.Failed++
			log.Warn("label: candidate skipped", "label", c.Text, "error", err)
		case n > 0:
			stats.Placed++
		default:
			stats.Dropped++
		}
	}
	log.Debug("label: pass done", "candidates", stats.Candidates, "placed", stats.Placed,
		"dropped", stats.Dropped, "failed", stats.Failed)
	return stats, nil
}

// paintCandidate places c, turning a panic into an error.
func paintCandidate(p *placement.Painter, c *Candidate) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("label: placing %q panicked: %v", c.Text, r)
		}
	}()
	pls, err := p.Paint(placement.Label{Text: c.Text, Geometries: c.Geometries, Style: c.Style})
	return len(pls), err
}

func (s *Scheduler) fonts() (placement.FontResolver, error) {
	if s.opts.fonts != nil {
		return s.opts.fonts, nil
	}
	lib, err := text.DefaultLibrary()
	if err != nil {
		return nil, err
	}
	s.opts.fonts = lib
	return lib, nil
}
