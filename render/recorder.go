// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/label/geom"
)

// CommandType identifies the type of a recorded command.
type CommandType uint8

const (
	// State commands
	CmdPush         CommandType = iota // Concatenate a transform
	CmdPop                             // Restore the previous transform
	CmdSetPaint                        // Set the paint
	CmdSetComposite                    // Set the composite
	CmdBeginLayer                      // Start an offscreen layer
	CmdEndLayer                        // Composite the offscreen layer

	// Drawing commands
	CmdFill         // Fill a path
	CmdStroke       // Stroke a path
	CmdDrawGlyphRun // Draw a glyph run
)

var commandTypeNames = [...]string{
	CmdPush:         "Push",
	CmdPop:          "Pop",
	CmdSetPaint:     "SetPaint",
	CmdSetComposite: "SetComposite",
	CmdBeginLayer:   "BeginLayer",
	CmdEndLayer:     "EndLayer",
	CmdFill:         "Fill",
	CmdStroke:       "Stroke",
	CmdDrawGlyphRun: "DrawGlyphRun",
}

// String returns the name of the command type.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is a recorded drawing operation.
type Command interface {
	Type() CommandType
}

// PushCommand concatenates a transform.
type PushCommand struct {
	Matrix geom.Matrix
}

// Type implements Command.
func (PushCommand) Type() CommandType { return CmdPush }

// PopCommand restores the previous transform.
type PopCommand struct{}

// Type implements Command.
func (PopCommand) Type() CommandType { return CmdPop }

// SetPaintCommand sets the paint.
type SetPaintCommand struct {
	Paint Paint
}

// Type implements Command.
func (SetPaintCommand) Type() CommandType { return CmdSetPaint }

// SetCompositeCommand sets the composite.
type SetCompositeCommand struct {
	Composite Composite
}

// Type implements Command.
func (SetCompositeCommand) Type() CommandType { return CmdSetComposite }

// BeginLayerCommand starts an offscreen layer.
type BeginLayerCommand struct{}

// Type implements Command.
func (BeginLayerCommand) Type() CommandType { return CmdBeginLayer }

// EndLayerCommand composites the current layer.
type EndLayerCommand struct {
	Alpha float64
}

// Type implements Command.
func (EndLayerCommand) Type() CommandType { return CmdEndLayer }

// FillCommand fills a path in user space. Transform is the transform
// current when the command was recorded.
type FillCommand struct {
	Path      *geom.Path
	Transform geom.Matrix
	Paint     Paint
}

// Type implements Command.
func (FillCommand) Type() CommandType { return CmdFill }

// StrokeCommand strokes a path in user space.
type StrokeCommand struct {
	Path      *geom.Path
	Stroke    Stroke
	Transform geom.Matrix
	Paint     Paint
}

// Type implements Command.
func (StrokeCommand) Type() CommandType { return CmdStroke }

// DrawGlyphRunCommand draws a glyph run.
type DrawGlyphRunCommand struct {
	Run       GlyphRun
	Transform geom.Matrix
	Paint     Paint
}

// Type implements Command.
func (DrawGlyphRunCommand) Type() CommandType { return CmdDrawGlyphRun }

// Recorder is a Layered target that records commands instead of drawing.
// Paths are copied when recorded.
type Recorder struct {
	commands  []Command
	saved     []geom.Matrix
	transform geom.Matrix
	paint     Paint
}

var _ Layered = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{transform: geom.Identity()}
}

// Commands returns the recorded commands.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Count returns the number of recorded commands of type t.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Reset discards every recorded command and restores the initial state.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.saved = r.saved[:0]
	r.transform = geom.Identity()
	r.paint = Paint{}
}

// Push implements Target.
func (r *Recorder) Push(m geom.Matrix) {
	r.saved = append(r.saved, r.transform)
	r.transform = r.transform.Multiply(m)
	r.commands = append(r.commands, PushCommand{Matrix: m})
}

// Pop implements Target.
func (r *Recorder) Pop() {
	n := len(r.saved)
	if n == 0 {
		return
	}
	r.transform = r.saved[n-1]
	r.saved = r.saved[:n-1]
	r.commands = append(r.commands, PopCommand{})
}

// Transform implements Target.
func (r *Recorder) Transform() geom.Matrix { return r.transform }

// SetPaint implements Target.
func (r *Recorder) SetPaint(p Paint) {
	r.paint = p
	r.commands = append(r.commands, SetPaintCommand{Paint: p})
}

// SetComposite implements Target.
func (r *Recorder) SetComposite(c Composite) {
	r.commands = append(r.commands, SetCompositeCommand{Composite: c})
}

// DrawGlyphRun implements Target.
func (r *Recorder) DrawGlyphRun(g GlyphRun) error {
	r.commands = append(r.commands, DrawGlyphRunCommand{Run: g, Transform: r.transform, Paint: r.paint})
	return nil
}

// Fill implements Target.
func (r *Recorder) Fill(p *geom.Path) {
	r.commands = append(r.commands, FillCommand{Path: clonePath(p), Transform: r.transform, Paint: r.paint})
}

// Stroke implements Target.
func (r *Recorder) Stroke(p *geom.Path, s Stroke) {
	r.commands = append(r.commands, StrokeCommand{Path: clonePath(p), Stroke: s, Transform: r.transform, Paint: r.paint})
}

// BeginLayer implements Layered.
func (r *Recorder) BeginLayer() {
	r.commands = append(r.commands, BeginLayerCommand{})
}

// EndLayer implements Layered.
func (r *Recorder) EndLayer(alpha float64) {
	r.commands = append(r.commands, EndLayerCommand{Alpha: alpha})
}

// Replay draws the recorded commands onto t. Layer commands are dropped
// when t is not Layered. Replay stops at the first glyph run error.
func (r *Recorder) Replay(t Target) error {
	layered, _ := t.(Layered)
	for _, c := range r.commands {
		switch c := c.(type) {
		case PushCommand:
			t.Push(c.Matrix)
		case PopCommand:
			t.Pop()
		case SetPaintCommand:
			t.SetPaint(c.Paint)
		case SetCompositeCommand:
			t.SetComposite(c.Composite)
		case BeginLayerCommand:
			if layered != nil {
				layered.BeginLayer()
			}
		case EndLayerCommand:
			if layered != nil {
				layered.EndLayer(c.Alpha)
			}
		case FillCommand:
			t.Fill(c.Path)
		case StrokeCommand:
			t.Stroke(c.Path, c.Stroke)
		case DrawGlyphRunCommand:
			if err := t.DrawGlyphRun(c.Run); err != nil {
				return err
			}
		}
	}
	return nil
}

func clonePath(p *geom.Path) *geom.Path {
	if p == nil {
		return geom.NewPath()
	}
	return p.Transform(geom.Identity())
}
