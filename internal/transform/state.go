// Package transform holds the editable placement of the photo behind the
// frame: zoom, rotation and pan, together with the gesture helpers that
// mutate them.
package transform

import (
	"image"
	"math"
)

const (
	// DefaultScale is applied whenever a new photo is loaded.
	DefaultScale = 1.2
	// WheelStep is the zoom change for a single wheel tick.
	WheelStep = 0.05
	// ScaleStep is the granularity of the zoom slider.
	ScaleStep = 0.05
	// RotateStep is the granularity of the rotation slider, in degrees.
	RotateStep = 1.0
)

// Limits bounds the values a State accepts.
type Limits struct {
	MinScale  float64
	MaxScale  float64
	MinRotate float64
	MaxRotate float64
}

// DefaultLimits returns the zoom range 1..5 and rotation range -180..180.
func DefaultLimits() Limits {
	return Limits{MinScale: 1, MaxScale: 5, MinRotate: -180, MaxRotate: 180}
}

func (l Limits) normalized() Limits {
	d := DefaultLimits()
	if l.MinScale <= 0 {
		l.MinScale = d.MinScale
	}
	if l.MaxScale <= 0 {
		l.MaxScale = d.MaxScale
	}
	if l.MaxScale < l.MinScale {
		l.MaxScale = l.MinScale
	}
	// A zero bound on one side of rotation means that side is unset.
	switch {
	case l.MinRotate == 0 && l.MaxRotate == 0:
		l.MinRotate, l.MaxRotate = d.MinRotate, d.MaxRotate
	case l.MaxRotate == 0 && l.MinRotate > 0:
		l.MaxRotate = d.MaxRotate
	case l.MinRotate == 0 && l.MaxRotate < 0:
		l.MinRotate = d.MinRotate
	}
	if l.MaxRotate < l.MinRotate {
		l.MaxRotate = l.MinRotate
	}
	return l
}

// Point is a position in normalized source coordinates, where (0,0) is the
// top-left corner of the photo and (1,1) the bottom-right.
type Point struct {
	X, Y float64
}

// Center is the default position: the middle of the photo.
var Center = Point{X: 0.5, Y: 0.5}

// Snapshot is an immutable copy of a State taken when an export starts.
type Snapshot struct {
	Scale    float64
	Rotate   float64
	Position Point
}

// DefaultSnapshot returns the placement used for a freshly loaded photo.
func DefaultSnapshot() Snapshot {
	return Snapshot{Scale: DefaultScale, Position: Center}
}

// State is the mutable placement owned by the editor. It is not safe for
// concurrent use; the editor mutates it from its event loop only.
type State struct {
	limits       Limits
	defaultScale float64

	scale    float64
	rotate   float64
	position Point
}

// New returns a State at its defaults. A zero Limits selects DefaultLimits.
func New(l Limits) *State {
	s := &State{limits: l.normalized(), defaultScale: DefaultScale}
	s.Reset()
	return s
}

// WithDefaultScale overrides the scale applied by Reset. The value is
// clamped to the limits.
func (s *State) WithDefaultScale(v float64) *State {
	s.defaultScale = s.clampScale(v)
	s.Reset()
	return s
}

// Reset restores the default scale, zero rotation and a centred position.
func (s *State) Reset() {
	s.scale = s.clampScale(s.defaultScale)
	s.rotate = 0
	s.position = Center
}

// Limits reports the bounds in effect.
func (s *State) Limits() Limits { return s.limits }

// Scale returns the current zoom factor.
func (s *State) Scale() float64 { return s.scale }

// Rotate returns the current rotation in degrees.
func (s *State) Rotate() float64 { return s.rotate }

// Position returns the normalized source point shown at the viewport centre.
func (s *State) Position() Point { return s.position }

// SetScale stores v clamped to the scale limits and returns the stored value.
func (s *State) SetScale(v float64) float64 {
	s.scale = s.clampScale(v)
	return s.scale
}

// SetRotate stores v clamped to the rotation limits and returns the stored value.
func (s *State) SetRotate(v float64) float64 {
	if math.IsNaN(v) {
		return s.rotate
	}
	s.rotate = clamp(v, s.limits.MinRotate, s.limits.MaxRotate)
	return s.rotate
}

// SetPosition stores p with both coordinates clamped to [0,1].
func (s *State) SetPosition(p Point) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return
	}
	s.position = Point{X: clamp(p.X, 0, 1), Y: clamp(p.Y, 0, 1)}
}

// Wheel applies one wheel tick. A positive deltaY (scrolling down) zooms
// out, a negative one zooms in; zero leaves the scale alone.
func (s *State) Wheel(deltaY float64) float64 {
	switch {
	case deltaY > 0:
		return s.SetScale(s.scale - WheelStep)
	case deltaY < 0:
		return s.SetScale(s.scale + WheelStep)
	}
	return s.scale
}

// PanBy moves the photo by (dx, dy) viewport pixels, so the photo follows
// the pointer. viewport is the side of the square viewport and src the size
// of the photo being displayed.
func (s *State) PanBy(dx, dy float64, viewport int, src image.Point) {
	if viewport <= 0 || src.X <= 0 || src.Y <= 0 {
		return
	}
	k := coverScale(viewport, src) * s.scale
	// Undo the on-screen rotation so the drag moves along the photo axes.
	rad := -s.rotate * math.Pi / 180
	sin, cos := math.Sincos(rad)
	sx := (dx*cos - dy*sin) / k
	sy := (dx*sin + dy*cos) / k
	s.SetPosition(Point{
		X: s.position.X - sx/float64(src.X),
		Y: s.position.Y - sy/float64(src.Y),
	})
}

// Snapshot returns a value copy of the current placement.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Scale: s.scale, Rotate: s.rotate, Position: s.position}
}

func (s *State) clampScale(v float64) float64 {
	if math.IsNaN(v) {
		return s.scale
	}
	return clamp(v, s.limits.MinScale, s.limits.MaxScale)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
