package transform

import "math"

// Pinch tracks a two-finger zoom gesture. Each move is measured against the
// distance seen on the previous move, not the distance at the start of the
// gesture, so the zoom follows the fingers without drifting.
type Pinch struct {
	ref    float64
	active bool
}

// Distance returns the Euclidean distance between two touch points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Begin records the reference distance for a new gesture.
func (p *Pinch) Begin(a, b Point) {
	p.ref = Distance(a, b)
	p.active = p.ref > 0
}

// Active reports whether a gesture is in progress.
func (p *Pinch) Active() bool { return p.active }

// Move scales s by the ratio between the new distance and the reference,
// then makes the new distance the reference. It reports whether the scale
// was updated.
func (p *Pinch) Move(a, b Point, s *State) bool {
	if !p.active || p.ref <= 0 {
		return false
	}
	d := Distance(a, b)
	if d <= 0 {
		return false
	}
	s.SetScale(s.Scale() * (d / p.ref))
	p.ref = d
	return true
}

// End clears the reference so the next gesture starts fresh.
func (p *Pinch) End() {
	p.ref = 0
	p.active = false
}
