package transform

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// coverScale is the factor that makes a photo of size src just cover a
// square of side size.
func coverScale(size int, src image.Point) float64 {
	return math.Max(float64(size)/float64(src.X), float64(size)/float64(src.Y))
}

// Matrix returns the source-to-destination transform that places a photo
// with bounds src into a size×size square according to snap. The same
// mapping drives the preview and the export, which keeps the two consistent
// at any resolution.
func Matrix(size int, src image.Rectangle, snap Snapshot) f64.Aff3 {
	w, h := src.Dx(), src.Dy()
	if size <= 0 || w <= 0 || h <= 0 {
		return f64.Aff3{1, 0, 0, 0, 1, 0}
	}
	k := coverScale(size, image.Pt(w, h)) * snap.Scale
	sin, cos := math.Sincos(snap.Rotate * math.Pi / 180)

	cx := float64(src.Min.X) + snap.Position.X*float64(w)
	cy := float64(src.Min.Y) + snap.Position.Y*float64(h)
	half := float64(size) / 2

	a, b := k*cos, -k*sin
	d, e := k*sin, k*cos
	return f64.Aff3{
		a, b, half - (a*cx + b*cy),
		d, e, half - (d*cx + e*cy),
	}
}
