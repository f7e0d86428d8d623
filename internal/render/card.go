// Package render draws the rounded cards and soft drop shadows the editor
// window is built from.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// ShadowOptions configures the drop shadow behind a card.
type ShadowOptions struct {
	Sigma   float64 // gaussian blur radius
	Offset  image.Point
	Opacity float64
	Corner  int
	Color   color.RGBA
}

// ShadowResult is a pre-rendered shadow. Draw Image at the card's top-left
// corner minus Origin.
type ShadowResult struct {
	Image  *image.NRGBA
	Origin image.Point
}

// DefaultShadowOptions returns the soft shadow used under editor cards.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Sigma:   8,
		Offset:  image.Pt(0, 6),
		Opacity: 0.18,
		Corner:  16,
		Color:   color.RGBA{A: 255},
	}
}

// Shadow renders the blurred silhouette of a size card. The result is
// padded so the blur never clips.
func Shadow(size image.Point, opts ShadowOptions) ShadowResult {
	if size.X <= 0 || size.Y <= 0 || opts.Opacity <= 0 {
		return ShadowResult{}
	}
	opacity := math.Min(opts.Opacity, 1)
	pad := int(math.Ceil(opts.Sigma*3)) + 1
	if opts.Sigma <= 0 {
		pad = 0
	}
	// Origin maps the card's top-left corner into the shadow image.
	origin := image.Pt(pad-opts.Offset.X, pad-opts.Offset.Y)
	w, h := size.X+2*pad, size.Y+2*pad

	canvas := imaging.New(w, h, color.NRGBA{})
	silhouette := image.Rect(pad, pad, pad+size.X, pad+size.Y)
	c := color.NRGBA{R: opts.Color.R, G: opts.Color.G, B: opts.Color.B, A: uint8(opacity*255 + 0.5)}
	FillRounded(canvas, silhouette, opts.Corner, c)
	if opts.Sigma > 0 {
		canvas = imaging.Blur(canvas, opts.Sigma)
	}
	return ShadowResult{Image: canvas, Origin: origin}
}

// DrawShadow draws s under a card whose top-left corner is at.
func DrawShadow(dst draw.Image, s ShadowResult, at image.Point) {
	if s.Image == nil {
		return
	}
	pt := at.Sub(s.Origin)
	draw.Draw(dst, s.Image.Bounds().Add(pt), s.Image, image.Point{}, draw.Over)
}

// RoundedMask returns an alpha mask for r with corners of the given radius.
// Edge pixels get fractional coverage.
func RoundedMask(r image.Rectangle, radius int) *image.Alpha {
	mask := image.NewAlpha(r)
	w, h := r.Dx(), r.Dy()
	rad := float64(min(radius, w/2, h/2))
	if rad < 0 {
		rad = 0
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mask.Pix[y*mask.Stride+x] = coverage(float64(x)+0.5, float64(y)+0.5, float64(w), float64(h), rad)
		}
	}
	return mask
}

func coverage(px, py, w, h, rad float64) uint8 {
	if rad == 0 {
		return 255
	}
	cx := math.Min(math.Max(px, rad), w-rad)
	cy := math.Min(math.Max(py, rad), h-rad)
	d := math.Hypot(px-cx, py-cy)
	switch {
	case d <= rad-0.5:
		return 255
	case d >= rad+0.5:
		return 0
	}
	return uint8((rad + 0.5 - d) * 255)
}

// FillRounded paints r in c with rounded corners.
func FillRounded(dst draw.Image, r image.Rectangle, radius int, c color.Color) {
	if r.Empty() {
		return
	}
	mask := RoundedMask(r, radius)
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, mask, r.Min, draw.Over)
}

// StrokeRounded outlines r with a line of the given width.
func StrokeRounded(dst draw.Image, r image.Rectangle, radius, width int, c color.Color) {
	if r.Empty() || width <= 0 {
		return
	}
	outer := RoundedMask(r, radius)
	inner := r.Inset(width)
	if !inner.Empty() {
		in := RoundedMask(inner, max(radius-width, 0))
		for y := inner.Min.Y; y < inner.Max.Y; y++ {
			for x := inner.Min.X; x < inner.Max.X; x++ {
				o := outer.PixOffset(x, y)
				a := int(outer.Pix[o]) - int(in.AlphaAt(x, y).A)
				if a < 0 {
					a = 0
				}
				outer.Pix[o] = uint8(a)
			}
		}
	}
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, outer, r.Min, draw.Over)
}
