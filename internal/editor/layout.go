package editor

import "image"

const (
	margin           = 24
	cardPad          = 20
	headerHeight     = 58
	sliderHeight     = 28
	sliderGap        = 10
	sliderLabelWidth = 64
	sliderValueWidth = 56
	buttonHeight     = 42
	downloadHeight   = 48
	statusHeight     = 26
	captionWidth     = 380
	cardCorner       = 18
	viewportCorner   = 12
)

// layout holds every rectangle of the window for one viewport size.
type layout struct {
	size image.Point

	editorCard image.Rectangle
	title      image.Point
	subtitle   image.Point
	viewport   image.Rectangle
	zoom       image.Rectangle
	rotate     image.Rectangle
	change     image.Rectangle
	paste      image.Rectangle
	download   image.Rectangle
	status     image.Point

	captionCard image.Rectangle
	heading     image.Point
	captionText image.Rectangle
	copy        image.Rectangle
}

// computeLayout places the editor card on the left and the caption card on
// the right. The window is sized to fit both.
func computeLayout(viewport int) layout {
	var l layout
	x0, y0 := margin, margin
	inner := x0 + cardPad

	l.title = image.Pt(inner, y0+cardPad+20)
	l.subtitle = image.Pt(inner, y0+cardPad+44)

	top := y0 + cardPad + headerHeight
	l.viewport = image.Rect(inner, top, inner+viewport, top+viewport)

	y := l.viewport.Max.Y + 16
	trackX0 := inner + sliderLabelWidth
	trackX1 := l.viewport.Max.X - sliderValueWidth
	l.zoom = image.Rect(trackX0, y, trackX1, y+sliderHeight)
	y += sliderHeight + sliderGap
	l.rotate = image.Rect(trackX0, y, trackX1, y+sliderHeight)
	y += sliderHeight + 16

	half := (viewport - 12) / 2
	l.change = image.Rect(inner, y, inner+half, y+buttonHeight)
	l.paste = image.Rect(l.viewport.Max.X-half, y, l.viewport.Max.X, y+buttonHeight)
	y += buttonHeight + 12
	l.download = image.Rect(inner, y, l.viewport.Max.X, y+downloadHeight)
	y += downloadHeight + 8
	l.status = image.Pt(inner, y+18)
	y += statusHeight

	l.editorCard = image.Rect(x0, y0, l.viewport.Max.X+cardPad, y+cardPad)

	cx := l.editorCard.Max.X + margin
	l.captionCard = image.Rect(cx, y0, cx+captionWidth, l.editorCard.Max.Y)
	l.heading = image.Pt(cx+cardPad, y0+cardPad+20)
	l.copy = image.Rect(cx+cardPad, l.captionCard.Max.Y-cardPad-buttonHeight, l.captionCard.Max.X-cardPad, l.captionCard.Max.Y-cardPad)
	l.captionText = image.Rect(cx+cardPad, y0+cardPad+40, l.captionCard.Max.X-cardPad, l.copy.Min.Y-12)

	l.size = image.Pt(l.captionCard.Max.X+margin, l.editorCard.Max.Y+margin)
	return l
}

// toViewport converts a window point to viewport coordinates.
func (l layout) toViewport(p image.Point) image.Point {
	return p.Sub(l.viewport.Min)
}

// offset centres the content in a window larger than the layout.
func (l layout) offset(win image.Point) image.Point {
	dx := (win.X - l.size.X) / 2
	dy := (win.Y - l.size.Y) / 2
	if dx < 0 {
		dx = 0
	}
	if dy < 0 {
		dy = 0
	}
	return image.Pt(dx, dy)
}

// translate shifts every rectangle by d.
func (l layout) translate(d image.Point) layout {
	if d == (image.Point{}) {
		return l
	}
	for _, r := range []*image.Rectangle{&l.editorCard, &l.viewport, &l.zoom, &l.rotate, &l.change, &l.paste, &l.download, &l.captionCard, &l.captionText, &l.copy} {
		*r = r.Add(d)
	}
	for _, p := range []*image.Point{&l.title, &l.subtitle, &l.status, &l.heading} {
		*p = p.Add(d)
	}
	return l
}
