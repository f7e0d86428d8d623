package editor

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/twibbon/internal/caption"
	"github.com/example/twibbon/internal/logging"
	"github.com/example/twibbon/internal/render"
	"github.com/example/twibbon/internal/theme"
	"github.com/example/twibbon/internal/transform"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a frame is allowed to finish.
const frameDropThreshold = 10

const shortcutHint = "Ctrl+O buka | Ctrl+V tempel | Ctrl+S simpan | Q keluar"

// buttonView is a copy of a button taken by the event loop for one frame.
type buttonView struct {
	button ActionButton
	state  ButtonState
}

// paintState is everything one frame needs. It holds copies so the paint
// goroutine never touches the controller.
type paintState struct {
	size   image.Point
	layout layout
	theme  *theme.Theme

	proxy image.Image
	frame image.Image
	snap  transform.Snapshot

	zoom, rotate Slider
	buttons      []buttonView
	dragging     bool

	message    string
	messageErr bool
}

// painter owns the caches used across frames. Only the paint goroutine
// uses it.
type painter struct {
	buttons []*CacheButton
	shadows map[image.Point]render.ShadowResult
	preview *image.RGBA
	mask    *image.Alpha
	caption []string
	wrapW   int
}

func newPainter() *painter {
	return &painter{shadows: make(map[image.Point]render.ShadowResult)}
}

func (p *painter) shadow(th *theme.Theme, size image.Point) render.ShadowResult {
	if s, ok := p.shadows[size]; ok {
		return s
	}
	opts := render.DefaultShadowOptions()
	opts.Corner = cardCorner
	opts.Color = th.Shadow
	s := render.Shadow(size, opts)
	p.shadows[size] = s
	return s
}

func (p *painter) drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(st.size)
	if err != nil {
		logging.WithComponent("editor").Error("new buffer", "err", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()
	th := st.theme
	l := st.layout

	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	for _, card := range []image.Rectangle{l.editorCard, l.captionCard} {
		render.DrawShadow(dst, p.shadow(th, card.Size()), card.Min)
		render.FillRounded(dst, card, cardCorner, th.CardBackground)
		render.StrokeRounded(dst, card, cardCorner, 1, th.CardBorder)
	}
	if ctx.Err() != nil {
		return
	}

	drawString(dst, titleFace, fixed.P(l.title.X, l.title.Y), WindowTitle, th.Foreground)
	drawString(dst, subtitleFace, fixed.P(l.subtitle.X, l.subtitle.Y), subtitle, th.Muted)

	p.drawViewport(dst, st)
	if ctx.Err() != nil {
		return
	}

	enabled := st.proxy != nil
	st.zoom.Draw(dst, th, st.snap.Scale, enabled)
	st.rotate.Draw(dst, th, st.snap.Rotate, enabled)

	for i, v := range st.buttons {
		if i >= len(p.buttons) {
			p.buttons = append(p.buttons, &CacheButton{Button: &ActionButton{}})
		}
		cb := p.buttons[i]
		ab := cb.Button.(*ActionButton)
		if ab.tone != v.button.tone || ab.theme != v.button.theme {
			cb.cache = [4]*image.RGBA{}
		}
		ab.text, ab.tone, ab.disabled, ab.theme = v.button.text, v.button.tone, v.button.disabled, v.button.theme
		cb.SetRect(v.button.rect)
		cb.Draw(dst, v.state)
	}
	if ctx.Err() != nil {
		return
	}

	if st.message != "" {
		c := th.Muted
		if st.messageErr {
			c = th.Failure
		}
		drawString(dst, bodyFace, fixed.P(l.status.X, l.status.Y), st.message, c)
	} else {
		drawString(dst, basicfont.Face7x13, fixed.P(l.status.X, l.status.Y), shortcutHint, th.Muted)
	}

	p.drawCaption(dst, th, l)
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// drawViewport renders the preview square: white behind the photo, the
// photo placed by the snapshot, and the frame on top. Without a photo it
// shows the drop zone.
func (p *painter) drawViewport(dst *image.RGBA, st paintState) {
	th := st.theme
	vr := st.layout.viewport
	if p.preview == nil || p.preview.Bounds().Size() != vr.Size() {
		p.preview = image.NewRGBA(image.Rectangle{Max: vr.Size()})
	}
	pv := p.preview
	draw.Draw(pv, pv.Bounds(), image.White, image.Point{}, draw.Src)

	if st.proxy != nil {
		m := transform.Matrix(vr.Dx(), st.proxy.Bounds(), st.snap)
		var interp xdraw.Interpolator = xdraw.BiLinear
		if st.dragging {
			interp = xdraw.ApproxBiLinear
		}
		interp.Transform(pv, m, st.proxy, st.proxy.Bounds(), xdraw.Over, nil)
	}
	if st.frame != nil {
		draw.Draw(pv, pv.Bounds(), st.frame, st.frame.Bounds().Min, draw.Over)
	}
	if p.mask == nil || p.mask.Bounds() != vr {
		p.mask = render.RoundedMask(vr, viewportCorner)
	}
	draw.DrawMask(dst, vr, pv, image.Point{}, p.mask, vr.Min, draw.Over)

	if st.proxy == nil {
		zone := vr.Inset(16)
		veil := color.NRGBA{R: th.CardBackground.R, G: th.CardBackground.G, B: th.CardBackground.B, A: 200}
		render.FillRounded(dst, zone, viewportCorner, veil)
		render.StrokeRounded(dst, zone, viewportCorner, 2, th.DropZone)
		mid := image.Rect(zone.Min.X, zone.Min.Y, zone.Max.X, zone.Min.Y+zone.Dy()/2+20)
		drawCentered(dst, mid, dropFace, dropZoneLabel, th.Foreground)
		hint := image.Rect(zone.Min.X, mid.Max.Y, zone.Max.X, mid.Max.Y+28)
		drawCentered(dst, hint, bodyFace, dropZoneHint, th.Muted)
	}
	render.StrokeRounded(dst, vr, viewportCorner, 1, th.CardBorder)
}

func (p *painter) drawCaption(dst *image.RGBA, th *theme.Theme, l layout) {
	drawString(dst, headingFace, fixed.P(l.heading.X, l.heading.Y), "Caption", th.Foreground)
	box := l.captionText
	render.FillRounded(dst, box, 10, th.Background)
	inner := box.Inset(12)
	if p.caption == nil || p.wrapW != inner.Dx() {
		p.caption = wrapText(bodyFace, caption.Text, inner.Dx())
		p.wrapW = inner.Dx()
	}
	lh := lineHeight(bodyFace)
	y := inner.Min.Y + bodyFace.Metrics().Ascent.Ceil()
	for _, line := range p.caption {
		if y > inner.Max.Y {
			break
		}
		c := th.Foreground
		if len(line) > 0 && (line[0] == '#' || line[0] == '@') {
			c = th.Accent
		}
		drawString(dst, bodyFace, fixed.P(inner.Min.X, y), line, c)
		y += lh
	}
}
