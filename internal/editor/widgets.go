package editor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/twibbon/internal/render"
	"github.com/example/twibbon/internal/theme"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// shortcutList binds several combinations to one action.
type shortcutList []KeyShortcut

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateDisabled
)

// Button is a clickable element of the editor window.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Label() string
	Enabled() bool
	Activate()
}

// CacheButton wraps another Button and caches its rendered states. The
// cache is dropped when the rectangle or the label changes.
type CacheButton struct {
	Button
	label string
	cache [4]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if l := cb.Button.Label(); l != cb.label {
		cb.label = l
		cb.cache = [4]*image.RGBA{}
	}
	if cb.cache[state] == nil {
		img := image.NewRGBA(cb.Button.Rect())
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Over)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [4]*image.RGBA{}
	}
}

// tone selects the colours of an ActionButton.
type tone int

const (
	toneNormal tone = iota
	tonePrimary
	toneSuccess
	toneFailure
)

// ActionButton is a rounded, labelled button. The event loop owns the
// buttons; the painter draws copies.
type ActionButton struct {
	text     string
	tone     tone
	disabled bool
	action   func()
	theme    *theme.Theme
	rect     image.Rectangle
}

func (b *ActionButton) Label() string { return b.text }

func (b *ActionButton) Enabled() bool { return !b.disabled }

func (b *ActionButton) Rect() image.Rectangle { return b.rect }

func (b *ActionButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ActionButton) Activate() {
	if b.action != nil && !b.disabled {
		b.action()
	}
}

func (b *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	th := b.theme
	bg, fg, border := th.ButtonBackground, th.ButtonText, th.ButtonBorder
	filled := true
	switch b.tone {
	case tonePrimary:
		bg, fg, border = th.Accent, th.AccentText, th.Accent
	case toneSuccess:
		bg, fg, border = th.Success, th.AccentText, th.Success
	case toneFailure:
		bg, fg, border = th.Failure, th.AccentText, th.Failure
	default:
		filled = false
	}
	switch state {
	case StateHover:
		if filled {
			bg = shade(bg, 0.88)
		} else {
			bg = th.ButtonBackgroundHover
		}
	case StatePressed:
		if filled {
			bg = shade(bg, 0.75)
		} else {
			bg = th.ButtonBackgroundPress
		}
	case StateDisabled:
		bg = mix(bg, th.CardBackground, 0.5)
		fg = mix(fg, th.CardBackground, 0.5)
		border = mix(border, th.CardBackground, 0.5)
	}
	render.FillRounded(dst, b.rect, buttonCorner, bg)
	render.StrokeRounded(dst, b.rect, buttonCorner, 1, border)
	drawCentered(dst, b.rect, buttonFace, b.text, fg)
}

const buttonCorner = 10

// Slider is a horizontal range control.
type Slider struct {
	label    string
	min, max float64
	step     float64
	set      func(float64)
	format   func(float64) string
	track    image.Rectangle
}

const knobRadius = 8

// Track is the clickable area of the slider.
func (s *Slider) Track() image.Rectangle { return s.track }

// Hit reports whether p grabs the slider. The area is padded vertically so
// the thin track is easy to hit.
func (s *Slider) Hit(p image.Point) bool {
	r := s.track
	r.Min.Y -= knobRadius
	r.Max.Y += knobRadius
	r.Min.X -= knobRadius
	r.Max.X += knobRadius
	return p.In(r)
}

// ValueAt maps an x coordinate on the track to a slider value.
func (s *Slider) ValueAt(x int) float64 {
	w := s.track.Dx()
	if w <= 0 || s.max <= s.min {
		return s.min
	}
	t := float64(x-s.track.Min.X) / float64(w)
	t = math.Min(math.Max(t, 0), 1)
	v := s.min + t*(s.max-s.min)
	if s.step > 0 {
		v = s.min + math.Round((v-s.min)/s.step)*s.step
	}
	return math.Min(math.Max(v, s.min), s.max)
}

// SetFromX moves the slider to x.
func (s *Slider) SetFromX(x int) {
	if s.set != nil {
		s.set(s.ValueAt(x))
	}
}

func (s *Slider) knobX(v float64) int {
	if s.max <= s.min {
		return s.track.Min.X
	}
	t := (v - s.min) / (s.max - s.min)
	t = math.Min(math.Max(t, 0), 1)
	return s.track.Min.X + int(math.Round(t*float64(s.track.Dx())))
}

func (s *Slider) Draw(dst *image.RGBA, th *theme.Theme, v float64, enabled bool) {
	track, knob, text := th.SliderTrack, th.SliderKnob, th.Foreground
	if !enabled {
		knob = mix(knob, th.CardBackground, 0.6)
		text = th.Muted
	}
	labelDot := fixed.P(s.track.Min.X-sliderLabelWidth, s.track.Min.Y+s.track.Dy()/2+5)
	drawString(dst, labelFace, labelDot, s.label, text)

	bar := image.Rect(s.track.Min.X, s.track.Min.Y+s.track.Dy()/2-2, s.track.Max.X, s.track.Min.Y+s.track.Dy()/2+2)
	render.FillRounded(dst, bar, 2, track)
	kx := s.knobX(v)
	filled := bar
	filled.Max.X = kx
	render.FillRounded(dst, filled, 2, knob)
	cy := s.track.Min.Y + s.track.Dy()/2
	render.FillRounded(dst, image.Rect(kx-knobRadius, cy-knobRadius, kx+knobRadius, cy+knobRadius), knobRadius, knob)

	val := fmt.Sprintf("%g", v)
	if s.format != nil {
		val = s.format(v)
	}
	drawString(dst, labelFace, fixed.P(s.track.Max.X+14, labelDot.Y.Round()), val, th.Muted)
}

func shade(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{R: uint8(float64(c.R) * k), G: uint8(float64(c.G) * k), B: uint8(float64(c.B) * k), A: c.A}
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	l := func(x, y uint8) uint8 { return uint8(float64(x)*(1-t) + float64(y)*t + 0.5) }
	return color.RGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}

func drawCentered(dst draw.Image, r image.Rectangle, face font.Face, s string, c color.Color) {
	s = printable(s)
	d := &font.Drawer{Face: face}
	w := d.MeasureString(s).Ceil()
	m := face.Metrics()
	asc, desc := m.Ascent.Ceil(), m.Descent.Ceil()
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-asc-desc)/2 + asc
	drawString(dst, face, fixed.P(x, y), s, c)
}
