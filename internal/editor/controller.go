package editor

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/mobile/event/touch"

	"github.com/example/twibbon/internal/compose"
	"github.com/example/twibbon/internal/frame"
	"github.com/example/twibbon/internal/intake"
	"github.com/example/twibbon/internal/transform"
)

// messageDuration is how long a status line stays visible.
const messageDuration = 4 * time.Second

// proxyFactor sizes the preview proxy relative to the viewport so that
// zooming in keeps some detail.
const proxyFactor = 2

// Controller is the editor's state without any window attached. All
// methods are called from the window's event loop.
type Controller struct {
	viewport int
	state    *transform.State

	photo *intake.Photo
	proxy image.Image
	frame image.Image // pre-scaled to the viewport

	dragging bool
	last     image.Point

	touches map[touch.Sequence]transform.Point
	pinch   transform.Pinch

	exporting bool
	picking   bool

	message      string
	messageErr   bool
	messageUntil time.Time
	now          func() time.Time
}

// NewController returns an empty editor with a viewport of side viewport
// pixels.
func NewController(viewport int, limits transform.Limits, defaultScale float64) *Controller {
	st := transform.New(limits)
	if defaultScale > 0 {
		st.WithDefaultScale(defaultScale)
	}
	return &Controller{
		viewport: viewport,
		state:    st,
		touches:  make(map[touch.Sequence]transform.Point),
		now:      time.Now,
	}
}

// Viewport is the side of the preview square in pixels.
func (c *Controller) Viewport() int { return c.viewport }

// State exposes the placement for the sliders.
func (c *Controller) State() *transform.State { return c.state }

// Photo returns the loaded photo or nil.
func (c *Controller) Photo() *intake.Photo { return c.photo }

// HasPhoto reports whether the editor shows a photo or the drop zone.
func (c *Controller) HasPhoto() bool { return c.photo != nil }

// Proxy is the downsampled photo the preview draws.
func (c *Controller) Proxy() image.Image { return c.proxy }

// Frame is the overlay scaled to the viewport, or nil before it loads.
func (c *Controller) Frame() image.Image { return c.frame }

// LoadPhoto replaces the current photo and resets zoom, rotation and
// position.
func (c *Controller) LoadPhoto(p *intake.Photo) {
	if p == nil || p.Image == nil {
		return
	}
	c.photo = p
	c.proxy = previewProxy(p.Image, c.viewport*proxyFactor)
	c.state.Reset()
	c.cancelGestures()
	c.Show(fmt.Sprintf("Foto dimuat: %s", p.Name), false)
}

// BeginPick marks the native picker as open. It reports false when one is
// already open.
func (c *Controller) BeginPick() bool {
	if c.picking {
		return false
	}
	c.picking = true
	return true
}

// Picking reports whether the native picker is open.
func (c *Controller) Picking() bool { return c.picking }

// PhotoResult applies the outcome of a picker or paste. Only a picker result
// closes the picker; a nil photo with no error is a cancelled selection.
func (c *Controller) PhotoResult(p *intake.Photo, err error, fromPicker bool) {
	if fromPicker {
		c.picking = false
	}
	switch {
	case err != nil:
		c.IntakeFailed(err)
	case p != nil:
		c.LoadPhoto(p)
	}
}

// IntakeFailed reports a rejected selection. The current photo, if any, is
// kept.
func (c *Controller) IntakeFailed(err error) {
	switch {
	case errors.Is(err, intake.ErrNotImage):
		c.Show("File bukan gambar. Pilih file foto (PNG, JPG, WEBP).", true)
	case errors.Is(err, intake.ErrNoFiles):
		c.Show("Tidak ada foto yang dipilih.", true)
	case errors.Is(err, intake.ErrUndecodable):
		c.Show("Foto tidak dapat dibaca.", true)
	default:
		c.Show(fmt.Sprintf("Gagal memuat foto: %v", err), true)
	}
}

// ClearPhoto returns to the empty drop zone.
func (c *Controller) ClearPhoto() {
	c.photo = nil
	c.proxy = nil
	c.state.Reset()
	c.cancelGestures()
}

// SetFrame stores the overlay scaled once to the viewport.
func (c *Controller) SetFrame(img image.Image) {
	if img == nil {
		c.frame = nil
		return
	}
	c.frame = frame.Fit(img, c.viewport)
}

// Wheel handles one wheel tick over the viewport. It reports whether the
// event was consumed; without a photo it is not.
func (c *Controller) Wheel(deltaY float64) bool {
	if c.photo == nil {
		return false
	}
	c.state.Wheel(deltaY)
	return true
}

// SetZoom is the zoom slider.
func (c *Controller) SetZoom(v float64) { c.state.SetScale(snap(v, transform.ScaleStep)) }

// SetRotation is the rotation slider.
func (c *Controller) SetRotation(v float64) { c.state.SetRotate(snap(v, transform.RotateStep)) }

// ZoomBy nudges the zoom by steps slider steps.
func (c *Controller) ZoomBy(steps int) {
	c.state.SetScale(c.state.Scale() + float64(steps)*transform.ScaleStep)
}

// RotateBy nudges the rotation by steps degrees.
func (c *Controller) RotateBy(steps int) {
	c.state.SetRotate(c.state.Rotate() + float64(steps)*transform.RotateStep)
}

// Nudge pans by (dx, dy) viewport pixels.
func (c *Controller) Nudge(dx, dy int) {
	if c.proxy == nil {
		return
	}
	c.state.PanBy(float64(dx), float64(dy), c.viewport, c.proxy.Bounds().Size())
}

// BeginDrag starts panning at p, in viewport coordinates.
func (c *Controller) BeginDrag(p image.Point) {
	if c.photo == nil {
		return
	}
	c.dragging = true
	c.last = p
}

// DragTo pans so the photo follows the pointer.
func (c *Controller) DragTo(p image.Point) bool {
	if !c.dragging || c.proxy == nil {
		return false
	}
	d := p.Sub(c.last)
	c.last = p
	if d == (image.Point{}) {
		return false
	}
	c.state.PanBy(float64(d.X), float64(d.Y), c.viewport, c.proxy.Bounds().Size())
	return true
}

// EndDrag stops panning.
func (c *Controller) EndDrag() { c.dragging = false }

// Dragging reports whether a pan is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// Touch feeds one touch event. One finger pans; a second finger starts a
// pinch whose distance ratio scales the photo.
func (c *Controller) Touch(seq touch.Sequence, typ touch.Type, p transform.Point) bool {
	if c.photo == nil {
		return false
	}
	switch typ {
	case touch.TypeBegin:
		c.touches[seq] = p
		switch len(c.touches) {
		case 1:
			c.BeginDrag(image.Pt(int(p.X), int(p.Y)))
		case 2:
			c.EndDrag()
			c.pinch.Begin(c.pair())
		default:
			c.pinch.End()
		}
	case touch.TypeMove:
		if _, ok := c.touches[seq]; !ok {
			return false
		}
		c.touches[seq] = p
		if len(c.touches) == 2 {
			a, b := c.pair()
			return c.pinch.Move(a, b, c.state)
		}
		if len(c.touches) == 1 {
			return c.DragTo(image.Pt(int(p.X), int(p.Y)))
		}
	case touch.TypeEnd:
		if _, ok := c.touches[seq]; !ok {
			return false
		}
		delete(c.touches, seq)
		switch n := len(c.touches); {
		case n == 2:
			c.pinch.Begin(c.pair())
		case n < 2:
			c.pinch.End()
		}
		if len(c.touches) == 0 {
			c.EndDrag()
		}
	}
	return true
}

// pair returns the two active touches in a stable order.
func (c *Controller) pair() (transform.Point, transform.Point) {
	var pts []transform.Point
	var seqs []touch.Sequence
	for s := range c.touches {
		seqs = append(seqs, s)
	}
	if len(seqs) == 2 && seqs[0] > seqs[1] {
		seqs[0], seqs[1] = seqs[1], seqs[0]
	}
	for _, s := range seqs {
		pts = append(pts, c.touches[s])
	}
	if len(pts) < 2 {
		return transform.Point{}, transform.Point{}
	}
	return pts[0], pts[1]
}

func (c *Controller) cancelGestures() {
	c.dragging = false
	c.pinch.End()
	clear(c.touches)
}

// ExportJob is what an export runs on: the photo and a snapshot of the
// placement taken when the user asked for it.
type ExportJob struct {
	Photo    *intake.Photo
	Snapshot transform.Snapshot
}

// BeginExport marks an export as running. It returns false without a
// photo or while another export is still in flight.
func (c *Controller) BeginExport() (ExportJob, bool) {
	if c.photo == nil || c.exporting {
		return ExportJob{}, false
	}
	c.exporting = true
	c.Show("Menyimpan twibbon...", false)
	return ExportJob{Photo: c.photo, Snapshot: c.state.Snapshot()}, true
}

// Exporting reports whether the download button is disabled.
func (c *Controller) Exporting() bool { return c.exporting }

// FinishExport re-enables the download button and reports the outcome.
func (c *Controller) FinishExport(res *compose.Result, err error) {
	c.exporting = false
	switch {
	case errors.Is(err, frame.ErrUnavailable):
		c.Show("Frame gagal dimuat. Coba lagi.", true)
	case err != nil:
		c.Show(fmt.Sprintf("Gagal menyimpan: %v", err), true)
	case res != nil:
		c.Show("Tersimpan: "+res.Path, false)
	}
}

// Show sets the status line.
func (c *Controller) Show(msg string, isErr bool) {
	c.message = msg
	c.messageErr = isErr
	c.messageUntil = c.now().Add(messageDuration)
}

// Message returns the visible status line, if any.
func (c *Controller) Message() (string, bool) {
	if c.message == "" || !c.now().Before(c.messageUntil) {
		return "", false
	}
	return c.message, c.messageErr
}

func previewProxy(img image.Image, limit int) image.Image {
	b := img.Bounds()
	if limit <= 0 || (b.Dx() <= limit && b.Dy() <= limit) {
		return img
	}
	return imaging.Fit(img, limit, limit, imaging.Linear)
}

func snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	n := v / step
	if n < 0 {
		return -float64(int(-n+0.5)) * step
	}
	return float64(int(n+0.5)) * step
}
