// Package editor is the interactive twibbon window: a square preview of the
// photo behind the frame, sliders for zoom and rotation, and the caption
// panel.
package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/sqweek/dialog"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/twibbon/internal/caption"
	"github.com/example/twibbon/internal/compose"
	"github.com/example/twibbon/internal/frame"
	"github.com/example/twibbon/internal/intake"
	"github.com/example/twibbon/internal/logging"
	"github.com/example/twibbon/internal/notify"
	"github.com/example/twibbon/internal/theme"
	"github.com/example/twibbon/internal/transform"
)

// WindowTitle is the heading of the editor card and the default window
// title.
const WindowTitle = "Twibbon LDKS SMK Telkom Sidoarjo 2025"

const (
	subtitle      = "Cubit (Pinch) untuk Zoom, Geser untuk atur posisi."
	dropZoneLabel = "Klik atau Tarik Foto ke Sini"
	dropZoneHint  = "PNG, JPG, WEBP • Ctrl+V untuk tempel"
)

// DefaultViewport is the side of the preview square.
const DefaultViewport = 540

// Clipboard is what the editor needs from the system clipboard.
type Clipboard interface {
	intake.ImageReader
	caption.Writer
}

// Picker asks the user for a photo. It returns dialog.ErrCancelled when the
// user backs out.
type Picker func() (string, error)

// Options configures the editor window.
type Options struct {
	Title        string
	Theme        *theme.Theme
	Viewport     int
	Limits       transform.Limits
	DefaultScale float64
	Exporter     *compose.Exporter
	Frame        frame.Source
	FrameTimeout time.Duration
	Clipboard    Clipboard
	Notifier     *notify.Notifier
	Photo        *intake.Photo
	Picker       Picker
	Logger       *slog.Logger
}

func (o *Options) defaults() {
	if o.Title == "" {
		o.Title = WindowTitle
	}
	if o.Theme == nil {
		o.Theme = theme.Default()
	}
	if o.Viewport <= 0 {
		o.Viewport = DefaultViewport
	}
	if o.Exporter == nil {
		o.Exporter = &compose.Exporter{}
	}
	if o.Frame == nil {
		o.Frame = o.Exporter.Frame
	}
	if o.Frame == nil {
		o.Frame = frame.Embedded{}
	}
	if o.FrameTimeout <= 0 {
		o.FrameTimeout = frame.DefaultTimeout
	}
	if o.Picker == nil {
		o.Picker = dialogPicker
	}
	if o.Logger == nil {
		o.Logger = logging.WithComponent("editor")
	}
}

func dialogPicker() (string, error) {
	return dialog.File().
		Filter("Images", "png", "jpg", "jpeg", "gif", "webp", "bmp", "tiff").
		Title("Pilih Foto").
		Load()
}

// Events posted back to the loop by background work.
type (
	photoLoaded struct {
		photo      *intake.Photo
		err        error
		fromPicker bool
	}
	frameLoaded struct {
		img image.Image
		err error
	}
	exportDone struct {
		res *compose.Result
		err error
	}
	captionChanged struct{ status caption.Status }
	expireMessage  struct{}
)

// Run opens the editor window and blocks until it is closed.
func Run(opts Options) error {
	var err error
	driver.Main(func(s screen.Screen) {
		err = Main(s, opts)
	})
	return err
}

// Main runs the editor on an existing screen.
func Main(s screen.Screen, opts Options) error {
	opts.defaults()
	log := opts.Logger
	th := opts.Theme

	c := NewController(opts.Viewport, opts.Limits, opts.DefaultScale)
	base := computeLayout(opts.Viewport)
	winSize := base.size

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: winSize.X, Height: winSize.Y, Title: opts.Title})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	panel := caption.NewPanel(opts.Clipboard, caption.OnChange(func(st caption.Status) {
		w.Send(captionChanged{status: st})
	}))

	if opts.Photo != nil {
		c.LoadPhoto(opts.Photo)
	}

	go func() {
		fctx, fcancel := context.WithTimeout(ctx, opts.FrameTimeout)
		defer fcancel()
		img, err := opts.Frame.Load(fctx)
		if err == nil {
			img = frame.Fit(img, opts.Viewport)
		}
		w.Send(frameLoaded{img: img, err: err})
	}()

	openPicker := func() {
		if !c.BeginPick() {
			return
		}
		go func() {
			path, err := opts.Picker()
			if errors.Is(err, dialog.ErrCancelled) {
				w.Send(photoLoaded{fromPicker: true})
				return
			}
			if err != nil {
				w.Send(photoLoaded{err: err, fromPicker: true})
				return
			}
			p, err := intake.Accept([]string{path})
			w.Send(photoLoaded{photo: p, err: err, fromPicker: true})
		}()
	}
	paste := func() {
		if opts.Clipboard == nil {
			c.Show("Clipboard tidak tersedia.", true)
			return
		}
		go func() {
			p, err := intake.FromClipboard(opts.Clipboard)
			w.Send(photoLoaded{photo: p, err: err})
		}()
	}
	exportPhoto := func() {
		job, ok := c.BeginExport()
		if !ok {
			return
		}
		go func() {
			res, err := opts.Exporter.Export(ctx, job.Photo, job.Snapshot)
			w.Send(exportDone{res: res, err: err})
		}()
	}
	copyCaption := func() {
		go func() {
			if err := panel.Copy(); err != nil {
				log.Warn("copy caption", "err", err)
				return
			}
			if opts.Notifier != nil {
				opts.Notifier.Copy("caption")
			}
		}()
	}
	changePhoto := func() {
		if c.HasPhoto() {
			c.ClearPhoto()
			return
		}
		openPicker()
	}

	showMessage := func() {
		time.AfterFunc(messageDuration+50*time.Millisecond, func() { w.Send(expireMessage{}) })
	}

	changeBtn := &ActionButton{theme: th, action: changePhoto}
	pasteBtn := &ActionButton{theme: th, text: "Tempel Foto", action: paste}
	downloadBtn := &ActionButton{theme: th, text: "DOWNLOAD DISINI", tone: tonePrimary, action: exportPhoto}
	copyBtn := &ActionButton{theme: th, action: copyCaption}
	buttons := []*ActionButton{changeBtn, pasteBtn, downloadBtn, copyBtn}

	zoom := Slider{
		label: "Zoom", step: transform.ScaleStep,
		min: c.State().Limits().MinScale, max: c.State().Limits().MaxScale,
		set:    c.SetZoom,
		format: func(v float64) string { return fmt.Sprintf("%.2fx", v) },
	}
	rotate := Slider{
		label: "Putar", step: transform.RotateStep,
		min: c.State().Limits().MinRotate, max: c.State().Limits().MaxRotate,
		set:    c.SetRotation,
		format: func(v float64) string { return fmt.Sprintf("%.0f°", v) },
	}
	sliders := []*Slider{&zoom, &rotate}

	var l layout
	relayout := func() {
		l = base.translate(base.offset(winSize))
		changeBtn.rect, pasteBtn.rect, downloadBtn.rect, copyBtn.rect = l.change, l.paste, l.download, l.copy
		zoom.track, rotate.track = l.zoom, l.rotate
	}
	relayout()

	refresh := func() {
		if c.HasPhoto() {
			changeBtn.text = "Ganti Foto Lain"
		} else {
			changeBtn.text = "Pilih Foto"
		}
		downloadBtn.disabled = !c.HasPhoto() || c.Exporting()
		if c.Exporting() {
			downloadBtn.text = "MENYIMPAN..."
		} else {
			downloadBtn.text = "DOWNLOAD DISINI"
		}
		st := panel.Status()
		copyBtn.text = st.Label()
		switch st {
		case caption.Success:
			copyBtn.tone = toneSuccess
		case caption.Failure:
			copyBtn.tone = toneFailure
		default:
			copyBtn.tone = toneNormal
		}
	}

	keyboardAction := map[KeyShortcut]string{}
	actions := map[string]func(){}
	register := func(name string, shortcuts shortcutList, fn func()) {
		for _, sc := range shortcuts {
			keyboardAction[sc] = name
		}
		actions[name] = fn
	}
	quit := false
	register("open", shortcutList{{Code: key.CodeO, Modifiers: key.ModControl}}, openPicker)
	register("paste", shortcutList{{Code: key.CodeV, Modifiers: key.ModControl}}, paste)
	register("download", shortcutList{{Code: key.CodeS, Modifiers: key.ModControl}}, exportPhoto)
	register("copy", shortcutList{{Code: key.CodeC, Modifiers: key.ModControl}}, copyCaption)
	register("change", shortcutList{{Code: key.CodeN}, {Rune: 'n'}, {Rune: 'N'}}, func() {
		if c.HasPhoto() {
			c.ClearPhoto()
		}
	})
	register("zoom-in", shortcutList{{Rune: '+'}, {Rune: '='}, {Code: key.CodeKeypadPlusSign}}, func() { c.ZoomBy(1) })
	register("zoom-out", shortcutList{{Rune: '-'}, {Code: key.CodeKeypadHyphenMinus}}, func() { c.ZoomBy(-1) })
	register("rotate-left", shortcutList{{Rune: '['}, {Code: key.CodeLeftSquareBracket}}, func() { c.RotateBy(-1) })
	register("rotate-right", shortcutList{{Rune: ']'}, {Code: key.CodeRightSquareBracket}}, func() { c.RotateBy(1) })
	register("pan-left", shortcutList{{Code: key.CodeLeftArrow}}, func() { c.Nudge(-10, 0) })
	register("pan-right", shortcutList{{Code: key.CodeRightArrow}}, func() { c.Nudge(10, 0) })
	register("pan-up", shortcutList{{Code: key.CodeUpArrow}}, func() { c.Nudge(0, -10) })
	register("pan-down", shortcutList{{Code: key.CodeDownArrow}}, func() { c.Nudge(0, 10) })
	register("quit", shortcutList{{Rune: 'q'}, {Rune: 'Q'}, {Code: key.CodeQ, Modifiers: key.ModControl}}, func() { quit = true })

	handleShortcut := func(e key.Event) bool {
		mods := e.Modifiers &^ key.ModShift
		if name, ok := keyboardAction[KeyShortcut{Code: e.Code, Modifiers: mods}]; ok {
			actions[name]()
			return true
		}
		if mods == 0 && e.Rune > 0 {
			if name, ok := keyboardAction[KeyShortcut{Rune: e.Rune}]; ok {
				actions[name]()
				return true
			}
		}
		if mods == 0 {
			if name, ok := keyboardAction[KeyShortcut{Code: e.Code}]; ok {
				actions[name]()
				return true
			}
		}
		return false
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	pt := newPainter()
	go func() {
		for st := range paintCh {
			pctx, pcancel := context.WithCancel(ctx)
			paintMu.Lock()
			paintCancel = pcancel
			paintMu.Unlock()
			pt.drawFrame(pctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if pctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			pcancel()
		}
	}()
	defer close(paintCh)
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	hover, pressed := -1, -1
	var activeSlider *Slider
	buttonAt := func(p image.Point) int {
		for i, b := range buttons {
			if p.In(b.rect) {
				return i
			}
		}
		return -1
	}

	for {
		if quit {
			stopPaint()
			return nil
		}
		e := w.NextEvent()
		until := c.messageUntil
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return nil
			}
		case size.Event:
			winSize = image.Pt(e.WidthPx, e.HeightPx)
			relayout()
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			refresh()
			st := paintState{
				size:     winSize,
				layout:   l,
				theme:    th,
				proxy:    c.Proxy(),
				frame:    c.Frame(),
				snap:     c.State().Snapshot(),
				zoom:     zoom,
				rotate:   rotate,
				dragging: c.Dragging(),
			}
			st.message, st.messageErr = c.Message()
			for i, b := range buttons {
				state := StateDefault
				switch {
				case b.disabled:
					state = StateDisabled
				case i == pressed:
					state = StatePressed
				case i == hover:
					state = StateHover
				}
				st.buttons = append(st.buttons, buttonView{button: *b, state: state})
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
			continue
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			switch {
			case e.Button.IsWheel():
				if e.Direction != mouse.DirStep && e.Direction != mouse.DirPress {
					break
				}
				if !p.In(l.viewport) {
					break
				}
				dy := 1.0
				if e.Button == mouse.ButtonWheelUp {
					dy = -1
				}
				c.Wheel(dy)
			case e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft:
				if i := buttonAt(p); i >= 0 {
					pressed = i
					break
				}
				for _, sl := range sliders {
					if c.HasPhoto() && sl.Hit(p) {
						activeSlider = sl
						sl.SetFromX(p.X)
						break
					}
				}
				if activeSlider == nil && p.In(l.viewport) {
					if c.HasPhoto() {
						c.BeginDrag(l.toViewport(p))
					} else {
						openPicker()
					}
				}
			case e.Direction == mouse.DirRelease && e.Button == mouse.ButtonLeft:
				if pressed >= 0 && buttonAt(p) == pressed {
					buttons[pressed].Activate()
				}
				pressed = -1
				activeSlider = nil
				c.EndDrag()
			default:
				if activeSlider != nil {
					activeSlider.SetFromX(p.X)
				} else if c.Dragging() {
					c.DragTo(l.toViewport(p))
				}
				hover = buttonAt(p)
			}
		case touch.Event:
			vp := l.toViewport(image.Pt(int(e.X), int(e.Y)))
			c.Touch(e.Sequence, e.Type, transform.Point{X: float64(vp.X), Y: float64(vp.Y)})
		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			if e.Code == key.CodeEscape {
				c.EndDrag()
				activeSlider = nil
				break
			}
			handleShortcut(e)
		case photoLoaded:
			switch {
			case e.err != nil:
				log.Info("photo rejected", "err", e.err, "picker", e.fromPicker)
			case e.photo != nil:
				log.Info("photo loaded", "name", e.photo.Name, "mime", e.photo.MIME, "size", e.photo.Size())
			}
			c.PhotoResult(e.photo, e.err, e.fromPicker)
		case frameLoaded:
			if e.err != nil {
				log.Warn("frame load failed", "frame", opts.Frame.String(), "err", e.err)
				c.Show("Frame gagal dimuat.", true)
				break
			}
			c.SetFrame(e.img)
		case exportDone:
			c.FinishExport(e.res, e.err)
			if e.err != nil {
				log.Error("export failed", "err", e.err)
			} else if e.res != nil && opts.Notifier != nil {
				go opts.Notifier.Export(e.res.Path)
			}
		case captionChanged:
			log.Debug("caption copy status", "status", e.status)
		case expireMessage:
		case error:
			log.Error("window", "err", e)
		}
		if c.messageUntil != until {
			showMessage()
		}
		w.Send(paint.Event{})
	}
}
