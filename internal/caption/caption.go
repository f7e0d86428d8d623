// Package caption holds the share caption shown beside the editor and the
// copy-to-clipboard state behind its button.
package caption

import (
	"fmt"
	"sync"
	"time"
)

// Text is the caption users paste under their post. The bracketed parts are
// placeholders the user fills in by hand.
const Text = "💫 I'm ready to find direction and become better with LDKS SMK Telkom Sidoarjo 2025! 💫\n" +
	"\n" +
	"Halo teman-teman 👋🏻\n" +
	"Perkenalkan, saya [Nama kamu] dari [Organisasi Kamu] selaku Peserta LDKS SMK Telkom Sidoarjo siap menjalani rangkaian kegiatan LDKS dengan penuh semangat, disiplin, dan aktif. Saya siap belajar, berproses, dan tumbuh menjadi pribadi yang lebih tangguh dan bertanggung jawab.\n" +
	"\n" +
	"⏳Motto Hidup\n" +
	"[Isi dengan motto kamu]\n" +
	"\n" +
	"\"From Inspiration to Transformation\"\n" +
	"See you at LDKS SMK Telkom Sidoarjo 2025 👀\n" +
	"\n" +
	"@smktelkomsda @osis.smktelkomsda @mpk.smktelkomsda\n" +
	"#LDKS2025 #LDKSKOMDA2025 #Leadership"

// RevertDelay is how long a success or failure label stays on the button.
const RevertDelay = 3 * time.Second

// Status is the state of the copy button.
type Status int

const (
	Idle Status = iota
	Success
	Failure
)

// Label is the text shown on the copy button for s.
func (s Status) Label() string {
	switch s {
	case Success:
		return "Berhasil Disalin!"
	case Failure:
		return "Gagal Menyalin"
	default:
		return "Salin Caption"
	}
}

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Writer puts text on the clipboard.
type Writer interface {
	WriteText(text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(string) error

func (f WriterFunc) WriteText(text string) error { return f(text) }

// Timer is the part of *time.Timer the panel needs.
type Timer interface {
	Stop() bool
}

// Panel tracks the copy status. It is safe for concurrent use: the revert
// fires on its own goroutine.
type Panel struct {
	writer    Writer
	delay     time.Duration
	afterFunc func(time.Duration, func()) Timer

	mu       sync.Mutex
	status   Status
	pending  Timer
	gen      int
	onChange func(Status)
}

// Option configures a Panel.
type Option func(*Panel)

// WithDelay overrides RevertDelay.
func WithDelay(d time.Duration) Option {
	return func(p *Panel) { p.delay = d }
}

// WithAfterFunc replaces time.AfterFunc, mainly for tests.
func WithAfterFunc(f func(time.Duration, func()) Timer) Option {
	return func(p *Panel) { p.afterFunc = f }
}

// OnChange registers fn to be called after every status change. fn runs
// without the panel lock held and may be called from the timer goroutine.
func OnChange(fn func(Status)) Option {
	return func(p *Panel) { p.onChange = fn }
}

// NewPanel returns an idle panel that copies through w.
func NewPanel(w Writer, opts ...Option) *Panel {
	p := &Panel{
		writer: w,
		delay:  RevertDelay,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Text returns the caption.
func (p *Panel) Text() string { return Text }

// Status returns the current button state.
func (p *Panel) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Copy writes the caption to the clipboard and moves to Success or Failure.
// The status returns to Idle after the delay; a later Copy replaces the
// pending revert. The write error, if any, is returned.
func (p *Panel) Copy() error {
	var err error
	if p.writer == nil {
		err = fmt.Errorf("copy caption: no clipboard")
	} else if werr := p.writer.WriteText(Text); werr != nil {
		err = fmt.Errorf("copy caption: %w", werr)
	}
	next := Success
	if err != nil {
		next = Failure
	}

	p.mu.Lock()
	if p.pending != nil {
		p.pending.Stop()
	}
	p.gen++
	gen := p.gen
	p.status = next
	p.pending = p.afterFunc(p.delay, func() { p.revert(gen) })
	p.mu.Unlock()

	p.notify(next)
	return err
}

func (p *Panel) revert(gen int) {
	p.mu.Lock()
	if gen != p.gen || p.status == Idle {
		p.mu.Unlock()
		return
	}
	p.status = Idle
	p.pending = nil
	p.mu.Unlock()
	p.notify(Idle)
}

func (p *Panel) notify(s Status) {
	if p.onChange != nil {
		p.onChange(s)
	}
}
