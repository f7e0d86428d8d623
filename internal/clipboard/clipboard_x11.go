//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// readTimeout bounds how long a paste waits for the selection owner.
const readTimeout = 3 * time.Second

var (
	initOnce sync.Once
	initErr  error
	owner    *selectionOwner

	errTargetUnavailable = errors.New("clipboard target unavailable")
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		o, err := newSelectionOwner()
		if err != nil {
			initErr = fmt.Errorf("connect to X server: %w", err)
			return
		}
		owner = o
	})
	return initErr
}

// WriteImage encodes img as PNG and takes ownership of the CLIPBOARD selection.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return owner.publish(offer{png: data})
}

// ReadImage asks the current selection owner for image/png.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := owner.request(owner.atoms.png)
	if errors.Is(err, errTargetUnavailable) {
		return nil, fmt.Errorf("%w: %v", ErrEmpty, err)
	}
	if err != nil {
		return nil, err
	}
	return decodePNG(data)
}

// WriteText takes ownership of the CLIPBOARD selection with UTF-8 text.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.publish(offer{text: []byte(text)})
}

// offer is what this process currently serves. Only one of the fields is set.
type offer struct {
	text []byte
	png  []byte
}

type atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atoms

	mu      sync.RWMutex
	current offer
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	mask := []uint32{xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify}
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, win, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwEventMask, mask).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	a, err := intern(conn)
	if err != nil {
		xproto.DestroyWindow(conn, win)
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{conn: conn, window: win, atoms: a}
	go o.serve()
	return o, nil
}

func intern(conn *xgb.Conn) (atoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "UTF8_STRING", "text/plain;charset=utf-8", "image/png", "TWIBBON_CLIPBOARD"}
	got := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atoms{}, fmt.Errorf("intern %s: %w", name, err)
		}
		got[i] = reply.Atom
	}
	return atoms{
		clipboard: got[0],
		targets:   got[1],
		utf8:      got[2],
		textPlain: got[3],
		png:       got[4],
		property:  got[5],
	}, nil
}

func (o *selectionOwner) publish(v offer) error {
	o.mu.Lock()
	o.current = v
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.current = offer{}
			o.mu.Unlock()
		}
	}
}

// answer replies to a SelectionRequest from another client.
func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	prop := e.Property
	if prop == xproto.AtomNone {
		prop = e.Target
	}
	o.mu.RLock()
	cur := o.current
	o.mu.RUnlock()

	var (
		typ     xproto.Atom
		format  byte = 8
		payload []byte
	)
	switch e.Target {
	case o.atoms.targets:
		list := []xproto.Atom{o.atoms.targets}
		if len(cur.text) > 0 {
			list = append(list, o.atoms.utf8, xproto.AtomString, o.atoms.textPlain)
		}
		if len(cur.png) > 0 {
			list = append(list, o.atoms.png)
		}
		typ, format, payload = xproto.AtomAtom, 32, atomBytes(list)
	case o.atoms.utf8, xproto.AtomString, o.atoms.textPlain:
		typ, payload = o.atoms.utf8, cur.text
	case o.atoms.png:
		typ, payload = o.atoms.png, cur.png
	}
	if payload == nil {
		prop = xproto.AtomNone
	} else {
		units := uint32(len(payload)) / uint32(format/8)
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, prop, typ, format, units, payload)
	}
	reply := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  prop,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(reply.Bytes()))
}

// request converts the CLIPBOARD selection to target on a private
// connection so the owner loop is never blocked by a paste.
func (o *selectionOwner) request(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, win, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, win)

	if err := xproto.ConvertSelectionChecked(conn, win, o.atoms.clipboard, target, o.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		for {
			ev, err := conn.WaitForEvent()
			if ev == nil && err == nil {
				done <- result{err: errors.New("X connection closed")}
				return
			}
			e, ok := ev.(xproto.SelectionNotifyEvent)
			if !ok {
				continue
			}
			if e.Property == xproto.AtomNone {
				done <- result{err: errTargetUnavailable}
				return
			}
			reply, perr := xproto.GetProperty(conn, true, win, e.Property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
			if perr != nil {
				done <- result{err: perr}
				return
			}
			done <- result{data: append([]byte(nil), reply.Value...)}
			return
		}
	}()
	select {
	case r := <-done:
		return r.data, r.err
	case <-time.After(readTimeout):
		return nil, fmt.Errorf("clipboard owner did not answer within %s", readTimeout)
	}
}

func atomBytes(list []xproto.Atom) []byte {
	buf := make([]byte, 4*len(list))
	for i, a := range list {
		xgb.Put32(buf[4*i:], uint32(a))
	}
	return buf
}
