package caption

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{d: d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) fire(i int) {
	c.timers[i].fn()
}

func TestCopySuccessReverts(t *testing.T) {
	var got string
	clock := &fakeClock{}
	var changes []Status
	p := NewPanel(WriterFunc(func(s string) error { got = s; return nil }),
		WithAfterFunc(clock.AfterFunc),
		OnChange(func(s Status) { changes = append(changes, s) }))

	if p.Status() != Idle || p.Status().Label() != "Salin Caption" {
		t.Fatalf("initial status = %v", p.Status())
	}
	if err := p.Copy(); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if got != Text {
		t.Fatalf("clipboard text mismatch")
	}
	if p.Status() != Success || p.Status().Label() != "Berhasil Disalin!" {
		t.Fatalf("status = %v", p.Status())
	}
	if len(clock.timers) != 1 || clock.timers[0].d != RevertDelay {
		t.Fatalf("expected one revert timer of %v, got %+v", RevertDelay, clock.timers)
	}
	clock.fire(0)
	if p.Status() != Idle {
		t.Fatalf("status after revert = %v", p.Status())
	}
	want := []Status{Success, Idle}
	if len(changes) != len(want) || changes[0] != want[0] || changes[1] != want[1] {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
}

func TestCopyFailureReverts(t *testing.T) {
	clock := &fakeClock{}
	boom := errors.New("denied")
	p := NewPanel(WriterFunc(func(string) error { return boom }), WithAfterFunc(clock.AfterFunc))

	err := p.Copy()
	if !errors.Is(err, boom) {
		t.Fatalf("Copy error = %v, want %v", err, boom)
	}
	if p.Status() != Failure || p.Status().Label() != "Gagal Menyalin" {
		t.Fatalf("status = %v", p.Status())
	}
	clock.fire(0)
	if p.Status() != Idle {
		t.Fatalf("status after revert = %v", p.Status())
	}
}

func TestSecondCopyReplacesPendingRevert(t *testing.T) {
	clock := &fakeClock{}
	fail := true
	p := NewPanel(WriterFunc(func(string) error {
		if fail {
			return errors.New("busy")
		}
		return nil
	}), WithAfterFunc(clock.AfterFunc))

	_ = p.Copy()
	fail = false
	if err := p.Copy(); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if !clock.timers[0].stopped {
		t.Fatalf("first revert timer was not stopped")
	}
	// A stale timer that fires anyway must not clear the newer status.
	clock.fire(0)
	if p.Status() != Success {
		t.Fatalf("stale revert changed status to %v", p.Status())
	}
	clock.fire(1)
	if p.Status() != Idle {
		t.Fatalf("status = %v, want idle", p.Status())
	}
}

func TestNilWriterFails(t *testing.T) {
	clock := &fakeClock{}
	p := NewPanel(nil, WithAfterFunc(clock.AfterFunc))
	if err := p.Copy(); err == nil {
		t.Fatalf("expected error")
	}
	if p.Status() != Failure {
		t.Fatalf("status = %v", p.Status())
	}
}

func TestRealTimerReverts(t *testing.T) {
	done := make(chan Status, 4)
	p := NewPanel(WriterFunc(func(string) error { return nil }),
		WithDelay(10*time.Millisecond),
		OnChange(func(s Status) { done <- s }))
	if err := p.Copy(); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if s := <-done; s != Success {
		t.Fatalf("first change = %v", s)
	}
	select {
	case s := <-done:
		if s != Idle {
			t.Fatalf("second change = %v", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("revert did not fire")
	}
}

func TestTextPlaceholders(t *testing.T) {
	for _, want := range []string{"[Nama kamu]", "[Organisasi Kamu]", "[Isi dengan motto kamu]", "#LDKS2025"} {
		if !strings.Contains(Text, want) {
			t.Errorf("caption missing %q", want)
		}
	}
}
