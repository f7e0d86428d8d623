package editor

import (
	"image"
	"strings"
	"testing"

	"golang.org/x/image/font"

	"github.com/example/twibbon/internal/caption"
	"github.com/example/twibbon/internal/theme"
)

func TestSliderValueAt(t *testing.T) {
	s := &Slider{min: 1, max: 5, step: 0.05, track: image.Rect(100, 0, 500, 20)}
	tests := []struct {
		x    int
		want float64
	}{
		{0, 1},
		{100, 1},
		{300, 3},
		{500, 5},
		{900, 5},
		{101, 1},
	}
	for _, tc := range tests {
		if got := s.ValueAt(tc.x); !approx(got, tc.want) {
			t.Errorf("ValueAt(%d) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestSliderSetFromX(t *testing.T) {
	var got float64
	s := &Slider{min: -180, max: 180, step: 1, track: image.Rect(0, 0, 360, 10), set: func(v float64) { got = v }}
	s.SetFromX(270)
	if !approx(got, 90) {
		t.Fatalf("set %v, want 90", got)
	}
	if !s.Hit(image.Pt(-4, 5)) || s.Hit(image.Pt(180, 40)) {
		t.Fatalf("hit area wrong")
	}
}

func TestLayoutFitsWindow(t *testing.T) {
	for _, vp := range []int{320, 540, 800} {
		l := computeLayout(vp)
		if l.viewport.Dx() != vp || l.viewport.Dy() != vp {
			t.Fatalf("viewport %v for %d", l.viewport, vp)
		}
		win := image.Rectangle{Max: l.size}
		for name, r := range map[string]image.Rectangle{
			"editor": l.editorCard, "caption": l.captionCard, "download": l.download, "copy": l.copy,
		} {
			if !r.In(win) {
				t.Errorf("%d: %s %v outside window %v", vp, name, r, win)
			}
		}
		if !l.viewport.In(l.editorCard) || !l.download.In(l.editorCard) {
			t.Errorf("%d: editor content outside card", vp)
		}
		if l.viewport.Overlaps(l.zoom) || l.zoom.Overlaps(l.rotate) || l.change.Overlaps(l.paste) {
			t.Errorf("%d: controls overlap", vp)
		}
		if !l.copy.In(l.captionCard) || l.captionText.Overlaps(l.copy) {
			t.Errorf("%d: caption panel broken", vp)
		}
	}
}

func TestLayoutCentresInLargerWindow(t *testing.T) {
	l := computeLayout(540)
	win := l.size.Add(image.Pt(200, 100))
	moved := l.translate(l.offset(win))
	if moved.viewport.Min != l.viewport.Min.Add(image.Pt(100, 50)) {
		t.Fatalf("viewport at %v", moved.viewport.Min)
	}
	if got := l.toViewport(l.viewport.Min.Add(image.Pt(3, 4))); got != image.Pt(3, 4) {
		t.Fatalf("toViewport = %v", got)
	}
	if l.offset(image.Pt(10, 10)) != (image.Point{}) {
		t.Fatalf("offset in a small window should be zero")
	}
}

func TestWrapCaption(t *testing.T) {
	const width = 300
	lines := wrapText(bodyFace, caption.Text, width)
	d := &font.Drawer{Face: bodyFace}
	for _, line := range lines {
		if w := d.MeasureString(line).Ceil(); w > width {
			t.Fatalf("line %q is %dpx wide", line, w)
		}
	}
	joined := strings.Join(lines, " ")
	for _, want := range []string{"[Nama kamu]", "#LDKS2025", "@smktelkomsda"} {
		if !strings.Contains(joined, want) {
			t.Errorf("wrapped caption lost %q", want)
		}
	}
}

func TestWrapBreaksLongWords(t *testing.T) {
	lines := wrapText(bodyFace, strings.Repeat("W", 80), 100)
	if len(lines) < 2 {
		t.Fatalf("long word not broken: %q", lines)
	}
	if strings.Join(lines, "") != strings.Repeat("W", 80) {
		t.Fatalf("runes lost: %q", lines)
	}
}

func TestCacheButtonRedrawsOnLabelChange(t *testing.T) {
	th := theme.Default()
	ab := &ActionButton{text: "Salin Caption", theme: th}
	cb := &CacheButton{Button: ab}
	cb.SetRect(image.Rect(0, 0, 120, 40))
	dst := image.NewRGBA(image.Rect(0, 0, 120, 40))
	cb.Draw(dst, StateDefault)
	first := cb.cache[StateDefault]
	if first == nil {
		t.Fatal("state not cached")
	}
	cb.Draw(dst, StateDefault)
	if cb.cache[StateDefault] != first {
		t.Fatal("cache rebuilt without a change")
	}
	ab.text = "Berhasil Disalin!"
	cb.Draw(dst, StateDefault)
	if cb.cache[StateDefault] == first {
		t.Fatal("cache kept a stale label")
	}
}

func TestDisabledButtonIgnoresActivate(t *testing.T) {
	n := 0
	b := &ActionButton{action: func() { n++ }}
	b.Activate()
	b.disabled = true
	b.Activate()
	if n != 1 {
		t.Fatalf("activated %d times", n)
	}
}
