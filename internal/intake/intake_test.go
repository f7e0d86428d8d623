package intake

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	p, err := Decode("me.png", bytes.NewReader(pngBytes(t, 40, 30)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.MIME != "image/png" {
		t.Errorf("MIME = %q", p.MIME)
	}
	if p.Size() != image.Pt(40, 30) {
		t.Errorf("size = %v", p.Size())
	}
	if p.Name != "me.png" {
		t.Errorf("name = %q", p.Name)
	}
}

func TestDecodeRejectsPDF(t *testing.T) {
	pdf := []byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	p, err := Decode("report.pdf", bytes.NewReader(pdf))
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
	if p != nil {
		t.Fatalf("expected no photo")
	}
	if !strings.Contains(err.Error(), "application/pdf") {
		t.Errorf("error should name the detected type: %v", err)
	}
}

func TestDecodeRejectsEmpty(t *testing.T) {
	if _, err := Decode("empty.png", bytes.NewReader(nil)); !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
}

func TestDecodeCorruptImage(t *testing.T) {
	data := pngBytes(t, 8, 8)[:40]
	if _, err := Decode("broken.png", bytes.NewReader(data)); !errors.Is(err, ErrUndecodable) {
		t.Fatalf("expected ErrUndecodable, got %v", err)
	}
}

func TestDetectTypeFallsBackToExtension(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want string
	}{
		{"photo.png", pngBytes(t, 2, 2), "image/png"},
		{"notes.txt", []byte("hello"), "text/plain; charset=utf-8"},
		{"mystery.webp", []byte{0x00, 0x01, 0x02}, "image/webp"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectType(tc.name, tc.head)
			if tc.name == "notes.txt" {
				if IsImage(got) {
					t.Fatalf("text detected as image: %q", got)
				}
				return
			}
			if got != tc.want {
				t.Fatalf("DetectType = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAcceptUsesFirstFileOnly(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.png")
	second := filepath.Join(dir, "second.pdf")
	if err := os.WriteFile(first, pngBytes(t, 12, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Accept([]string{first, second})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if p.Name != "first.png" {
		t.Fatalf("accepted %q", p.Name)
	}
	if _, err := Accept([]string{second, first}); !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected first (pdf) file to be rejected, got %v", err)
	}
}

func TestAcceptEmpty(t *testing.T) {
	if _, err := Accept(nil); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles, got %v", err)
	}
	if _, err := Accept([]string{"  "}); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles, got %v", err)
	}
}

type fakeClipboard struct {
	img image.Image
	err error
}

func (f fakeClipboard) ReadImage() (image.Image, error) { return f.img, f.err }

func TestFromClipboard(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	p, err := FromClipboard(fakeClipboard{img: img})
	if err != nil {
		t.Fatalf("FromClipboard: %v", err)
	}
	if p.Image != img || p.MIME != "image/png" {
		t.Fatalf("unexpected photo %+v", p)
	}
	boom := errors.New("no display")
	if _, err := FromClipboard(fakeClipboard{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
