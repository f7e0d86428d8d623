package frame

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func encodeSquare(t *testing.T, size int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestResolve(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"", "frame.Embedded"},
		{"  ", "frame.Embedded"},
		{"https://example.test/frame.png", "*frame.HTTP"},
		{"http://example.test/frame.png", "*frame.HTTP"},
		{"/srv/frame.png", "frame.File"},
	}
	for _, tt := range tests {
		var got string
		switch Resolve(tt.spec).(type) {
		case Embedded:
			got = "frame.Embedded"
		case *HTTP:
			got = "*frame.HTTP"
		case File:
			got = "frame.File"
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.spec, got, tt.want)
		}
	}
}

func TestEmbeddedLoads(t *testing.T) {
	img, err := Embedded{}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 1080 {
		t.Fatalf("width = %d, want 1080", img.Bounds().Dx())
	}
}

func TestFileLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := os.WriteFile(path, encodeSquare(t, 8, color.NRGBA{R: 200, A: 255}), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := File{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Fatalf("width = %d, want 8", img.Bounds().Dx())
	}
}

func TestFileMissingIsUnavailable(t *testing.T) {
	_, err := File{Path: filepath.Join(t.TempDir(), "missing.png")}.Load(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestHTTPLoadFetchesEveryTime(t *testing.T) {
	body := encodeSquare(t, 4, color.NRGBA{B: 255, A: 255})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("Cookie") != "" || r.Header.Get("Authorization") != "" {
			t.Errorf("request carried credentials: %v", r.Header)
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	src := &HTTP{URL: srv.URL + "/frame-ldks.png", Client: srv.Client()}
	for i := 0; i < 2; i++ {
		if _, err := src.Load(context.Background()); err != nil {
			t.Fatalf("Load #%d: %v", i, err)
		}
	}
	if n := hits.Load(); n != 2 {
		t.Fatalf("server hits = %d, want 2", n)
	}
}

func TestHTTPNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := (&HTTP{URL: srv.URL, Client: srv.Client()}).Load(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestHTTPTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := (&HTTP{URL: srv.URL, Client: srv.Client(), Timeout: 50 * time.Millisecond}).Load(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("timeout was not applied")
	}
}

func TestFixed(t *testing.T) {
	if _, err := (Fixed{}).Load(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("empty Fixed err = %v", err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	got, err := Fixed{Image: img}.Load(context.Background())
	if err != nil || got != img {
		t.Fatalf("Load = %v, %v", got, err)
	}
}

func TestFit(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	if Fit(img, 100) != image.Image(img) {
		t.Fatal("same-size frame was resampled")
	}
	out := Fit(img, 40)
	if b := out.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Fatalf("bounds %v, want 40x40", b)
	}
}
