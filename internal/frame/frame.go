// Package frame loads the decorative overlay that is drawn on top of the
// photo. Sources are read again on every Load; nothing is cached here.
package frame

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/example/twibbon/assets"
)

// ErrUnavailable wraps every failure to obtain the frame image.
var ErrUnavailable = errors.New("frame unavailable")

// DefaultTimeout bounds a single frame load when the caller sets no deadline.
const DefaultTimeout = 10 * time.Second

// maxFrameBytes caps how much of a remote frame is read.
const maxFrameBytes = 32 << 20

// Source produces the overlay image.
type Source interface {
	Load(ctx context.Context) (image.Image, error)
	// String describes the source for logs and messages.
	String() string
}

// Resolve maps a frame spec to a Source: empty selects the bundled frame,
// http(s) URLs are fetched, anything else is a file path.
func Resolve(spec string) Source {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return Embedded{}
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return &HTTP{URL: spec}
	default:
		return File{Path: spec}
	}
}

// Embedded is the frame compiled into the binary.
type Embedded struct{}

func (Embedded) Load(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("embedded", err)
	}
	img, err := assets.Frame()
	if err != nil {
		return nil, unavailable("embedded", err)
	}
	return img, nil
}

func (Embedded) String() string { return "embedded:" + assets.FrameName }

// File reads the frame from disk.
type File struct {
	Path string
}

func (f File) Load(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(f.Path, err)
	}
	img, err := imaging.Open(f.Path)
	if err != nil {
		return nil, unavailable(f.Path, err)
	}
	return img, nil
}

func (f File) String() string { return f.Path }

// HTTP fetches the frame over HTTP(S). Requests carry no cookies or
// credentials, so a frame shared across origins can always be used.
type HTTP struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

func (h *HTTP) Load(ctx context.Context) (image.Image, error) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, unavailable(h.URL, err)
	}
	req.Header.Set("Accept", "image/png,image/*")
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, unavailable(h.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, unavailable(h.URL, fmt.Errorf("unexpected status %s", resp.Status))
	}
	img, err := imaging.Decode(io.LimitReader(resp.Body, maxFrameBytes))
	if err != nil {
		return nil, unavailable(h.URL, fmt.Errorf("decode: %w", err))
	}
	return img, nil
}

func (h *HTTP) String() string { return h.URL }

// Fixed serves an in-memory image. It is useful for previews that already
// hold the frame and for tests.
type Fixed struct {
	Image image.Image
	Name  string
}

func (f Fixed) Load(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(f.String(), err)
	}
	if f.Image == nil {
		return nil, unavailable(f.String(), errors.New("no image"))
	}
	return f.Image, nil
}

func (f Fixed) String() string {
	if f.Name == "" {
		return "memory"
	}
	return f.Name
}

func unavailable(from string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, from, err)
}

// Fit returns img scaled to a size×size square. Images that already have
// that size are returned unchanged.
func Fit(img image.Image, size int) image.Image {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size && b.Min == (image.Point{}) {
		return img
	}
	return imaging.Resize(img, size, size, imaging.Lanczos)
}
