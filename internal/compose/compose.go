// Package compose flattens the photo and the frame into the square PNG that
// users share.
package compose

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/example/twibbon/internal/frame"
	"github.com/example/twibbon/internal/intake"
	"github.com/example/twibbon/internal/logging"
	"github.com/example/twibbon/internal/transform"
)

const (
	// DefaultSize is the side of the exported square in pixels.
	DefaultSize = 1080
	// DefaultFilename is the name of the exported file.
	DefaultFilename = "TWIBBON-LDKS-2025.png"
	// MaxSize caps the export canvas.
	MaxSize = 8192
)

// ErrSize reports an export size outside 1..MaxSize.
var ErrSize = errors.New("invalid export size")

// Exporter renders and saves composites. The zero value renders a
// DefaultSize square with the bundled frame into the working directory.
type Exporter struct {
	Frame        frame.Source
	Size         int
	SaveDir      string
	Filename     string
	FrameTimeout time.Duration
	Logger       *slog.Logger
}

// Result describes a finished export.
type Result struct {
	Path  string
	PNG   []byte
	Image *image.NRGBA
}

func (e *Exporter) size() int {
	if e.Size == 0 {
		return DefaultSize
	}
	return e.Size
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logging.WithComponent("compose")
}

func (e *Exporter) source() frame.Source {
	if e.Frame != nil {
		return e.Frame
	}
	return frame.Embedded{}
}

// Path is where Export writes the file.
func (e *Exporter) Path() string {
	name := e.Filename
	if name == "" {
		name = DefaultFilename
	}
	return filepath.Join(e.SaveDir, name)
}

// Render draws photo at its original resolution onto an opaque white
// square, applies snap, and puts the frame on top. The frame load is
// bounded by FrameTimeout; a failure wraps frame.ErrUnavailable.
func (e *Exporter) Render(ctx context.Context, photo *intake.Photo, snap transform.Snapshot) (*image.NRGBA, error) {
	size := e.size()
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}
	if photo == nil || photo.Image == nil {
		return nil, errors.New("render: no photo")
	}

	canvas := imaging.New(size, size, color.White)
	DrawPhoto(canvas, photo.Image, snap)

	timeout := e.FrameTimeout
	if timeout <= 0 {
		timeout = frame.DefaultTimeout
	}
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	src := e.source()
	overlay, err := src.Load(fctx)
	if err != nil {
		if !errors.Is(err, frame.ErrUnavailable) {
			err = fmt.Errorf("%w: %s: %w", frame.ErrUnavailable, src, err)
		}
		return nil, err
	}
	return imaging.Overlay(canvas, frame.Fit(overlay, size), image.Point{}, 1), nil
}

// DrawPhoto draws src into the square dst according to snap. dst must have
// square bounds anchored at the origin.
func DrawPhoto(dst draw.Image, src image.Image, snap transform.Snapshot) {
	size := dst.Bounds().Dx()
	m := transform.Matrix(size, src.Bounds(), snap)
	xdraw.CatmullRom.Transform(dst, m, src, src.Bounds(), xdraw.Over, nil)
}

// Encode writes img as PNG at best compression.
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL returns the PNG bytes as a data: URL.
func DataURL(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// Export renders, encodes and writes the composite. Without a photo it does
// nothing and returns (nil, nil).
func (e *Exporter) Export(ctx context.Context, photo *intake.Photo, snap transform.Snapshot) (*Result, error) {
	if photo == nil || photo.Image == nil {
		return nil, nil
	}
	start := time.Now()
	img, err := e.Render(ctx, photo, snap)
	if err != nil {
		return nil, err
	}
	data, err := Encode(img)
	if err != nil {
		return nil, err
	}
	path := e.Path()
	if err := writeFileAtomic(path, data); err != nil {
		return nil, fmt.Errorf("save %s: %w", path, err)
	}
	e.logger().Info("exported twibbon",
		"path", path,
		"size", e.size(),
		"frame", e.source().String(),
		"bytes", len(data),
		"elapsed", time.Since(start))
	return &Result{Path: path, PNG: data, Image: img}, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".twibbon-*.png")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
