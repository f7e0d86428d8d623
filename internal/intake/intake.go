// Package intake turns a user's selection into a decoded photo. Only the
// first candidate is used and only image content is accepted.
package intake

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNoFiles means the selection was empty.
	ErrNoFiles = errors.New("no file selected")
	// ErrNotImage means the selected content is not an image.
	ErrNotImage = errors.New("not an image")
	// ErrUndecodable means the content claims to be an image but cannot be decoded.
	ErrUndecodable = errors.New("image cannot be decoded")
)

// sniffLen is how many bytes content detection looks at.
const sniffLen = 512

// Photo is the single image being edited.
type Photo struct {
	Name  string
	MIME  string
	Image image.Image
}

// Size returns the pixel dimensions of the photo.
func (p *Photo) Size() image.Point {
	if p == nil || p.Image == nil {
		return image.Point{}
	}
	return p.Image.Bounds().Size()
}

// Accept opens the first of paths. Any further paths are ignored.
func Accept(paths []string) (*Photo, error) {
	for _, p := range paths {
		if strings.TrimSpace(p) != "" {
			return Open(p)
		}
	}
	return nil, ErrNoFiles
}

// Open reads and decodes the file at path.
func Open(path string) (*Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()
	return Decode(filepath.Base(path), f)
}

// Decode detects the content type of r and decodes it when it is an image.
// EXIF orientation is applied so the photo appears upright.
func Decode(name string, r io.Reader) (*Photo, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(head) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNotImage, name)
	}
	typ := DetectType(name, head)
	if !IsImage(typ) {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotImage, name, typ)
	}
	img, err := imaging.Decode(br, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUndecodable, name, err)
	}
	return &Photo{Name: name, MIME: typ, Image: img}, nil
}

// DetectType sniffs head and falls back to the file extension when the
// content alone is inconclusive.
func DetectType(name string, head []byte) string {
	typ := http.DetectContentType(head)
	if IsImage(typ) {
		return typ
	}
	if strings.HasPrefix(typ, "application/octet-stream") || strings.HasPrefix(typ, "text/plain") {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
			return byExt
		}
	}
	return typ
}

// IsImage reports whether a MIME type is in the image/* family.
func IsImage(typ string) bool {
	mt, _, err := mime.ParseMediaType(typ)
	if err != nil {
		mt = typ
	}
	return strings.HasPrefix(strings.ToLower(mt), "image/")
}

// ImageReader supplies an image pasted from the clipboard.
type ImageReader interface {
	ReadImage() (image.Image, error)
}

// FromClipboard takes the image currently on the clipboard.
func FromClipboard(r ImageReader) (*Photo, error) {
	img, err := r.ReadImage()
	if err != nil {
		return nil, fmt.Errorf("paste photo: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("paste photo: %w", ErrNoFiles)
	}
	return &Photo{Name: "clipboard.png", MIME: "image/png", Image: img}, nil
}
