// Package clipboard moves caption text and PNG images to and from the
// system clipboard. With cgo it uses golang.design/x/clipboard; pure-Go
// Unix builds talk to the X server directly.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

var (
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	// ErrEmpty reports that the clipboard holds nothing in the requested format.
	ErrEmpty = errors.New("clipboard is empty")
)

// System is the process clipboard. Its zero value is ready to use.
type System struct{}

// WriteText implements the caption writer used by the copy button.
func (System) WriteText(text string) error { return WriteText(text) }

// ReadImage implements the paste source used by photo intake.
func (System) ReadImage() (image.Image, error) { return ReadImage() }

// WriteImage implements the export sink used by "copy to clipboard".
func (System) WriteImage(img image.Image) error { return WriteImage(img) }

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode clipboard image: %w", err)
	}
	return buf.Bytes(), nil
}

func decodePNG(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no image data", ErrEmpty)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard image: %w", err)
	}
	return img, nil
}
