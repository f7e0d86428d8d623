package assets

import (
	"bytes"
	_ "embed"
	"image"
	"image/png"
	"sync"
)

// FrameName is the file name of the bundled overlay.
const FrameName = "frame-ldks.png"

// Bundled frame overlay used when no other frame is configured.
//
//go:embed frame-ldks.png
var framePNG []byte

var (
	loadFrameOnce sync.Once
	loadFrameErr  error
	frameImage    image.Image
)

func loadFrame() {
	img, err := png.Decode(bytes.NewReader(framePNG))
	if err != nil {
		loadFrameErr = err
		return
	}
	frameImage = img
}

// FramePNG returns a copy of the encoded bundled frame.
func FramePNG() []byte {
	out := make([]byte, len(framePNG))
	copy(out, framePNG)
	return out
}

// Frame returns the decoded bundled frame. The image is shared and must not
// be modified.
func Frame() (image.Image, error) {
	loadFrameOnce.Do(loadFrame)
	if loadFrameErr != nil {
		return nil, loadFrameErr
	}
	return frameImage, nil
}
