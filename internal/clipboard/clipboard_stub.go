//go:build !windows && !(linux || freebsd || openbsd || netbsd || dragonfly) && !(darwin && cgo)

package clipboard

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("clipboard is not supported in this build")

func WriteImage(image.Image) error { return errUnsupported }

func ReadImage() (image.Image, error) { return nil, errUnsupported }

func WriteText(string) error { return errUnsupported }
