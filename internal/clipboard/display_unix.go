//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import "os"

func needsDisplay() bool { return true }

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}
