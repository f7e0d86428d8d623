//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

func needsDisplay() bool { return false }

func hasDisplay() bool { return true }
