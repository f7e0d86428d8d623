//go:build !linux && !darwin && !windows

package platform

import "context"

// Notify is a no-op on unsupported platforms.
func Notify(ctx context.Context, title, body string, opts Options) error {
	return nil
}
