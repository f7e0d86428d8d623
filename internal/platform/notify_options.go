package platform

import "time"

// DefaultAppName identifies the sender in notification centres.
const DefaultAppName = "Twibbon"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName overrides DefaultAppName.
	AppName string
	// IconPath, when non-empty, points to an image file the notification
	// centre should show next to the message.
	IconPath string
	// Expire is how long the notification stays up where the platform
	// lets the sender choose. Zero selects five seconds.
	Expire time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) expireMillis() int32 {
	if o.Expire <= 0 {
		return 5000
	}
	return int32(o.Expire / time.Millisecond)
}
