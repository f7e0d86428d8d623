// Package notify sends optional desktop notifications after an export or a
// caption copy.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/twibbon/internal/logging"
	"github.com/example/twibbon/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventExport fires when the composite has been written to disk.
	EventExport Event = "export"
	// EventCopy fires when the caption or image lands on the clipboard.
	EventCopy Event = "copy"
)

// sendTimeout bounds a single delivery to the notification service.
const sendTimeout = 3 * time.Second

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Twibbon LDKS",
		Events: map[Event]EventPreference{
			EventExport: {Template: "Twibbon saved to %s"},
			EventCopy:   {Template: "Copied %s to clipboard"},
		},
	}
}

// LoadPreferences applies TWIBBON_NOTIFY_* environment overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("TWIBBON_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			p := prefs.Events[event]
			p.Template = v
			prefs.Events[event] = p
		}
	}
	apply("TWIBBON_NOTIFY_EXPORT_TEXT", EventExport)
	apply("TWIBBON_NOTIFY_COPY_TEXT", EventCopy)
	return prefs
}

// Sender delivers a formatted notification.
type Sender func(ctx context.Context, title, body string, opts platform.Options) error

// Notifier sends OS-level notifications for enabled events.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
	log     *slog.Logger
}

// New creates a Notifier using prefs. All events start disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{
		prefs:   cloned,
		enabled: make(map[Event]bool),
		send:    platform.Notify,
		log:     logging.WithComponent("notify"),
	}
}

// WithSender replaces the platform delivery, mainly for tests.
func (n *Notifier) WithSender(s Sender) *Notifier {
	n.send = s
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Enabled reports whether event is switched on.
func (n *Notifier) Enabled(event Event) bool {
	if n == nil || n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

// Export announces a written file and shows it as the notification icon.
func (n *Notifier) Export(path string) {
	if !n.Enabled(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy announces a clipboard write. detail names what was copied.
func (n *Notifier) Copy(detail string) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "caption"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	tmpl := strings.TrimSpace(n.prefs.Events[event].Template)
	if tmpl == "" {
		return
	}
	body := tmpl
	if strings.Contains(tmpl, "%") {
		body = fmt.Sprintf(tmpl, strings.TrimSpace(detail))
	}
	body = strings.TrimSpace(body)
	if body == "" || n.send == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := n.send(ctx, n.prefs.Title, body, opts); err != nil {
		n.log.Warn("notification failed", "event", string(event), "err", err)
	}
}
