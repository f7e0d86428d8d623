package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/example/twibbon/internal/theme"
)

// Export holds the [export] section.
type Export struct {
	Size         int
	Filename     string
	FrameTimeout time.Duration
}

// Editor holds the [editor] section.
type Editor struct {
	PreviewSize  int
	MinScale     float64
	MaxScale     float64
	DefaultScale float64
}

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Log holds the [log] section. Empty values defer to the environment.
type Log struct {
	Level  string
	Format string
	File   string
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Frame   string
	Export  Export
	Editor  Editor
	Notify  Notify
	Log     Log
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Export: Export{
			Size:         1080,
			Filename:     "TWIBBON-LDKS-2025.png",
			FrameTimeout: 10 * time.Second,
		},
		Editor: Editor{
			PreviewSize:  540,
			MinScale:     1,
			MaxScale:     5,
			DefaultScale: 1.2,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// Validate reports values that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Export.Size < 16 || c.Export.Size > 8192 {
		errs = append(errs, fmt.Errorf("export.size %d out of range 16..8192", c.Export.Size))
	}
	if strings.TrimSpace(c.Export.Filename) == "" || strings.ContainsAny(c.Export.Filename, `/\`) {
		errs = append(errs, fmt.Errorf("export.filename %q must be a plain file name", c.Export.Filename))
	}
	if c.Export.FrameTimeout <= 0 {
		errs = append(errs, fmt.Errorf("export.frame_timeout must be positive"))
	}
	if c.Editor.PreviewSize < 64 {
		errs = append(errs, fmt.Errorf("editor.preview_size %d is too small", c.Editor.PreviewSize))
	}
	if c.Editor.MinScale <= 0 || c.Editor.MaxScale < c.Editor.MinScale {
		errs = append(errs, fmt.Errorf("editor scale range %g..%g is invalid", c.Editor.MinScale, c.Editor.MaxScale))
	}
	return errors.Join(errs...)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Frame != "" {
		fmt.Fprintf(&sb, "frame = %s\n", c.Frame)
	}
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "size = %d\n", c.Export.Size)
	fmt.Fprintf(&sb, "filename = %s\n", c.Export.Filename)
	fmt.Fprintf(&sb, "frame_timeout = %s\n", c.Export.FrameTimeout)
	sb.WriteString("\n")

	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "preview_size = %d\n", c.Editor.PreviewSize)
	fmt.Fprintf(&sb, "min_scale = %g\n", c.Editor.MinScale)
	fmt.Fprintf(&sb, "max_scale = %g\n", c.Editor.MaxScale)
	fmt.Fprintf(&sb, "default_scale = %g\n", c.Editor.DefaultScale)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	if c.Log != (Log{}) {
		sb.WriteString("[log]\n")
		if c.Log.Level != "" {
			fmt.Fprintf(&sb, "level = %s\n", c.Log.Level)
		}
		if c.Log.Format != "" {
			fmt.Fprintf(&sb, "format = %s\n", c.Log.Format)
		}
		if c.Log.File != "" {
			fmt.Fprintf(&sb, "file = %s\n", c.Log.File)
		}
		sb.WriteString("\n")
	}

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		for _, line := range c.Themes[name].Fields() {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
