package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/twibbon/internal/compose"
	"github.com/example/twibbon/internal/config"
	"github.com/example/twibbon/internal/frame"
	"github.com/example/twibbon/internal/logging"
	"github.com/example/twibbon/internal/notify"
	"github.com/example/twibbon/internal/theme"
	"github.com/example/twibbon/internal/transform"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	logLevel     string
	activeTheme  *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:      program,
		notifier:     r.notifier,
		config:       r.config,
		exportAlerts: r.exportAlerts,
		copyAlerts:   r.copyAlerts,
		themeName:    r.themeName,
		logLevel:     r.logLevel,
		activeTheme:  r.activeTheme,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("twibbon", flag.ExitOnError),
		program:  "twibbon",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after saving a twibbon")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.StringVar(&r.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, telkom or a file)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.setup()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "export":
		cmd, err = parseExportCmd(subArgs, r)
	case "caption":
		cmd, err = parseCaptionCmd(subArgs, r)
	case "themes":
		cmd, err = parseThemesCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// setup applies the global flags: logging, notifications and the theme.
func (r *root) setup() {
	logOpts := logging.Options{Level: r.logLevel}.Merge(logging.FromEnv()).Merge(logging.Options{
		Level:  r.config.Log.Level,
		Format: r.config.Log.Format,
		File:   r.config.Log.File,
	})
	logging.Init(logOpts)

	if r.notifier != nil {
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.loadTheme()
}

func (r *root) loadTheme() *theme.Theme {
	themeName := r.themeName
	if themeName == "" {
		themeName = os.Getenv("TWIBBON_THEME")
	}
	if themeName == "" && r.config != nil {
		themeName = r.config.Theme
	}
	if r.config != nil {
		if t, ok := r.config.Themes[themeName]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(themeName)
	if err != nil {
		if themeName != "" && themeName != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", themeName, err)
		}
		return theme.Default()
	}
	return t
}

// frameSpec resolves the frame with flag > env > config precedence.
func (r *root) frameSpec(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("TWIBBON_FRAME")); v != "" {
		return v
	}
	if r.config != nil {
		return r.config.Frame
	}
	return ""
}

func (r *root) cfg() *config.Config {
	if r.config == nil {
		r.config = config.New()
	}
	return r.config
}

// exporter builds the compositor from the configuration.
func (r *root) exporter(frameFlag string) *compose.Exporter {
	cfg := r.cfg()
	return &compose.Exporter{
		Frame:        frame.Resolve(r.frameSpec(frameFlag)),
		Size:         cfg.Export.Size,
		SaveDir:      cfg.SaveDir,
		Filename:     cfg.Export.Filename,
		FrameTimeout: cfg.Export.FrameTimeout,
		Logger:       logging.WithComponent("compose"),
	}
}

func (r *root) limits() transform.Limits {
	l := transform.DefaultLimits()
	cfg := r.cfg()
	if cfg.Editor.MinScale > 0 {
		l.MinScale = cfg.Editor.MinScale
	}
	if cfg.Editor.MaxScale > 0 {
		l.MaxScale = cfg.Editor.MaxScale
	}
	return l
}

func main() {
	r := newRoot()
	err := r.Run(os.Args[1:])
	_ = logging.Close()
	if err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func (r *root) notifyExport(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
