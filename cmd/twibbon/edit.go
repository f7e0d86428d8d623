package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/example/twibbon/internal/clipboard"
	"github.com/example/twibbon/internal/editor"
	"github.com/example/twibbon/internal/intake"
	"github.com/example/twibbon/internal/logging"
)

type editCmd struct {
	*root
	fs            *flag.FlagSet
	file          string
	frame         string
	viewport      int
	fromClipboard bool
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	cmd := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "photo to open at start")
	fs.StringVar(&cmd.frame, "frame", "", "frame overlay: file path or http(s) URL (default: bundled frame)")
	fs.IntVar(&cmd.viewport, "viewport", 0, "side of the preview square in pixels (default from config)")
	fs.BoolVar(&cmd.fromClipboard, "from-clipboard", false, "start with the image on the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 1 && cmd.file == "" {
		cmd.file = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.file != "" && cmd.fromClipboard {
		return nil, fmt.Errorf("-file and -from-clipboard cannot be used together")
	}
	return cmd, nil
}

func (e *editCmd) Run() error {
	cfg := e.cfg()
	var photo *intake.Photo
	var err error
	switch {
	case e.file != "":
		photo, err = intake.Open(e.file)
	case e.fromClipboard:
		photo, err = intake.FromClipboard(clipboard.System{})
	}
	if err != nil {
		return fmt.Errorf("failed to load photo: %w", err)
	}

	viewport := e.viewport
	if viewport <= 0 {
		viewport = cfg.Editor.PreviewSize
	}
	exp := e.exporter(e.frame)
	title := windowTitle(titleOptions{File: filepath.Base(e.file), Frame: e.frame})
	if e.file == "" {
		title = windowTitle(titleOptions{Frame: e.frame})
	}
	return editor.Run(editor.Options{
		Title:        title,
		Theme:        e.activeTheme,
		Viewport:     viewport,
		Limits:       e.limits(),
		DefaultScale: cfg.Editor.DefaultScale,
		Exporter:     exp,
		Frame:        exp.Frame,
		FrameTimeout: cfg.Export.FrameTimeout,
		Clipboard:    clipboard.System{},
		Notifier:     e.notifier,
		Photo:        photo,
		Logger:       logging.WithComponent("editor"),
	})
}
