package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/twibbon/internal/clipboard"
	"github.com/example/twibbon/internal/compose"
	"github.com/example/twibbon/internal/intake"
	"github.com/example/twibbon/internal/transform"
)

// writeImageFn is replaced in tests.
var writeImageFn = clipboard.WriteImage

type exportCmd struct {
	*root
	fs *flag.FlagSet

	file          string
	fromClipboard bool
	frame         string
	output        string
	size          int
	scale         float64
	rotate        float64
	posX, posY    float64
	toClipboard   bool
	dataURL       bool

	stdout io.Writer
}

func (e *exportCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cmd := &exportCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(cmd)
	defaultScale := transform.DefaultScale
	if r != nil && r.config != nil && r.config.Editor.DefaultScale > 0 {
		defaultScale = r.config.Editor.DefaultScale
	}
	fs.StringVar(&cmd.file, "file", "", "photo to place behind the frame")
	fs.BoolVar(&cmd.fromClipboard, "from-clipboard", false, "read the photo from the clipboard")
	fs.StringVar(&cmd.frame, "frame", "", "frame overlay: file path or http(s) URL (default: bundled frame)")
	fs.StringVar(&cmd.output, "output", "", "output file (default: save_dir/filename from config)")
	fs.IntVar(&cmd.size, "size", 0, "side of the exported square in pixels (default from config)")
	fs.Float64Var(&cmd.scale, "scale", defaultScale, "zoom factor")
	fs.Float64Var(&cmd.rotate, "rotate", 0, "rotation in degrees")
	fs.Float64Var(&cmd.posX, "pos-x", transform.Center.X, "horizontal focus point, 0..1 across the photo")
	fs.Float64Var(&cmd.posY, "pos-y", transform.Center.Y, "vertical focus point, 0..1 down the photo")
	fs.BoolVar(&cmd.toClipboard, "to-clipboard", false, "also copy the PNG to the clipboard")
	fs.BoolVar(&cmd.dataURL, "data-url", false, "print the PNG as a data: URL instead of the path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 1 && cmd.file == "" {
		cmd.file = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.file == "" && !cmd.fromClipboard {
		return nil, &UsageError{of: cmd}
	}
	if cmd.file != "" && cmd.fromClipboard {
		return nil, fmt.Errorf("-file and -from-clipboard cannot be used together")
	}
	return cmd, nil
}

func (e *exportCmd) snapshot() transform.Snapshot {
	st := transform.New(e.limits())
	st.SetScale(e.scale)
	st.SetRotate(e.rotate)
	st.SetPosition(transform.Point{X: e.posX, Y: e.posY})
	return st.Snapshot()
}

func (e *exportCmd) Run() error {
	var photo *intake.Photo
	var err error
	if e.fromClipboard {
		photo, err = intake.FromClipboard(clipboard.System{})
	} else {
		photo, err = intake.Open(e.file)
	}
	if err != nil {
		return fmt.Errorf("failed to load photo: %w", err)
	}

	exp := e.exporter(e.frame)
	if e.size > 0 {
		exp.Size = e.size
	}
	if e.output != "" {
		exp.SaveDir = filepath.Dir(e.output)
		exp.Filename = filepath.Base(e.output)
	}

	res, err := exp.Export(context.Background(), photo, e.snapshot())
	if err != nil {
		return fmt.Errorf("failed to export twibbon: %w", err)
	}
	e.notifyExport(res.Path)

	if e.toClipboard {
		if err := writeImageFn(res.Image); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to copy image to clipboard: %v\n", err)
		} else {
			e.notifyCopy("twibbon image")
		}
	}

	out := e.stdout
	if out == nil {
		out = os.Stdout
	}
	if e.dataURL {
		_, err = fmt.Fprintln(out, compose.DataURL(res.PNG))
		return err
	}
	_, err = fmt.Fprintln(out, res.Path)
	return err
}
