package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/twibbon/internal/caption"
	"github.com/example/twibbon/internal/clipboard"
)

type captionCmd struct {
	*root
	fs     *flag.FlagSet
	copy   bool
	writer caption.Writer
	stdout io.Writer
}

func (c *captionCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseCaptionCmd(args []string, r *root) (*captionCmd, error) {
	fs := flag.NewFlagSet("caption", flag.ExitOnError)
	cmd := &captionCmd{root: r, fs: fs, writer: clipboard.System{}, stdout: os.Stdout}
	fs.Usage = usageFunc(cmd)
	fs.BoolVar(&cmd.copy, "copy", false, "copy the caption to the clipboard instead of printing it")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *captionCmd) Run() error {
	if !c.copy {
		_, err := fmt.Fprintln(c.stdout, caption.Text)
		return err
	}
	panel := caption.NewPanel(c.writer)
	err := panel.Copy()
	fmt.Fprintln(c.stdout, panel.Status().Label())
	if err != nil {
		return err
	}
	c.notifyCopy("caption")
	return nil
}
