package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/twibbon/internal/theme"
)

type themesCmd struct {
	*root
	fs *flag.FlagSet
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	fs := flag.NewFlagSet("themes", flag.ExitOnError)
	cmd := &themesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (t *themesCmd) FlagSet() *flag.FlagSet {
	return t.fs
}

// Run lists the available themes, or prints one theme's palette.
func (t *themesCmd) Run() error {
	if name := t.fs.Arg(0); name != "" {
		th, ok := t.cfg().Themes[name]
		if !ok {
			var err error
			if th, err = theme.NewLoader().Load(name); err != nil {
				return err
			}
		}
		for _, line := range th.Fields() {
			fmt.Fprintln(os.Stdout, line)
		}
		return nil
	}
	active := ""
	if t.activeTheme != nil {
		active = t.activeTheme.Name
	}
	fmt.Fprintln(os.Stdout, "available themes (* marks the active theme):")
	for _, name := range themeNames(t.cfg()) {
		marker := " "
		if strings.EqualFold(name, active) {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %s\n", marker, name)
	}
	return nil
}
