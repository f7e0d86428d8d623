package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/example/twibbon/internal/config"
	"github.com/example/twibbon/internal/theme"
)

type configCmd struct {
	*root
	fs     *flag.FlagSet
	output string
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "file written by save (default: the config in use or ~/.config/twibbon/config.rc)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	subCmd := args[0]
	switch subCmd {
	case "print":
		return c.runPrint()
	case "save":
		return c.runSave()
	case "check":
		return c.runCheck()
	default:
		return fmt.Errorf("unknown config command: %s", subCmd)
	}
}

func (c *configCmd) runPrint() error {
	fmt.Print(c.cfg().String())
	return nil
}

func (c *configCmd) runCheck() error {
	if err := c.cfg().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	fmt.Fprintln(os.Stdout, "configuration ok")
	return nil
}

func (c *configCmd) runSave() error {
	path := c.output
	if path == "" {
		var err error
		path, err = config.NewLoader(version, configPathOverride).SavePath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
	}
	if err := config.Save(c.cfg(), path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}

// themeNames merges the embedded themes with those defined in cfg.
func themeNames(cfg *config.Config) []string {
	seen := map[string]bool{}
	var names []string
	for _, n := range theme.Names() {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for n := range cfg.Themes {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
