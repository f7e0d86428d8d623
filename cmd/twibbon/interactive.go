package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd reads subcommands from stdin, one per line, so several
// exports can share one configuration load.
type interactiveCmd struct {
	r     *root
	fs    *flag.FlagSet
	execs commandList

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	cmd := &interactiveCmd{r: r, fs: fs, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	fs.Usage = usageFunc(cmd)
	fs.Var(&cmd.execs, "e", "execute a command and exit (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func (i *interactiveCmd) Program() string {
	return i.r.Program()
}

func (i *interactiveCmd) Run() error {
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(i.stdout, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command line. It reports true when the session
// should end.
func (i *interactiveCmd) executeLine(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	if line == "exit" || line == "quit" {
		return true, nil
	}
	args := strings.Fields(line)
	if args[0] == "interactive" {
		return false, fmt.Errorf("already in interactive mode")
	}
	child := i.r.subcommand("")
	child.fs = flag.NewFlagSet(i.r.program, flag.ContinueOnError)
	child.fs.SetOutput(io.Discard)
	child.fs.StringVar(&child.themeName, "theme", i.r.themeName, "color theme to use")
	child.fs.Usage = usageFunc(child)
	return false, child.Run(args)
}
