package main

import (
	"fmt"
	"strings"

	"github.com/example/twibbon/internal/editor"
)

type titleOptions struct {
	File   string
	Frame  string
	Extras []string
}

func windowTitle(opts titleOptions) string {
	parts := []string{editor.WindowTitle}

	file := strings.TrimSpace(opts.File)
	if file != "" {
		parts = append(parts, file)
	}

	extras := make([]string, 0, len(opts.Extras)+3)

	if fr := strings.TrimSpace(opts.Frame); fr != "" {
		extras = append(extras, fmt.Sprintf("frame %s", fr))
	}

	if strings.TrimSpace(version) != "" {
		extras = append(extras, fmt.Sprintf("v%s", strings.TrimSpace(version)))
	}

	if strings.TrimSpace(commit) != "" {
		extras = append(extras, fmt.Sprintf("commit %s", strings.TrimSpace(commit)))
	}

	if len(opts.Extras) > 0 {
		extras = append(extras, opts.Extras...)
	}

	if len(extras) > 0 {
		parts = append(parts, extras...)
	}

	return strings.Join(parts, " - ")
}
