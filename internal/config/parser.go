package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/example/twibbon/internal/theme"
)

// Parse reads configuration from an io.Reader. Keys are "key = value" or
// "key: value"; unknown keys and sections are ignored.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitKV(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = current.Set(key, value)
		case section == "":
			setRootField(cfg, key, value)
		case section == "export":
			err = setExportField(&cfg.Export, key, value)
		case section == "editor":
			err = setEditorField(&cfg.Editor, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "log":
			setLogField(&cfg.Log, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("line %d: root section: %w", lineNo, err)
			}
			return nil, fmt.Errorf("line %d: section [%s]: %w", lineNo, section, err)
		}
	}

	return cfg, scanner.Err()
}

func splitKV(line string) (string, string, bool) {
	sep := strings.IndexAny(line, "=:")
	if sep < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:sep])
	value := strings.TrimSpace(line[sep+1:])
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, key != ""
}

func setRootField(cfg *Config, key, value string) {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "frame":
		cfg.Frame = value
	}
}

func setExportField(e *Export, key, value string) error {
	switch strings.ToLower(key) {
	case "size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for key %s: %w", key, err)
		}
		e.Size = n
	case "filename":
		e.Filename = value
	case "frame_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for key %s: %w", key, err)
		}
		e.FrameTimeout = d
	}
	return nil
}

func setEditorField(e *Editor, key, value string) error {
	k := strings.ToLower(key)
	if k == "preview_size" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for key %s: %w", key, err)
		}
		e.PreviewSize = n
		return nil
	}
	var dst *float64
	switch k {
	case "min_scale":
		dst = &e.MinScale
	case "max_scale":
		dst = &e.MaxScale
	case "default_scale":
		dst = &e.DefaultScale
	default:
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	*dst = f
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setLogField(l *Log, key, value string) {
	switch strings.ToLower(key) {
	case "level":
		l.Level = value
	case "format":
		l.Format = value
	case "file":
		l.File = value
	}
}
