package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/twibbons
frame = https://example.com/frame.png

[export]
size = 2160
filename = "mine.png"
frame_timeout = 3s

[editor]
preview_size: 600
max_scale = 4
default_scale = 1.5

[notify]
export = true
copy = false

[log]
level = debug
format = json

[theme.my_custom_theme]
Background = #111111
Accent: #FF0000
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/twibbons" {
		t.Errorf("SaveDir = %q", cfg.SaveDir)
	}
	if cfg.Frame != "https://example.com/frame.png" {
		t.Errorf("Frame = %q", cfg.Frame)
	}
	if cfg.Export.Size != 2160 || cfg.Export.Filename != "mine.png" || cfg.Export.FrameTimeout != 3*time.Second {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if cfg.Editor.PreviewSize != 600 || cfg.Editor.MaxScale != 4 || cfg.Editor.DefaultScale != 1.5 || cfg.Editor.MinScale != 1 {
		t.Errorf("Editor = %+v", cfg.Editor)
	}
	if !cfg.Notify.Export || cfg.Notify.Copy {
		t.Errorf("Notify = %+v", cfg.Notify)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("theme my_custom_theme not loaded")
	}
	if th.Background.R != 0x11 || th.Accent.R != 0xFF || th.Accent.G != 0 {
		t.Errorf("theme colours = %+v / %+v", th.Background, th.Accent)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"bad size":    "[export]\nsize = big\n",
		"bad timeout": "[export]\nframe_timeout = soon\n",
		"bad bool":    "[notify]\nexport = maybe\n",
		"bad scale":   "[editor]\nmin_scale = x\n",
		"bad colour":  "[theme.x]\nBackground = #12\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(input)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	cfg.Export.Size = 0
	cfg.Export.Filename = "../escape.png"
	cfg.Editor.MinScale = 3
	cfg.Editor.MaxScale = 2
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"export.size", "export.filename", "scale range"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/twibbons
frame = /srv/frame.png

[export]
size = 1350
frame_timeout = 2500ms

[notify]
export = true
copy = true

[log]
file = /tmp/twibbon.log

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}
	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}
	if cfg.Theme != cfg2.Theme || cfg.SaveDir != cfg2.SaveDir || cfg.Frame != cfg2.Frame {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Export != cfg2.Export {
		t.Errorf("Export mismatch: %+v vs %+v", cfg.Export, cfg2.Export)
	}
	if cfg.Editor != cfg2.Editor {
		t.Errorf("Editor mismatch: %+v vs %+v", cfg.Editor, cfg2.Editor)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Log != cfg2.Log {
		t.Errorf("Log mismatch: %+v vs %+v", cfg.Log, cfg2.Log)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })

	l := NewLoader("dev", "")
	if p := l.GetConfigPath(); p != "" {
		t.Fatalf("unexpected config path %q", p)
	}
	cfg, err := l.Load()
	if err != nil || cfg.Export.Size != 1080 {
		t.Fatalf("Load defaults: %+v %v", cfg, err)
	}

	save, err := l.SavePath()
	if err != nil {
		t.Fatal(err)
	}
	if save != filepath.Join(home, ".config", "twibbon", "config.rc") {
		t.Fatalf("SavePath = %q", save)
	}
	cfg.Theme = "dark"
	if err := Save(cfg, save); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p := l.GetConfigPath(); p != save {
		t.Fatalf("GetConfigPath = %q, want %q", p, save)
	}

	local := filepath.Join(work, ".twibbonrc")
	if err := os.WriteFile(local, []byte("theme = telkom\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if p := l.GetConfigPath(); p != local {
		t.Fatalf("dev build should prefer %q, got %q", local, p)
	}
	if p := NewLoader("1.0.0", "").GetConfigPath(); p != save {
		t.Fatalf("release build should skip .twibbonrc, got %q", p)
	}
	loaded, err := l.Load()
	if err != nil || loaded.Theme != "telkom" {
		t.Fatalf("Load = %+v, %v", loaded, err)
	}
}
