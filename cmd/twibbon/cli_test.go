package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/twibbon/internal/caption"
	"github.com/example/twibbon/internal/config"
	"github.com/example/twibbon/internal/intake"
)

func testRoot() *root {
	return &root{program: "twibbon", config: config.New()}
}

// exportEnv keeps the bundled frame for export tests.
func exportEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TWIBBON_FRAME", "")
}

func writePhoto(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 80, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(3 * x), G: uint8(4 * y), B: 120, A: 255})
		}
	}
	path := filepath.Join(dir, "me.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExportWritesPNG(t *testing.T) {
	exportEnv(t)
	dir := t.TempDir()
	in := writePhoto(t, dir)
	out := filepath.Join(dir, "out", "twibbon.png")

	cmd, err := parseExportCmd([]string{"-output", out, "-size", "64", "-scale", "2", "-rotate", "30", in}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var stdout bytes.Buffer
	cmd.stdout = &stdout
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != out {
		t.Fatalf("printed %q, want %q", got, out)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestExportDataURL(t *testing.T) {
	exportEnv(t)
	dir := t.TempDir()
	in := writePhoto(t, dir)
	cmd, err := parseExportCmd([]string{"-output", filepath.Join(dir, "x.png"), "-size", "32", "-data-url", in}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var stdout bytes.Buffer
	cmd.stdout = &stdout
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "data:image/png;base64,") {
		t.Fatalf("output = %.40q", stdout.String())
	}
}

func TestExportRejectsPDF(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(pdf, []byte("%PDF-1.7\n1 0 obj\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd, err := parseExportCmd([]string{"-output", filepath.Join(dir, "x.png"), pdf}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdout = &bytes.Buffer{}
	err = cmd.Run()
	if !errors.Is(err, intake.ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
	if want := "failed to load photo"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "x.png")); !os.IsNotExist(statErr) {
		t.Fatalf("rejected photo produced output")
	}
}

func TestExportRequiresPhoto(t *testing.T) {
	_, err := parseExportCmd(nil, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if help := uerr.Error(); !strings.Contains(help, "Usage: twibbon export") || !strings.Contains(help, "-pos-x") {
		t.Fatalf("help text = %q", help)
	}
}

func TestExportRejectsTwoSources(t *testing.T) {
	_, err := parseExportCmd([]string{"-from-clipboard", "-file", "a.png"}, testRoot())
	if err == nil || !strings.Contains(err.Error(), "cannot be used together") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestExportSnapshotClamps(t *testing.T) {
	cmd, err := parseExportCmd([]string{"-scale", "9", "-rotate", "-500", "-pos-x", "2", "a.png"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	snap := cmd.snapshot()
	if snap.Scale != 5 || snap.Rotate != -180 || snap.Position.X != 1 || snap.Position.Y != 0.5 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestCaptionPrint(t *testing.T) {
	cmd, err := parseCaptionCmd(nil, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	cmd.stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(out.String()) != caption.Text {
		t.Fatalf("caption output differs")
	}
}

func TestCaptionCopy(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantOut string
	}{
		{"success", nil, "Berhasil Disalin!"},
		{"failure", errors.New("no display"), "Gagal Menyalin"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			cmd, err := parseCaptionCmd([]string{"-copy"}, testRoot())
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			cmd.writer = caption.WriterFunc(func(s string) error {
				got = s
				return tc.err
			})
			var out bytes.Buffer
			cmd.stdout = &out
			runErr := cmd.Run()
			if (runErr != nil) != (tc.err != nil) {
				t.Fatalf("Run error = %v", runErr)
			}
			if strings.TrimSpace(out.String()) != tc.wantOut {
				t.Fatalf("output = %q", out.String())
			}
			if got != caption.Text {
				t.Fatalf("clipboard received %q", got)
			}
		})
	}
}

func TestFrameSpecPrecedence(t *testing.T) {
	r := testRoot()
	r.config.Frame = "config.png"
	t.Setenv("TWIBBON_FRAME", "")
	if got := r.frameSpec(""); got != "config.png" {
		t.Fatalf("config frame = %q", got)
	}
	t.Setenv("TWIBBON_FRAME", "env.png")
	if got := r.frameSpec(""); got != "env.png" {
		t.Fatalf("env frame = %q", got)
	}
	if got := r.frameSpec("flag.png"); got != "flag.png" {
		t.Fatalf("flag frame = %q", got)
	}
}

func TestWindowTitle(t *testing.T) {
	oldVersion, oldCommit := version, commit
	t.Cleanup(func() { version, commit = oldVersion, oldCommit })
	version, commit = "1.2.0", ""

	got := windowTitle(titleOptions{File: "me.jpg", Frame: "custom.png"})
	want := "Twibbon LDKS SMK Telkom Sidoarjo 2025 - me.jpg - frame custom.png - v1.2.0"
	if got != want {
		t.Fatalf("windowTitle = %q, want %q", got, want)
	}
}

func TestInteractiveLines(t *testing.T) {
	cmd, err := parseInteractiveCmd(nil, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, line := range []string{"", "   ", "# note"} {
		if done, err := cmd.executeLine(line); done || err != nil {
			t.Fatalf("executeLine(%q) = %v, %v", line, done, err)
		}
	}
	if done, _ := cmd.executeLine("exit"); !done {
		t.Fatalf("exit did not end the session")
	}
	if _, err := cmd.executeLine("interactive"); err == nil {
		t.Fatalf("nested interactive accepted")
	}
}
