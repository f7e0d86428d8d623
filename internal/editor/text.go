package editor

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var (
	regularFont *opentype.Font
	boldFont    *opentype.Font

	titleFace    font.Face
	subtitleFace font.Face
	bodyFace     font.Face
	labelFace    font.Face
	buttonFace   font.Face
	headingFace  font.Face
	dropFace     font.Face
)

func init() {
	var err error
	regularFont, err = opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	boldFont, err = opentype.Parse(gobold.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	titleFace = newFace(boldFont, 22)
	subtitleFace = newFace(regularFont, 14)
	bodyFace = newFace(regularFont, 14)
	labelFace = newFace(boldFont, 13)
	buttonFace = newFace(boldFont, 15)
	headingFace = newFace(boldFont, 18)
	dropFace = newFace(boldFont, 17)
}

func newFace(f *opentype.Font, size float64) font.Face {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	return face
}

// printable drops runes the Go fonts have no glyph for, such as emoji, so
// they do not render as boxes.
func printable(s string) string {
	var buf sfnt.Buffer
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if idx, err := regularFont.GlyphIndex(&buf, r); err != nil || idx == 0 {
			return -1
		}
		return r
	}, s)
}

func drawString(dst draw.Image, face font.Face, dot fixed.Point26_6, s string, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face, Dot: dot}
	d.DrawString(printable(s))
}

func lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

// wrapText splits s into lines no wider than width. Existing newlines are
// kept; words longer than a line are broken between runes.
func wrapText(face font.Face, s string, width int) []string {
	d := &font.Drawer{Face: face}
	fits := func(t string) bool { return d.MeasureString(t).Ceil() <= width }

	var lines []string
	for _, para := range strings.Split(printable(s), "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range strings.Fields(para) {
			cand := word
			if line != "" {
				cand = line + " " + word
			}
			if fits(cand) {
				line = cand
				continue
			}
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			for !fits(word) {
				cut := 1
				for cut < len([]rune(word)) && fits(string([]rune(word)[:cut+1])) {
					cut++
				}
				lines = append(lines, string([]rune(word)[:cut]))
				word = string([]rune(word)[cut:])
			}
			line = word
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
