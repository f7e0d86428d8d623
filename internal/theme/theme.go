package theme

import (
	"image/color"
)

// Theme is the colour palette of the editor window.
type Theme struct {
	Name string

	// Window
	Background color.RGBA
	Foreground color.RGBA
	Muted      color.RGBA // hints and secondary text

	// Cards (viewport and caption panel)
	CardBackground color.RGBA
	CardBorder     color.RGBA
	Shadow         color.RGBA
	DropZone       color.RGBA // empty-state outline

	// Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA
	Accent                color.RGBA // primary action (download)
	AccentText            color.RGBA

	// Sliders
	SliderTrack color.RGBA
	SliderKnob  color.RGBA

	// Status
	Success color.RGBA
	Failure color.RGBA
}

// Default returns the built-in light palette. It is used when no theme is
// configured and as the base that theme files override.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{243, 244, 246, 255},
		Foreground:            color.RGBA{17, 24, 39, 255},
		Muted:                 color.RGBA{107, 114, 128, 255},
		CardBackground:        color.RGBA{255, 255, 255, 255},
		CardBorder:            color.RGBA{229, 231, 235, 255},
		Shadow:                color.RGBA{0, 0, 0, 255},
		DropZone:              color.RGBA{200, 16, 46, 255},
		ButtonBackground:      color.RGBA{229, 231, 235, 255},
		ButtonBackgroundHover: color.RGBA{209, 213, 219, 255},
		ButtonBackgroundPress: color.RGBA{156, 163, 175, 255},
		ButtonText:            color.RGBA{17, 24, 39, 255},
		ButtonBorder:          color.RGBA{156, 163, 175, 255},
		Accent:                color.RGBA{200, 16, 46, 255},
		AccentText:            color.RGBA{255, 255, 255, 255},
		SliderTrack:           color.RGBA{209, 213, 219, 255},
		SliderKnob:            color.RGBA{200, 16, 46, 255},
		Success:               color.RGBA{22, 163, 74, 255},
		Failure:               color.RGBA{220, 38, 38, 255},
	}
}
