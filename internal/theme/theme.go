package theme

import (
	"fmt"
	"image/color"
	"strings"
)

// Theme is the colour palette of the selection overlay.
type Theme struct {
	Name string

	Border       color.RGBA // selection outline
	Mask         color.RGBA // dims everything outside the selection
	Anchor       color.RGBA
	AnchorBorder color.RGBA
	Crosshair    color.RGBA

	InfoBackground color.RGBA
	InfoText       color.RGBA
}

// Default returns the built-in palette used when no theme is configured.
func Default() *Theme {
	return &Theme{
		Name:           "Default",
		Border:         color.RGBA{0, 150, 255, 255},
		Mask:           color.RGBA{0, 0, 0, 100},
		Anchor:         color.RGBA{0, 150, 255, 255},
		AnchorBorder:   color.RGBA{255, 255, 255, 255},
		Crosshair:      color.RGBA{0, 150, 255, 160},
		InfoBackground: color.RGBA{0, 0, 0, 200},
		InfoText:       color.RGBA{255, 255, 255, 255},
	}
}

// Keys lists the colour keys in the order they are written out.
var Keys = []string{"Border", "Mask", "Anchor", "AnchorBorder", "Crosshair", "InfoBackground", "InfoText"}

func (t *Theme) field(key string) *color.RGBA {
	switch strings.ToLower(key) {
	case "border":
		return &t.Border
	case "mask":
		return &t.Mask
	case "anchor":
		return &t.Anchor
	case "anchorborder":
		return &t.AnchorBorder
	case "crosshair":
		return &t.Crosshair
	case "infobackground":
		return &t.InfoBackground
	case "infotext":
		return &t.InfoText
	}
	return nil
}

// Set assigns a colour by key. Keys are the field names, case insensitive.
func (t *Theme) Set(key, value string) error {
	f := t.field(key)
	if f == nil {
		return fmt.Errorf("unknown theme key %q", key)
	}
	c, err := ParseColor(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	*f = c
	return nil
}

// Color returns the colour stored under key.
func (t *Theme) Color(key string) (color.RGBA, bool) {
	f := t.field(key)
	if f == nil {
		return color.RGBA{}, false
	}
	return *f, true
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
