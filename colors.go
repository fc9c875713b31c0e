package main

// color utilities shared by all renderers
//
// colors accepted from requests:
//   - hex: "#1f77b4", "#abc", "#1f77b480" (with alpha)
//   - names: "black", "white", "steelblue", ...
//   - matplotlib single letters: "b", "g", "r", "c", "m", "y", "k", "w"
//
// if a request omits colors, the active theme's palette is cycled.

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
	"yellow":    "#ffff00",
	"cyan":      "#00bfbf",
	"magenta":   "#bf00bf",
	"gray":      "#808080",
	"grey":      "#808080",
	"orange":    "#ffa500",
	"purple":    "#800080",
	"brown":     "#a52a2a",
	"pink":      "#ffc0cb",
	"olive":     "#808000",
	"navy":      "#000080",
	"teal":      "#008080",
	"gold":      "#ffd700",
	"silver":    "#c0c0c0",
	"steelblue": "#4682b4",
	"b":         "#0000ff",
	"g":         "#008000",
	"r":         "#ff0000",
	"c":         "#00bfbf",
	"m":         "#bf00bf",
	"y":         "#bfbf00",
	"k":         "#000000",
	"w":         "#ffffff",
}

func parseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, fmt.Errorf("empty color")
	}
	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("unknown color %q", s)
	}
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	var r, g, b uint8
	a := uint8(0xff)
	switch len(h) {
	case 6:
		if _, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("invalid hex color %q", s)
		}
	case 8:
		if _, err := fmt.Sscanf(h, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return nil, fmt.Errorf("invalid hex color %q", s)
		}
	default:
		return nil, fmt.Errorf("invalid hex color %q", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// mustHex is for package-internal palette literals only.
func mustHex(s string) color.Color {
	c, err := parseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func withAlpha(c color.Color, alpha float64) color.Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	r, g, b, _ := c.RGBA()
	return color.NRGBA64{
		R: uint16(r),
		G: uint16(g),
		B: uint16(b),
		A: uint16(alpha * 0xffff),
	}
}

func drawingColor(c color.Color) drawing.Color {
	r, g, b, a := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// seriesColors returns one color per series: the caller's colors first
// (already validated), the theme palette cycled for the rest.
func seriesColors(userColors []string, th Theme, count int) []color.Color {
	out := make([]color.Color, count)
	for i := 0; i < count; i++ {
		if i < len(userColors) {
			if c, err := parseColor(userColors[i]); err == nil {
				out[i] = c
				continue
			}
		}
		out[i] = th.Palette[i%len(th.Palette)]
	}
	return out
}
