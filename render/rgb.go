package render

import (
	"fmt"
	"image/color"
)

// RGB stores explicit 8-bit color channels
type RGB struct {
	R, G, B uint8
}

// RGBA is an RGB tint with straight (non-premultiplied) alpha in [0,1]
type RGBA struct {
	RGB
	A float64
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Alpha attaches an alpha to c, clamped to [0,1]
func (c RGB) Alpha(a float64) RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return RGBA{RGB: c, A: a}
}

// Gray returns an achromatic color of level v
func Gray(v uint8) RGB {
	return RGB{v, v, v}
}

// Hex parses #rrggbb
func Hex(s string) (RGB, error) {
	var c RGB
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}

// MustHex is Hex for compile-time palettes
func MustHex(s string) RGB {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Color converts to image/color, straight alpha
func (c RGBA) Color() color.Color {
	a := clamp(c.A*255.0 + 0.5)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend mixes src over c at alpha
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Lerp interpolates a to b, t clamped to [0,1]
func Lerp(a, b RGB, t float64) RGB {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return RGB{
		R: clamp(float64(a.R) + (float64(b.R)-float64(a.R))*t + 0.5),
		G: clamp(float64(a.G) + (float64(b.G)-float64(a.G))*t + 0.5),
		B: clamp(float64(a.B) + (float64(b.B)-float64(a.B))*t + 0.5),
	}
}
