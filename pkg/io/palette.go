package io

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
)

// Palette defaults: random hue at fixed saturation and value.
const (
	DefaultSaturation = 0.8
	DefaultValue      = 0.5
)

// Palette assigns colors to words.
type Palette struct {
	rng        *rand.Rand
	saturation float64
	value      float64
	fixed      []colorful.Color
}

// PaletteOption configures a Palette.
type PaletteOption func(*Palette)

// WithSaturationValue overrides the fixed HSV saturation and value.
func WithSaturationValue(s, v float64) PaletteOption {
	return func(p *Palette) { p.saturation, p.value = s, v }
}

// WithColors cycles through the given colors instead of random hues.
func WithColors(colors ...colorful.Color) PaletteOption {
	return func(p *Palette) { p.fixed = colors }
}

// NewPalette returns a palette seeded for reproducible colors.
func NewPalette(seed uint64, opts ...PaletteOption) *Palette {
	p := &Palette{
		rng:        cloud.NewRandom(seed),
		saturation: DefaultSaturation,
		value:      DefaultValue,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParsePalette parses a comma-separated list of hex colors.
func ParsePalette(s string) ([]colorful.Color, error) {
	var out []colorful.Color
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := ParseColor(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Next returns the next color as a hex string without '#'.
func (p *Palette) Next(i int) string {
	if len(p.fixed) > 0 {
		return NormalizeColor(p.fixed[i%len(p.fixed)].Hex())
	}
	h := p.rng.Float64() * 360
	return NormalizeColor(colorful.Hsv(h, p.saturation, p.value).Hex())
}

// Fill assigns a color to every word that has none, in place.
func (p *Palette) Fill(words []cloud.Word) {
	n := 0
	for i := range words {
		if words[i].Color == "" {
			words[i].Color = p.Next(n)
			n++
		}
	}
}

// NormalizeColor trims whitespace and a leading '#', and lower-cases hex.
func NormalizeColor(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
}

// ParseColor parses a hex color with or without '#', in 3- or 6-digit form.
func ParseColor(s string) (colorful.Color, error) {
	s = NormalizeColor(s)
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// RGBA parses a hex color into an opaque color.RGBA, falling back to
// fallback when s is empty or invalid.
func RGBA(s string, fallback color.RGBA) color.RGBA {
	if s == "" {
		return fallback
	}
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
