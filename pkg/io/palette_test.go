package io

import (
	"image/color"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
)

func TestPaletteFillIsSeeded(t *testing.T) {
	fill := func() []cloud.Word {
		words := []cloud.Word{{Text: "a"}, {Text: "b", Color: "ff0000"}, {Text: "c"}}
		NewPalette(5).Fill(words)
		return words
	}
	a, b := fill(), fill()
	for i := range a {
		if a[i].Color == "" {
			t.Errorf("word %d has no color", i)
		}
		if a[i].Color != b[i].Color {
			t.Errorf("word %d: %q vs %q with the same seed", i, a[i].Color, b[i].Color)
		}
		if _, err := ParseColor(a[i].Color); err != nil {
			t.Errorf("word %d: %v", i, err)
		}
	}
	if a[1].Color != "ff0000" {
		t.Errorf("existing color replaced: %q", a[1].Color)
	}
}

func TestPaletteFixedColors(t *testing.T) {
	colors, err := ParsePalette("#111111, 222222")
	if err != nil {
		t.Fatal(err)
	}
	p := NewPalette(1, WithColors(colors...))
	for i, want := range []string{"111111", "222222", "111111"} {
		if got := p.Next(i); got != want {
			t.Errorf("Next(%d) = %q, want %q", i, got, want)
		}
	}
	if _, err := ParsePalette("nothex"); err == nil {
		t.Error("expected error")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}, false},
		{"00FF00", color.RGBA{0, 255, 0, 255}, false},
		{"00f", color.RGBA{0, 0, 255, 255}, false},
		{"zzz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		_, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr {
			if got := RGBA(tt.in, color.RGBA{}); got != tt.want {
				t.Errorf("RGBA(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
	fb := color.RGBA{1, 2, 3, 255}
	if RGBA("", fb) != fb || RGBA("bogus", fb) != fb {
		t.Error("RGBA should fall back")
	}
}

func TestPaletteSaturationValue(t *testing.T) {
	p := NewPalette(9, WithSaturationValue(0, 1))
	for i := range 4 {
		if got := p.Next(i); got != "ffffff" {
			t.Errorf("Next(%d) = %q, want white with zero saturation", i, got)
		}
	}
}
