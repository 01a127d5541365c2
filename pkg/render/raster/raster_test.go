package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
)

func newRaster(t *testing.T) *Rasterizer {
	t.Helper()
	r, err := NewNamed("")
	if err != nil {
		t.Fatalf("NewNamed: %v", err)
	}
	return r
}

func TestMeasureMatchesRender(t *testing.T) {
	r := newRaster(t)
	for _, o := range []cloud.Orientation{cloud.Horizontal, cloud.Vertical} {
		t.Run(o.String(), func(t *testing.T) {
			h, w, err := r.Measure("wordcloud", 32, o)
			if err != nil {
				t.Fatalf("Measure: %v", err)
			}
			mask, err := r.Render("wordcloud", 32, o)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			mh, mw := mask.Size()
			if mh != h || mw != w {
				t.Errorf("Render box %dx%d, Measure box %dx%d", mh, mw, h, w)
			}
		})
	}
}

func TestVerticalSwapsAxes(t *testing.T) {
	r := newRaster(t)
	hh, hw, err := r.Measure("hello", 40, cloud.Horizontal)
	if err != nil {
		t.Fatal(err)
	}
	vh, vw, err := r.Measure("hello", 40, cloud.Vertical)
	if err != nil {
		t.Fatal(err)
	}
	if hh != vw || hw != vh {
		t.Errorf("horizontal %dx%d, vertical %dx%d", hh, hw, vh, vw)
	}
	if hw <= hh {
		t.Errorf("horizontal word should be wider than tall, got %dx%d", hh, hw)
	}
}

func TestBoxGrowsWithSize(t *testing.T) {
	r := newRaster(t)
	prevH, prevW := 0, 0
	for _, size := range []int{8, 16, 32, 64} {
		h, w, err := r.Measure("grow", size, cloud.Horizontal)
		if err != nil {
			t.Fatal(err)
		}
		if h < prevH || w < prevW {
			t.Errorf("size %d box %dx%d smaller than %dx%d", size, h, w, prevH, prevW)
		}
		prevH, prevW = h, w
	}
}

func TestRenderHasInk(t *testing.T) {
	r := newRaster(t)
	img, err := r.Draw("ink", 48, cloud.Horizontal)
	if err != nil {
		t.Fatal(err)
	}
	if n := r.Mask(img).Count(); n == 0 {
		t.Error("mask has no ink")
	}
	if Coverage(img) <= 0 || Coverage(img) >= 1 {
		t.Errorf("coverage = %v, want in (0, 1)", Coverage(img))
	}
}

func TestUnrenderable(t *testing.T) {
	r := newRaster(t)
	tests := []struct {
		name string
		text string
		size int
	}{
		{"zero size", "hello", 0},
		{"missing glyph", "中文", 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render(tt.text, tt.size, cloud.Horizontal)
			if !errors.Is(err, cloud.ErrUnrenderable) {
				t.Errorf("err = %v, want ErrUnrenderable", err)
			}
		})
	}
}

func TestRotate90(t *testing.T) {
	// 2 rows x 3 cols, marking the top-right pixel.
	img := image.NewAlpha(image.Rect(0, 0, 3, 2))
	img.SetAlpha(2, 0, color.Alpha{A: 255})

	out := Rotate90(img)
	if b := out.Bounds(); b.Dx() != 2 || b.Dy() != 3 {
		t.Fatalf("rotated bounds = %v, want 2x3", b)
	}
	// Counter-clockwise: the top-right corner moves to the top-left.
	if out.AlphaAt(0, 0).A != 255 {
		t.Error("top-right pixel should rotate to top-left")
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			if (x != 0 || y != 0) && out.AlphaAt(x, y).A != 0 {
				t.Errorf("unexpected ink at (%d, %d)", x, y)
			}
		}
	}
}

func TestEngineWithFontRasterizer(t *testing.T) {
	r := newRaster(t)
	e, err := cloud.NewEngine(cloud.Config{Width: 400, Height: 200, Margin: 4, MaxFontSize: 120}, r, cloud.NewRandom(1))
	if err != nil {
		t.Fatal(err)
	}
	res, err := e.Run([]cloud.Word{
		{Text: "alpha", Weight: 5},
		{Text: "beta", Weight: 3},
		{Text: "gamma", Weight: 1},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Placements) != 3 {
		t.Fatalf("got %d placements, want 3 (warning %v)", len(res.Placements), res.Warning)
	}
	for i, p := range res.Placements {
		f := p.Frame(res.Margin)
		if !f.Within(res.Width, res.Height) {
			t.Errorf("%q outside canvas: %+v", p.Text, f)
		}
		for _, q := range res.Placements[:i] {
			if f.Intersects(q.Frame(res.Margin)) {
				t.Errorf("%q overlaps %q", p.Text, q.Text)
			}
		}
	}
}

func TestThresholdDropsAntialiasing(t *testing.T) {
	loose := newRaster(t)
	strict, err := NewNamed("", WithThreshold(200), WithHinting(font.HintingFull))
	if err != nil {
		t.Fatal(err)
	}
	img, err := loose.Draw("edge", 36, cloud.Horizontal)
	if err != nil {
		t.Fatal(err)
	}
	a, b := loose.Mask(img).Count(), strict.Mask(img).Count()
	if b == 0 || b >= a {
		t.Errorf("strict mask has %d cells, loose %d; want fewer but some", b, a)
	}
}
