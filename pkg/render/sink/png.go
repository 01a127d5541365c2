package sink

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/render/raster"
)

// Default colors match a black canvas with white words.
var (
	DefaultBackground = color.RGBA{A: 255}
	DefaultForeground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	raster     *raster.Rasterizer
	background color.Color
	foreground color.RGBA
	scale      float64
	vector     bool
	ctx        context.Context
}

// WithRasterizer sets the rasterizer used to redraw words. It must use the
// font the layout was computed with; by default one is loaded from l.Font.
func WithRasterizer(r *raster.Rasterizer) PNGOption {
	return func(p *pngRenderer) { p.raster = r }
}

// WithBackground sets the canvas color.
func WithBackground(c color.Color) PNGOption {
	return func(p *pngRenderer) { p.background = c }
}

// WithForeground sets the color for words without one.
func WithForeground(c color.RGBA) PNGOption {
	return func(p *pngRenderer) { p.foreground = c }
}

// WithScale sets the output scale factor (default 1).
func WithScale(s float64) PNGOption {
	return func(p *pngRenderer) { p.scale = s }
}

// WithVector renders through SVG and rsvg-convert instead of compositing
// glyph masks.
func WithVector(ctx context.Context) PNGOption {
	return func(p *pngRenderer) { p.vector, p.ctx = true, ctx }
}

// RenderPNG renders the layout as PNG.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	p := pngRenderer{background: DefaultBackground, foreground: DefaultForeground, scale: 1}
	for _, opt := range opts {
		opt(&p)
	}
	if p.scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %v", p.scale)
	}

	if p.vector {
		svg, err := RenderSVG(l, WithSVGRasterizer(p.raster), WithSVGBackground(p.background), WithSVGForeground(p.foreground), WithEmbeddedFont())
		if err != nil {
			return nil, err
		}
		return render.ToPNG(p.ctx, svg, p.scale)
	}

	img, err := Composite(l, p.raster, p.background, p.foreground)
	if err != nil {
		return nil, err
	}
	var out image.Image = img
	if p.scale != 1 {
		b := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, int(float64(b.Dx())*p.scale+0.5), int(float64(b.Dy())*p.scale+0.5)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Composite paints every word of l in its color over bg. A nil rasterizer
// loads l.Font.
func Composite(l layout.Layout, r *raster.Rasterizer, bg color.Color, fg color.RGBA) (*image.RGBA, error) {
	if r == nil {
		var err error
		if r, err = raster.NewNamed(l.Font); err != nil {
			return nil, err
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, w := range l.Words {
		mask, err := r.Draw(w.Text, w.Size, w.Orientation)
		if err != nil {
			return nil, fmt.Errorf("draw %q: %w", w.Text, err)
		}
		mb := mask.Bounds()
		if mb.Dx() != w.Width || mb.Dy() != w.Height {
			return nil, fmt.Errorf("draw %q: glyph box %dx%d does not match layout %dx%d (different font?)",
				w.Text, mb.Dy(), mb.Dx(), w.Height, w.Width)
		}
		dst := image.Rect(w.X, w.Y, w.X+mb.Dx(), w.Y+mb.Dy())
		src := image.NewUniform(io.RGBA(w.Color, fg))
		draw.DrawMask(img, dst, src, image.Point{}, mask, mb.Min, draw.Over)
	}
	return img, nil
}
