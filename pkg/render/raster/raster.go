// Package raster draws single-line words into alpha masks with
// golang.org/x/image/font/opentype.
//
// A [Rasterizer] satisfies cloud.Rasterizer and cloud.Measurer. The same
// rasterizer is used twice per cloud: once during layout to produce the
// occupancy masks, and again by the PNG sink to draw each placed word with
// its color. Both passes produce identical glyph boxes for the same text,
// size and orientation.
package raster

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/core/occupancy"
	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// maxCachedFaces bounds the per-size face cache. Layout walks sizes
// downward and rarely revisits one, so the cache mostly serves compositing.
const maxCachedFaces = 64

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithThreshold sets the minimum alpha (exclusive) for a pixel to count as
// occupied. The default 0 counts any ink.
func WithThreshold(t uint8) Option { return func(r *Rasterizer) { r.threshold = t } }

// WithHinting sets the font hinting mode. The default is font.HintingFull.
func WithHinting(h font.Hinting) Option { return func(r *Rasterizer) { r.hinting = h } }

// Rasterizer draws words with one font. It is safe for concurrent use.
type Rasterizer struct {
	font      *opentype.Font
	threshold uint8
	hinting   font.Hinting

	mu    sync.Mutex
	faces map[int]font.Face
	buf   sfnt.Buffer
}

// New returns a rasterizer for f.
func New(f *opentype.Font, opts ...Option) *Rasterizer {
	r := &Rasterizer{font: f, hinting: font.HintingFull, faces: map[int]font.Face{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewNamed loads a font through the fonts registry and returns a rasterizer
// for it. An empty name selects fonts.Default.
func NewNamed(name string, opts ...Option) (*Rasterizer, error) {
	f, err := fonts.Load(name)
	if err != nil {
		return nil, err
	}
	return New(f, opts...), nil
}

// metrics is the horizontal glyph box of a word at one size.
type metrics struct {
	w, h   int
	dotX   fixed.Int26_6 // pen start, shifted right by any left overhang
	ascent fixed.Int26_6
}

// Measure returns the glyph box of text without drawing it.
func (r *Rasterizer) Measure(text string, size int, o cloud.Orientation) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, _, err := r.measure(text, size)
	if err != nil {
		return 0, 0, err
	}
	if o == cloud.Vertical {
		return m.w, m.h, nil
	}
	return m.h, m.w, nil
}

// Draw renders text into an alpha image sized to its glyph box, rotated
// 90° counter-clockwise for vertical words.
func (r *Rasterizer) Draw(text string, size int, o cloud.Orientation) (*image.Alpha, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, face, err := r.measure(text, size)
	if err != nil {
		return nil, err
	}
	img := image.NewAlpha(image.Rect(0, 0, m.w, m.h))
	d := font.Drawer{Dst: img, Src: image.Opaque, Face: face, Dot: fixed.Point26_6{X: m.dotX, Y: m.ascent}}
	d.DrawString(text)
	if o == cloud.Vertical {
		img = Rotate90(img)
	}
	return img, nil
}

// Ascent returns the baseline offset from the top of the horizontal glyph
// box at size, as used by Draw.
func (r *Rasterizer) Ascent(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if size <= 0 {
		return 0, fmt.Errorf("%w: size %d", cloud.ErrUnrenderable, size)
	}
	face, err := r.face(size)
	if err != nil {
		return 0, err
	}
	return face.Metrics().Ascent.Ceil(), nil
}

// LeftBearing returns how far the pen starts right of the box edge for text
// at size, as used by Draw.
func (r *Rasterizer) LeftBearing(text string, size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, _, err := r.measure(text, size)
	if err != nil {
		return 0, err
	}
	return m.dotX.Round(), nil
}

// Render implements cloud.Rasterizer.
func (r *Rasterizer) Render(text string, size int, o cloud.Orientation) (occupancy.Mask, error) {
	img, err := r.Draw(text, size, o)
	if err != nil {
		return nil, err
	}
	return r.Mask(img), nil
}

// Mask converts an alpha image into an occupancy bitmap using the
// rasterizer's threshold.
func (r *Rasterizer) Mask(img *image.Alpha) *occupancy.Bitmap {
	b := img.Bounds()
	m := occupancy.NewBitmap(b.Dy(), b.Dx())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if img.AlphaAt(b.Min.X+x, b.Min.Y+y).A > r.threshold {
				m.Set(y, x, true)
			}
		}
	}
	return m
}

func (r *Rasterizer) measure(text string, size int) (metrics, font.Face, error) {
	if size <= 0 {
		return metrics{}, nil, fmt.Errorf("%w: size %d", cloud.ErrUnrenderable, size)
	}
	for _, c := range text {
		if c == ' ' {
			continue
		}
		idx, err := r.font.GlyphIndex(&r.buf, c)
		if err != nil || idx == 0 {
			return metrics{}, nil, fmt.Errorf("%w: no glyph for %q", cloud.ErrUnrenderable, c)
		}
	}

	face, err := r.face(size)
	if err != nil {
		return metrics{}, nil, err
	}
	fm := face.Metrics()
	bounds, advance := font.BoundString(face, text)

	left := min(bounds.Min.X, 0)
	right := max(bounds.Max.X, advance)
	m := metrics{
		w:      (right - left).Ceil(),
		h:      fm.Ascent.Ceil() + fm.Descent.Ceil(),
		dotX:   -left,
		ascent: fixed.I(fm.Ascent.Ceil()),
	}
	if m.w <= 0 || m.h <= 0 {
		return metrics{}, nil, fmt.Errorf("%w: empty box for %q at size %d", cloud.ErrUnrenderable, text, size)
	}
	return m, face, nil
}

func (r *Rasterizer) face(size int) (font.Face, error) {
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: r.hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cloud.ErrUnrenderable, err)
	}
	if len(r.faces) >= maxCachedFaces {
		for k, old := range r.faces {
			old.Close()
			delete(r.faces, k)
		}
	}
	r.faces[size] = f
	return f, nil
}

// Rotate90 returns img rotated 90° counter-clockwise, matching
// occupancy.Bitmap.Rotate90.
func Rotate90(img *image.Alpha) *image.Alpha {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewAlpha(image.Rect(0, 0, h, w))
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			out.SetAlpha(x, y, img.AlphaAt(b.Min.X+w-1-y, b.Min.Y+x))
		}
	}
	return out
}

// Coverage returns the fraction of pixels in img with any ink.
func Coverage(img *image.Alpha) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	inked := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.AlphaAt(x, y).A > 0 {
				inked++
			}
		}
	}
	return float64(inked) / float64(b.Dx()*b.Dy())
}
