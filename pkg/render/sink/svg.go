package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render/raster"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	raster     *raster.Rasterizer
	background color.Color
	foreground color.RGBA
	embedFont  bool
}

func WithSVGRasterizer(r *raster.Rasterizer) SVGOption { return func(s *svgRenderer) { s.raster = r } }
func WithSVGBackground(c color.Color) SVGOption       { return func(s *svgRenderer) { s.background = c } }
func WithSVGForeground(c color.RGBA) SVGOption        { return func(s *svgRenderer) { s.foreground = c } }

// WithEmbeddedFont inlines the layout's font as a base64 @font-face so the
// SVG renders identically without the font installed.
func WithEmbeddedFont() SVGOption { return func(s *svgRenderer) { s.embedFont = true } }

// RenderSVG renders the layout as SVG text elements.
func RenderSVG(l layout.Layout, opts ...SVGOption) ([]byte, error) {
	s := svgRenderer{background: DefaultBackground, foreground: DefaultForeground}
	for _, opt := range opts {
		opt(&s)
	}
	if s.raster == nil {
		r, err := raster.NewNamed(l.Font)
		if err != nil {
			return nil, err
		}
		s.raster = r
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	family := fonts.Family(l.Font)
	if s.embedFont {
		data, err := fonts.Base64(l.Font)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "  <style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s); }</style>\n", family, data)
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", hex(s.background))
	fmt.Fprintf(&buf, `  <g font-family="'%s', sans-serif" font-weight="%s" font-style="%s">`+"\n",
		family, fonts.Weight(l.Font), fonts.Style(l.Font))

	for _, w := range l.Words {
		if err := s.renderWord(&buf, w); err != nil {
			return nil, err
		}
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes(), nil
}

func (s *svgRenderer) renderWord(buf *bytes.Buffer, w layout.Word) error {
	ascent, err := s.raster.Ascent(w.Size)
	if err != nil {
		return fmt.Errorf("svg %q: %w", w.Text, err)
	}
	bearing, err := s.raster.LeftBearing(w.Text, w.Size)
	if err != nil {
		return fmt.Errorf("svg %q: %w", w.Text, err)
	}
	fill := hex(io.RGBA(w.Color, s.foreground))

	// Vertical words are drawn unrotated at the origin, then rotated
	// counter-clockwise so their unrotated top-left lands at the box's
	// bottom-left.
	var x, y int
	transform := ""
	if w.Orientation == cloud.Vertical {
		transform = fmt.Sprintf(` transform="translate(%d %d) rotate(-90)"`, w.X, w.Y+w.Height)
		x, y = bearing, ascent
	} else {
		x, y = w.X+bearing, w.Y+ascent
	}

	fmt.Fprintf(buf, `    <text x="%d" y="%d" font-size="%d" fill="%s"%s>`, x, y, w.Size, fill, transform)
	if err := xml.EscapeText(buf, []byte(w.Text)); err != nil {
		return err
	}
	buf.WriteString("</text>\n")
	return nil
}

func hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "none"
	}
	return cf.Hex()
}
