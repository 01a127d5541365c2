package sink

import (
	"context"

	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// RenderPDF renders the layout as PDF via SVG conversion. The font is
// embedded in the intermediate SVG.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, l layout.Layout, opts ...SVGOption) ([]byte, error) {
	svg, err := RenderSVG(l, append(opts, WithEmbeddedFont())...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
