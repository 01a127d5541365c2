package pipeline

import (
	"context"

	errs "github.com/matzehuels/wordcloud/pkg/errors"
	pkgio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render/raster"
	"github.com/matzehuels/wordcloud/pkg/render/sink"
)

// RenderFromLayout renders l in every requested format. One rasterizer for
// the layout's font is shared by the PNG and SVG sinks.
func RenderFromLayout(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidLayout, err, "render")
	}

	r, err := raster.NewNamed(l.Font)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFont, err, "load font %q", l.Font)
	}
	bg := pkgio.RGBA(opts.Background, sink.DefaultBackground)
	fg := pkgio.RGBA(opts.Foreground, sink.DefaultForeground)

	svgOpts := []sink.SVGOption{
		sink.WithSVGRasterizer(r),
		sink.WithSVGBackground(bg),
		sink.WithSVGForeground(fg),
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatPNG:
			pngOpts := []sink.PNGOption{
				sink.WithRasterizer(r),
				sink.WithBackground(bg),
				sink.WithForeground(fg),
				sink.WithScale(opts.Scale),
			}
			if opts.Vector {
				pngOpts = append(pngOpts, sink.WithVector(ctx))
			}
			data, err = sink.RenderPNG(l, pngOpts...)
		case FormatSVG:
			so := svgOpts
			if opts.EmbedFont {
				so = append(so[:len(so):len(so)], sink.WithEmbeddedFont())
			}
			data, err = sink.RenderSVG(l, so...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
