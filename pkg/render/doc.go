// Package render turns word cloud layouts into images.
//
// # Overview
//
// Rendering is the second pass of a cloud: the layout pass decided every
// word's size, orientation and position on a greyscale occupancy canvas, and
// rendering paints those decisions in color without recomputing any of them.
//
//   - [raster]: opentype glyph rasterization shared by both passes
//   - [sink]: output formats (PNG, SVG, PDF, JSON)
//
// # Format Conversion
//
// [ToPDF] converts SVG to PDF using the external rsvg-convert tool (from
// librsvg). [ToPNG] does the same for PNG, though the PNG sink composites
// glyphs directly and does not need it.
//
//	svg, _ := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [raster]: github.com/matzehuels/wordcloud/pkg/render/raster
// [sink]: github.com/matzehuels/wordcloud/pkg/render/sink
package render
