// Package sink provides output format renderers for word cloud layouts.
//
// # Overview
//
// A "sink" transforms a finished [layout.Layout] into a final output format.
// No sink moves, resizes or re-orients a word: every decision comes from the
// layout.
//
//   - PNG: glyphs composited in color over a background
//   - SVG: one text element per word, optionally with the font embedded
//   - PDF: the SVG converted via rsvg-convert
//   - JSON: the layout document itself
//
// # PNG Output
//
// [RenderPNG] redraws each word with the same rasterizer the layout pass
// used, so glyph boxes match the recorded ones exactly:
//
//	png, err := sink.RenderPNG(l, sink.WithBackground(color.White))
//
// [WithScale] upsamples the composite with x/image/draw.
//
// # SVG and PDF Output
//
// [RenderSVG] places each word at its recorded box using the font's ascent
// and left bearing, rotating vertical words by -90 degrees:
//
//	svg, err := sink.RenderSVG(l, sink.WithEmbeddedFont())
//	pdf, err := sink.RenderPDF(ctx, l)
//
// PDF requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [layout.Layout]: github.com/matzehuels/wordcloud/pkg/layout.Layout
package sink
