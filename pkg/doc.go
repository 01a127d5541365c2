// Package pkg provides the libraries behind the wordcloud tool.
//
// # Overview
//
// Wordcloud packs a list of weighted words onto a fixed canvas. Words are
// ranked by weight, sized from the top down, and each is placed at the first
// free position found by a row-major scan of a summed-area occupancy table.
// A word that does not fit shrinks one size at a time until it does or
// cannot be drawn at all.
//
// # Architecture
//
// The typical data flow:
//
//	Word list (CSV, JSON, plain text)
//	         ↓
//	    [io] package (decode, count, color)
//	         ↓
//	    [core/cloud] package (rank, size, place on [core/occupancy])
//	         ↓
//	    [layout] package (serializable result)
//	         ↓
//	    [render/sink] package (PNG, SVG, PDF, JSON)
//
// [pipeline] wires these stages together with caching ([cache]) and is shared
// by the CLI and the HTTP API ([server], backed by [store]).
//
// # Quick Start
//
//	words, _ := io.ReadFile("words.csv")
//	runner := pipeline.NewRunner(nil, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Width, opts.Height = 800, 600
//	result, err := runner.Execute(ctx, words, opts)
//	os.WriteFile("cloud.png", result.Artifacts["png"], 0o644)
//
// # Main Packages
//
// ## Core
//
// [core/occupancy] - Summed-area table over a boolean canvas with O(1)
// rectangle queries and incremental refresh after each stamp.
//
// [core/cloud] - The placement engine: sizing policies, the per-word
// shrink-and-search loop, and the result of a run.
//
// [fonts] - Embedded Go fonts and font files.
//
// ## Rendering
//
// [render/raster] - Glyph rasterization shared by layout and drawing.
//
// [render/sink] - Output formats. [render] converts SVG with rsvg-convert.
//
// ## Infrastructure
//
// [cache] - File, Redis and null caches keyed by content hashes.
//
// [store] - Layout persistence in memory or MongoDB.
//
// [server] - chi HTTP API over the pipeline and store.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors and input validation.
//
// [core/occupancy]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/core/occupancy
// [core/cloud]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/core/cloud
// [fonts]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/fonts
// [io]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/io
// [layout]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/render
// [render/raster]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/render/raster
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/errors
package pkg
