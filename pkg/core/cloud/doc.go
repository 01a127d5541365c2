// Package cloud lays out weighted words on a fixed canvas without overlap.
//
// # Overview
//
// The [Engine] processes words in descending weight order and places each
// one greedily, never revisiting earlier placements. For every word it picks
// a starting font size from a [SizingPolicy], rasterizes the word through a
// [Rasterizer], and asks the occupancy map for the first free region large
// enough for the glyph box plus margin. When no region exists the size is
// reduced one pixel at a time until the word fits or the size reaches zero.
//
// # Placement Loop
//
// Each word moves through four states:
//
//	Sizing → Fitting → Committed → next word
//	                 ↘ Skipped   → stop (or next word with ContinueOnSkip)
//
// Orientation is drawn once per word from the [RandomSource] and kept while
// shrinking, so a seeded source makes runs reproducible.
//
// # Sizing
//
// [RankOnly] starts every word at the ceiling and relies on the engine to cap
// it at the previous word's committed size, so sizes never grow down the
// ranking. [WeightAware] maps the normalized weight through a logarithmic
// curve so that doubling a weight grows the size sub-linearly.
//
// # Results
//
// [Engine.Run] returns a [Result] listing the committed [Placement] records.
// Running out of room is not an error: the result carries an
// [*ExhaustedError] warning and the placements made so far. An empty word
// list yields [ErrEmptyInput] as a warning.
//
// # Example
//
//	eng, err := cloud.NewEngine(cloud.Config{Width: 400, Height: 200, Margin: 4},
//	    rasterizer, cloud.NewRandom(42))
//	if err != nil {
//	    return err
//	}
//	res, err := eng.Run(words)
package cloud
