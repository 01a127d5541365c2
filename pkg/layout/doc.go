// Package layout provides the serialized form of a word cloud layout.
//
// This package defines the canonical wire format for placed words, used for
// layout files, API responses, the artifact cache and the MongoDB store.
//
// # Architecture
//
// The package sits at the serialization boundary between the placement
// engine and everything downstream of it:
//
//   - pkg/core/cloud.Result: what the engine produced (this package reads it)
//   - [Layout]: the document written to disk, cached and stored
//   - pkg/render/sink: paints a [Layout] without recomputing any decision
//
// Use [FromResult] to build a document and [Layout.Placements] to get the
// engine's view back.
//
// # Layout Format
//
//	{
//	  "version": 1,
//	  "width": 400,
//	  "height": 200,
//	  "margin": 5,
//	  "font": "goregular",
//	  "seed": 1,
//	  "complete": true,
//	  "words": [
//	    {"text": "go", "color": "3b82f6", "weight": 12, "rank": 0, "index": 4,
//	     "size": 96, "x": 2, "y": 2, "width": 109, "height": 111,
//	     "orientation": "horizontal"}
//	  ]
//	}
//
// Coordinates are pixels with the origin at the top-left. x and y give the
// top-left of the glyph box; the reserved frame extends margin/2 beyond it.
//
// Common operations:
//
//	l, _ := layout.ReadFile("cloud.layout.json")
//	layout.WriteFile(l, "copy.layout.json")
//	data, _ := layout.Marshal(l)
//	parsed, _ := layout.Unmarshal(data)
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package layout
