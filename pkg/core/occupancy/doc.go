// Package occupancy tracks which canvas pixels are taken and answers
// rectangle-occupancy queries in constant time.
//
// # Overview
//
// A [Map] holds a height × width grid of occupancy counters together with a
// summed-area table (integral image) over that grid. Cells are only ever
// marked, never cleared, so the table can be maintained incrementally: after
// a [Map.Stamp], only the sub-rectangle below and to the right of the first
// changed cell is recomputed.
//
// # Queries
//
// [Map.Query] reports whether a rectangle contains any occupied cell using
// four table lookups:
//
//	occupied, err := m.Query(top, left, height, width)
//
// Rectangles that leave the canvas are rejected with a [*RectError] rather
// than clamped.
//
// # Free-Region Search
//
// [Find] scans candidate top-left anchors in row-major order and returns the
// first one whose box is entirely free, so ties resolve toward the top-left
// corner of the canvas:
//
//	if p, ok := occupancy.Find(m, h, w); ok {
//	    _ = m.Stamp(occupancy.Solid(h, w), p.Row, p.Col)
//	}
//
// [Searcher] performs the same scan with an optional bound on the number of
// anchors examined per call.
package occupancy
