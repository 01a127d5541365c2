package occupancy

// Point is a cell position on the canvas.
type Point struct {
	Row, Col int
}

// Find returns the first anchor, in row-major order, at which a
// height × width box contains no occupied cell. It reports false when the
// box is larger than the canvas or no anchor is free. Find does not modify m.
func Find(m *Map, height, width int) (Point, bool) {
	return Searcher{}.Find(m, height, width)
}

// Searcher scans anchors like [Find], optionally giving up after MaxAnchors
// candidates. A zero MaxAnchors scans the whole canvas.
type Searcher struct {
	MaxAnchors int
}

// Find implements the bounded row-major scan.
func (s Searcher) Find(m *Map, height, width int) (Point, bool) {
	if height <= 0 || width <= 0 || height > m.height || width > m.width {
		return Point{}, false
	}

	scanned := 0
	for r := 0; r+height <= m.height; r++ {
		for c := 0; c+width <= m.width; c++ {
			if s.MaxAnchors > 0 && scanned >= s.MaxAnchors {
				return Point{}, false
			}
			scanned++
			if m.sum(r, c, height, width) == 0 {
				return Point{Row: r, Col: c}, true
			}
		}
	}
	return Point{}, false
}
