package occupancy

import (
	"fmt"
	"math"
)

// Map is a write-once occupancy grid with a summed-area table.
//
// The table satisfies S[r][c] = Σ grid[0..r][0..c] between calls. A Map is
// not safe for concurrent use; each layout run owns its own Map.
type Map struct {
	width, height int
	grid          []uint32 // row-major occupancy, 0 = free
	sat           []uint32 // row-major summed-area table
	partial       []uint32 // scratch row for refresh
}

// New creates an empty map for a width × height canvas.
func New(width, height int) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas %dx%d: dimensions must be positive", width, height)
	}
	if uint64(width)*uint64(height) > math.MaxUint32 {
		return nil, fmt.Errorf("invalid canvas %dx%d: too many cells", width, height)
	}
	n := width * height
	return &Map{
		width:   width,
		height:  height,
		grid:    make([]uint32, n),
		sat:     make([]uint32, n),
		partial: make([]uint32, width),
	}, nil
}

// Width returns the canvas width in cells.
func (m *Map) Width() int { return m.width }

// Height returns the canvas height in cells.
func (m *Map) Height() int { return m.height }

// Occupied reports whether the single cell (r, c) is taken.
// It panics if the cell is outside the canvas.
func (m *Map) Occupied(r, c int) bool {
	if r < 0 || c < 0 || r >= m.height || c >= m.width {
		panic(&RectError{Op: "cell", Top: r, Left: c, Height: 1, Width: 1, CanvasH: m.height, CanvasW: m.width})
	}
	return m.grid[r*m.width+c] != 0
}

// Filled returns the number of occupied cells.
func (m *Map) Filled() int {
	return int(m.prefix(m.height-1, m.width-1))
}

// Coverage returns the fraction of the canvas that is occupied.
func (m *Map) Coverage() float64 {
	return float64(m.Filled()) / float64(m.width*m.height)
}

// Query reports whether [top, top+height) × [left, left+width) contains any
// occupied cell.
func (m *Map) Query(top, left, height, width int) (bool, error) {
	s, err := m.Sum(top, left, height, width)
	return s != 0, err
}

// Sum returns the total occupancy of [top, top+height) × [left, left+width).
func (m *Map) Sum(top, left, height, width int) (uint32, error) {
	if err := m.check("query", top, left, height, width); err != nil {
		return 0, err
	}
	return m.sum(top, left, height, width), nil
}

// Stamp marks every cell where mask is set, offset by (top, left).
// The whole mask must lie inside the canvas.
func (m *Map) Stamp(mask Mask, top, left int) error {
	h, w := mask.Size()
	if err := m.check("stamp", top, left, h, w); err != nil {
		return err
	}

	r0, c0 := -1, -1
	for r := 0; r < h; r++ {
		row := (top+r)*m.width + left
		for c := 0; c < w; c++ {
			if !mask.At(r, c) || m.grid[row+c] != 0 {
				continue
			}
			m.grid[row+c] = 1
			if r0 < 0 {
				r0 = top + r
			}
			if c0 < 0 || left+c < c0 {
				c0 = left + c
			}
		}
	}
	if r0 < 0 {
		return nil
	}
	m.refresh(r0, c0)
	return nil
}

// Verify recomputes the summed-area table from scratch and compares it with
// the maintained one.
func (m *Map) Verify() error {
	for r := 0; r < m.height; r++ {
		var run uint32
		for c := 0; c < m.width; c++ {
			run += m.grid[r*m.width+c]
			want := run + m.prefix(r-1, c)
			if got := m.sat[r*m.width+c]; got != want {
				return fmt.Errorf("%w: S[%d][%d] = %d, want %d", ErrInvariant, r, c, got, want)
			}
		}
	}
	return nil
}

// refresh recomputes the table on [top, height) × [left, width).
//
// Rows above top and columns left of left did not change, so the table
// values bordering the sub-rectangle are still valid. Each refreshed cell is
// the cumulative sum of the sub-rectangle plus the top border row and the
// left border column, minus the corner counted by both.
func (m *Map) refresh(top, left int) {
	n := m.width - left
	partial := m.partial[:n]
	clear(partial)

	var topBorder []uint32
	if top > 0 {
		topBorder = m.sat[(top-1)*m.width+left : top*m.width]
	}
	var corner uint32
	if top > 0 && left > 0 {
		corner = m.sat[(top-1)*m.width+left-1]
	}

	for r := top; r < m.height; r++ {
		row := r * m.width
		var leftBorder uint32
		if left > 0 {
			leftBorder = m.sat[row+left-1]
		}

		var run uint32
		for c := 0; c < n; c++ {
			run += m.grid[row+left+c]
			partial[c] += run

			v := partial[c]
			if topBorder != nil {
				v += topBorder[c]
			}
			if left > 0 {
				v += leftBorder
			}
			if topBorder != nil && left > 0 {
				v -= corner
			}
			m.sat[row+left+c] = v
		}
	}
}

// sum evaluates a rectangle already known to be inside the canvas.
// Unsigned wrap-around cancels out because the true sum is non-negative.
func (m *Map) sum(top, left, height, width int) uint32 {
	bottom, right := top+height-1, left+width-1
	return m.prefix(bottom, right) - m.prefix(top-1, right) - m.prefix(bottom, left-1) + m.prefix(top-1, left-1)
}

func (m *Map) prefix(r, c int) uint32 {
	if r < 0 || c < 0 {
		return 0
	}
	return m.sat[r*m.width+c]
}

func (m *Map) check(op string, top, left, height, width int) error {
	if height <= 0 || width <= 0 || top < 0 || left < 0 || top+height > m.height || left+width > m.width {
		return &RectError{
			Op: op, Top: top, Left: left, Height: height, Width: width,
			CanvasH: m.height, CanvasW: m.width,
		}
	}
	return nil
}
