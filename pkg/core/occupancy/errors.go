package occupancy

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRectangle is returned when a query or stamp touches cells
	// outside the canvas.
	ErrInvalidRectangle = errors.New("rectangle outside canvas")

	// ErrInvariant is returned by [Map.Verify] when the summed-area table no
	// longer matches the occupancy grid.
	ErrInvariant = errors.New("summed-area table diverged from grid")
)

// RectError describes a rejected rectangle.
type RectError struct {
	Op                       string // "query" or "stamp"
	Top, Left, Height, Width int
	CanvasH, CanvasW         int
}

func (e *RectError) Error() string {
	return fmt.Sprintf("%s [%d,%d)x[%d,%d) on %dx%d canvas: %v",
		e.Op, e.Top, e.Top+e.Height, e.Left, e.Left+e.Width, e.CanvasH, e.CanvasW, ErrInvalidRectangle)
}

// Unwrap allows errors.Is(err, ErrInvalidRectangle).
func (e *RectError) Unwrap() error { return ErrInvalidRectangle }
