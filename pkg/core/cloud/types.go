package cloud

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/core/occupancy"
)

// =============================================================================
// Words and Placements
// =============================================================================

// Word is a single input record.
type Word struct {
	Text   string  // label to draw
	Weight float64 // relative importance; only the ordering and ratio matter
	Color  string  // opaque token passed through to rendering
}

// Validate checks that the word has text and a finite, non-negative weight.
func (w Word) Validate() error {
	if strings.TrimSpace(w.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidWord)
	}
	if math.IsNaN(w.Weight) || math.IsInf(w.Weight, 0) || w.Weight < 0 {
		return fmt.Errorf("%w: %q has weight %v", ErrInvalidWord, w.Text, w.Weight)
	}
	return nil
}

// Placement is the committed position of one word.
type Placement struct {
	Index       int // position in the input slice
	Rank        int // position in descending weight order
	Text        string
	Color       string
	Weight      float64 // raw input weight
	Size        int     // font size in pixels
	Row, Col    int     // top-left of the glyph box
	Orientation Orientation
	Height      int // glyph box height as rasterized
	Width       int // glyph box width as rasterized
}

// Box returns the glyph box.
func (p Placement) Box() Rect {
	return Rect{Top: p.Row, Left: p.Col, Height: p.Height, Width: p.Width}
}

// Frame returns the margin-inflated box reserved for the word.
func (p Placement) Frame(margin int) Rect {
	off := margin / 2
	return Rect{Top: p.Row - off, Left: p.Col - off, Height: p.Height + margin, Width: p.Width + margin}
}

// Rect is an axis-aligned box of cells [Top, Top+Height) × [Left, Left+Width).
type Rect struct {
	Top, Left, Height, Width int
}

// Intersects reports whether the two boxes share a cell.
func (r Rect) Intersects(o Rect) bool {
	return r.Top < o.Top+o.Height && o.Top < r.Top+r.Height &&
		r.Left < o.Left+o.Width && o.Left < r.Left+r.Width
}

// Within reports whether r lies inside a width × height canvas.
func (r Rect) Within(width, height int) bool {
	return r.Top >= 0 && r.Left >= 0 && r.Top+r.Height <= height && r.Left+r.Width <= width
}

// Result is the outcome of one layout run.
type Result struct {
	Width, Height int
	Margin        int
	Placements    []Placement
	Skipped       []int   // input indices of words that did not fit
	Warning       error   // ErrEmptyInput, *ExhaustedError, or nil
	Coverage      float64 // fraction of canvas cells occupied
}

// Complete reports whether every word was placed.
func (r *Result) Complete() bool { return r.Warning == nil }

// =============================================================================
// Orientation
// =============================================================================

// Orientation is a discrete text rotation.
type Orientation int

const (
	// Horizontal draws the word unrotated.
	Horizontal Orientation = iota
	// Vertical draws the word rotated 90° counter-clockwise.
	Vertical
)

// DefaultOrientations is the set used when a Config lists none.
var DefaultOrientations = []Orientation{Horizontal, Vertical}

// String returns "horizontal" or "vertical".
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

// ParseOrientation accepts the names produced by String.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "0":
		return Horizontal, nil
	case "vertical", "v", "90":
		return Vertical, nil
	}
	return 0, fmt.Errorf("unknown orientation %q (must be horizontal or vertical)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if o != Horizontal && o != Vertical {
		return nil, fmt.Errorf("unknown orientation %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// =============================================================================
// Collaborators
// =============================================================================

// Rasterizer turns a word into a glyph mask at a size and orientation.
// It returns an error wrapping ErrUnrenderable when the text cannot be shaped
// at that size.
type Rasterizer interface {
	Render(text string, size int, o Orientation) (occupancy.Mask, error)
}

// Measurer is implemented by rasterizers that can report a glyph box
// without drawing it. The engine uses it to skip sizes that cannot fit.
type Measurer interface {
	Measure(text string, size int, o Orientation) (h, w int, err error)
}

// RandomSource supplies orientation choices. *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// NewRandom returns a PCG-backed source seeded for reproducible runs.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
