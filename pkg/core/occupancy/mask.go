package occupancy

// Mask is a boolean raster stamped into a [Map].
type Mask interface {
	// Size returns the mask's height and width in cells.
	Size() (h, w int)
	// At reports whether cell (r, c) is set. r and c are within Size.
	At(r, c int) bool
}

// Solid returns a mask of the given size with every cell set.
func Solid(h, w int) Mask { return solid{h: h, w: w} }

type solid struct{ h, w int }

func (s solid) Size() (int, int)  { return s.h, s.w }
func (s solid) At(int, int) bool { return true }

// Bitmap is a dense row-major [Mask].
type Bitmap struct {
	H, W int
	Bits []bool
}

// NewBitmap allocates an empty h × w bitmap.
func NewBitmap(h, w int) *Bitmap {
	return &Bitmap{H: h, W: w, Bits: make([]bool, h*w)}
}

// Size implements Mask.
func (b *Bitmap) Size() (int, int) { return b.H, b.W }

// At implements Mask.
func (b *Bitmap) At(r, c int) bool { return b.Bits[r*b.W+c] }

// Set marks cell (r, c).
func (b *Bitmap) Set(r, c int, v bool) { b.Bits[r*b.W+c] = v }

// Count returns the number of set cells.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.Bits {
		if v {
			n++
		}
	}
	return n
}

// Rotate90 returns the bitmap rotated 90° counter-clockwise. The result has
// the height and width swapped: cell (r, c) of the result is cell
// (c, W-1-r) of b.
func (b *Bitmap) Rotate90() *Bitmap {
	out := NewBitmap(b.W, b.H)
	for r := 0; r < out.H; r++ {
		for c := 0; c < out.W; c++ {
			out.Bits[r*out.W+c] = b.Bits[c*b.W+(b.W-1-r)]
		}
	}
	return out
}
