package cloud

import (
	"errors"

	"github.com/matzehuels/wordcloud/pkg/core/occupancy"
)

// blockRaster renders every word as a solid block of (size+1) rows by
// len(text)*(size+1) columns, swapped when vertical.
type blockRaster struct {
	calls      int
	unrenderAt map[int]bool // sizes reported as unrenderable
	fail       error
}

func blockSize(text string, size int, o Orientation) (int, int) {
	h, w := size+1, len([]rune(text))*(size+1)
	if o == Vertical {
		h, w = w, h
	}
	return h, w
}

func (b *blockRaster) Render(text string, size int, o Orientation) (occupancy.Mask, error) {
	b.calls++
	if b.fail != nil {
		return nil, b.fail
	}
	if b.unrenderAt[size] {
		return nil, ErrUnrenderable
	}
	h, w := blockSize(text, size, o)
	return occupancy.Solid(h, w), nil
}

// measuringRaster adds a Measure method to blockRaster.
type measuringRaster struct{ blockRaster }

func (m *measuringRaster) Measure(text string, size int, o Orientation) (int, int, error) {
	h, w := blockSize(text, size, o)
	return h, w, nil
}

// fixedRandom always returns the same index.
type fixedRandom int

func (f fixedRandom) IntN(n int) int { return int(f) % n }

// ringGlyph is a hollow one-pixel frame, used to exercise glyph stamping.
func ringGlyph(h, w int) *occupancy.Bitmap {
	b := occupancy.NewBitmap(h, w)
	for r := range h {
		for c := range w {
			if r == 0 || c == 0 || r == h-1 || c == w-1 {
				b.Set(r, c, true)
			}
		}
	}
	return b
}

type ringRaster struct{}

func (ringRaster) Render(text string, size int, o Orientation) (occupancy.Mask, error) {
	h, w := blockSize(text, size, o)
	return ringGlyph(h, w), nil
}

var errBoom = errors.New("boom")
