package cloud

import (
	"fmt"
	"math"
)

// DefaultMaxFontSize is the starting ceiling for every word. It is larger
// than any practical canvas so the shrink loop always has room to work.
const DefaultMaxFontSize = 1000

// SizingMode selects a SizingPolicy.
type SizingMode string

const (
	// SizingRankOnly sizes words by rank alone.
	SizingRankOnly SizingMode = "rank-only"
	// SizingWeightAware sizes words from their normalized weight.
	SizingWeightAware SizingMode = "weight-aware"
)

// SizingPolicy proposes the first font size tried for a word.
type SizingPolicy interface {
	// InitialSize returns a size in pixels for the word at rank with the given
	// normalized weight (1.0 for the heaviest word).
	InitialSize(rank int, weight float64) int
	// CapAtPrevious reports whether the engine must bound each candidate by
	// the previously committed size.
	CapAtPrevious() bool
}

// NewSizingPolicy returns the policy for mode with the given ceiling.
// An empty mode selects rank-only sizing.
func NewSizingPolicy(mode SizingMode, ceiling int) (SizingPolicy, error) {
	if ceiling <= 0 {
		return nil, fmt.Errorf("max font size must be positive, got %d", ceiling)
	}
	switch mode {
	case SizingRankOnly, "":
		return RankOnly{Ceiling: ceiling}, nil
	case SizingWeightAware:
		return WeightAware{Ceiling: ceiling}, nil
	}
	return nil, fmt.Errorf("unknown sizing mode %q (must be %s or %s)", mode, SizingRankOnly, SizingWeightAware)
}

// RankOnly starts every word at the ceiling. Combined with the engine's cap
// at the previous committed size, sizes are non-increasing down the ranking
// even when weights tie.
type RankOnly struct {
	Ceiling int
}

func (p RankOnly) InitialSize(int, float64) int { return p.Ceiling }
func (RankOnly) CapAtPrevious() bool            { return true }

// WeightAware maps normalized weight w through ln(1 + (e-1)·w), which is 0
// at w=0, 1 at w=1, increasing and concave in between.
type WeightAware struct {
	Ceiling int
}

func (p WeightAware) InitialSize(_ int, w float64) int {
	w = max(0, min(w, 1))
	size := int(math.Round(float64(p.Ceiling) * math.Log1p((math.E-1)*w)))
	return max(1, min(size, p.Ceiling))
}

func (WeightAware) CapAtPrevious() bool { return false }
