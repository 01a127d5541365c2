package cloud

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/core/occupancy"
)

// StampMode selects what a committed word marks as occupied.
type StampMode string

const (
	// StampBox reserves the whole margin-inflated box, so no later box can
	// intersect it.
	StampBox StampMode = "box"
	// StampGlyph marks only the rasterized glyph pixels, letting later words
	// nest inside the empty parts of earlier boxes.
	StampGlyph StampMode = "glyph"
)

// Config holds the per-run engine settings.
type Config struct {
	Width, Height  int           // canvas size in pixels
	Margin         int           // pixels added to both axes of every glyph box
	Sizing         SizingMode    // rank-only (default) or weight-aware
	MaxFontSize    int           // starting ceiling; DefaultMaxFontSize if zero
	Orientations   []Orientation // candidates per word; DefaultOrientations if empty
	Stamp          StampMode     // StampBox if empty
	ContinueOnSkip bool          // keep going after a word fails to fit
	MaxShrinkSteps int           // per-word bound on size decrements; 0 = none
	MaxAnchors     int           // per-search bound on anchors scanned; 0 = none
	Debug          bool          // verify the summed-area table after each stamp
}

func (c *Config) setDefaults() {
	if c.MaxFontSize == 0 {
		c.MaxFontSize = DefaultMaxFontSize
	}
	if len(c.Orientations) == 0 {
		c.Orientations = DefaultOrientations
	}
	if c.Stamp == "" {
		c.Stamp = StampBox
	}
	if c.Sizing == "" {
		c.Sizing = SizingRankOnly
	}
}

func (c *Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %d", c.Margin)
	}
	if c.MaxShrinkSteps < 0 || c.MaxAnchors < 0 {
		return errors.New("search bounds must not be negative")
	}
	if c.Stamp != StampBox && c.Stamp != StampGlyph {
		return fmt.Errorf("unknown stamp mode %q (must be %s or %s)", c.Stamp, StampBox, StampGlyph)
	}
	for _, o := range c.Orientations {
		if o != Horizontal && o != Vertical {
			return fmt.Errorf("unknown orientation %d", int(o))
		}
	}
	return nil
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-word debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPolicy overrides the sizing policy derived from Config.Sizing.
func WithPolicy(p SizingPolicy) Option {
	return func(e *Engine) {
		if p != nil {
			e.policy = p
		}
	}
}

// Engine runs the greedy placement loop. An Engine may run many word lists,
// one at a time; each Run builds its own occupancy map. The random source is
// consumed across runs, so concurrent use requires separate engines.
type Engine struct {
	cfg    Config
	policy SizingPolicy
	raster Rasterizer
	rng    RandomSource
	search occupancy.Searcher
	logger *log.Logger
}

// NewEngine validates cfg and returns an engine drawing glyphs with r and
// orientations with rng.
func NewEngine(cfg Config, r Rasterizer, rng RandomSource, opts ...Option) (*Engine, error) {
	if r == nil {
		return nil, errors.New("rasterizer is required")
	}
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	policy, err := NewSizingPolicy(cfg.Sizing, cfg.MaxFontSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		policy: policy,
		raster: r,
		rng:    rng,
		search: occupancy.Searcher{MaxAnchors: cfg.MaxAnchors},
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config { return e.cfg }

type rankedWord struct {
	Word
	index  int
	weight float64 // normalized to the heaviest word
}

// rank orders words by descending weight, keeping input order for ties.
func rank(words []Word) []rankedWord {
	ranked := make([]rankedWord, len(words))
	var heaviest float64
	for i, w := range words {
		ranked[i] = rankedWord{Word: w, index: i}
		heaviest = max(heaviest, w.Weight)
	}
	for i := range ranked {
		ranked[i].weight = 1
		if heaviest > 0 {
			ranked[i].weight = ranked[i].Weight / heaviest
		}
	}
	slices.SortStableFunc(ranked, func(a, b rankedWord) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	return ranked
}

// Run lays out words and returns the committed placements.
//
// Running out of room is reported through Result.Warning, not as an error.
// Errors are returned for invalid words, rasterizer failures other than
// ErrUnrenderable, and occupancy-map misuse.
func (e *Engine) Run(words []Word) (*Result, error) {
	res := &Result{Width: e.cfg.Width, Height: e.cfg.Height, Margin: e.cfg.Margin}
	if len(words) == 0 {
		e.logger.Warn("no words to lay out")
		res.Warning = ErrEmptyInput
		return res, nil
	}
	for i, w := range words {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
	}

	m, err := occupancy.New(e.cfg.Width, e.cfg.Height)
	if err != nil {
		return nil, err
	}

	ranked := rank(words)
	prev := 0
	for r, w := range ranked {
		p, ok, err := e.place(m, r, w, prev)
		if err != nil {
			return nil, fmt.Errorf("place %q: %w", w.Text, err)
		}
		if ok {
			res.Placements = append(res.Placements, p)
			prev = p.Size
			continue
		}

		res.Skipped = append(res.Skipped, w.index)
		if res.Warning == nil {
			remaining := len(ranked) - r - 1
			if e.cfg.ContinueOnSkip {
				remaining = 0
			}
			res.Warning = &ExhaustedError{Text: w.Text, Rank: r, Remaining: remaining}
		}
		if !e.cfg.ContinueOnSkip {
			e.logger.Debug("canvas exhausted", "word", w.Text, "rank", r, "placed", len(res.Placements))
			break
		}
	}

	res.Coverage = m.Coverage()
	return res, nil
}

// placement states for a single word
type state int

const (
	stateSizing state = iota
	stateFitting
	stateCommitted
	stateSkipped
)

// place drives one word through Sizing → Fitting → Committed | Skipped.
func (e *Engine) place(m *occupancy.Map, rank int, w rankedWord, prev int) (Placement, bool, error) {
	var (
		st     = stateSizing
		size   int
		steps  int
		orient Orientation
		glyph  occupancy.Mask
		anchor occupancy.Point
	)

	for {
		switch st {
		case stateSizing:
			size = min(e.policy.InitialSize(rank, w.weight), e.cfg.MaxFontSize)
			if e.policy.CapAtPrevious() && prev > 0 {
				size = min(size, prev)
			}
			orient = e.cfg.Orientations[e.rng.IntN(len(e.cfg.Orientations))]
			st = stateFitting

		case stateFitting:
			if size <= 0 || (e.cfg.MaxShrinkSteps > 0 && steps > e.cfg.MaxShrinkSteps) {
				st = stateSkipped
				continue
			}
			mask, at, found, err := e.fit(m, w.Text, size, orient)
			if err != nil {
				return Placement{}, false, err
			}
			if found {
				glyph, anchor = mask, at
				st = stateCommitted
				continue
			}
			size--
			steps++

		case stateCommitted:
			p, err := e.commit(m, rank, w, size, orient, glyph, anchor)
			if err != nil {
				return Placement{}, false, err
			}
			e.logger.Debug("placed word",
				"word", w.Text, "rank", rank, "size", size,
				"orientation", orient, "row", p.Row, "col", p.Col, "shrinks", steps)
			return p, true, nil

		case stateSkipped:
			e.logger.Debug("word did not fit", "word", w.Text, "rank", rank, "shrinks", steps)
			return Placement{}, false, nil
		}
	}
}

// fit rasterizes the word at size and searches for room for its box plus
// margin. An unrenderable size is a miss, not an error.
func (e *Engine) fit(m *occupancy.Map, text string, size int, o Orientation) (occupancy.Mask, occupancy.Point, bool, error) {
	margin := e.cfg.Margin

	if ms, ok := e.raster.(Measurer); ok {
		h, w, err := ms.Measure(text, size, o)
		if errors.Is(err, ErrUnrenderable) {
			return nil, occupancy.Point{}, false, nil
		}
		if err != nil {
			return nil, occupancy.Point{}, false, err
		}
		if h+margin > m.Height() || w+margin > m.Width() {
			return nil, occupancy.Point{}, false, nil
		}
	}

	mask, err := e.raster.Render(text, size, o)
	if errors.Is(err, ErrUnrenderable) {
		return nil, occupancy.Point{}, false, nil
	}
	if err != nil {
		return nil, occupancy.Point{}, false, err
	}
	h, w := mask.Size()
	if h <= 0 || w <= 0 {
		return nil, occupancy.Point{}, false, nil
	}

	at, found := e.search.Find(m, h+margin, w+margin)
	return mask, at, found, nil
}

// commit stamps the word into the map and builds its placement record.
func (e *Engine) commit(m *occupancy.Map, rank int, w rankedWord, size int, o Orientation, glyph occupancy.Mask, at occupancy.Point) (Placement, error) {
	h, wd := glyph.Size()
	off := e.cfg.Margin / 2
	row, col := at.Row+off, at.Col+off

	var err error
	switch e.cfg.Stamp {
	case StampGlyph:
		err = m.Stamp(glyph, row, col)
	default:
		err = m.Stamp(occupancy.Solid(h+e.cfg.Margin, wd+e.cfg.Margin), at.Row, at.Col)
	}
	if err != nil {
		return Placement{}, err
	}
	if e.cfg.Debug {
		if err := m.Verify(); err != nil {
			return Placement{}, err
		}
	}

	return Placement{
		Index:       w.index,
		Rank:        rank,
		Text:        w.Text,
		Color:       w.Color,
		Weight:      w.Weight,
		Size:        size,
		Row:         row,
		Col:         col,
		Orientation: o,
		Height:      h,
		Width:       wd,
	}, nil
}
