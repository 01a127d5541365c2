package cloud

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is reported when a run receives no words.
	ErrEmptyInput = errors.New("no words to lay out")

	// ErrUnrenderable is returned by a Rasterizer that cannot shape a word at
	// the requested size. The engine treats it as a failed fit.
	ErrUnrenderable = errors.New("unrenderable glyphs")

	// ErrCanvasExhausted is reported when a word does not fit at any size.
	ErrCanvasExhausted = errors.New("canvas exhausted")

	// ErrInvalidWord is returned for words with empty text or a bad weight.
	ErrInvalidWord = errors.New("invalid word")
)

// ExhaustedError records the word that ended a run early.
type ExhaustedError struct {
	Text      string // word that did not fit
	Rank      int    // its rank in descending weight order
	Remaining int    // words left unattempted after it
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%v: %q (rank %d) did not fit, %d words not attempted",
		ErrCanvasExhausted, e.Text, e.Rank, e.Remaining)
}

// Unwrap allows errors.Is(err, ErrCanvasExhausted).
func (e *ExhaustedError) Unwrap() error { return ErrCanvasExhausted }
