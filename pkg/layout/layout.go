package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
)

// FormatVersion is the current layout document version.
const FormatVersion = 1

// ErrInvalidLayout is returned when a document fails validation.
var ErrInvalidLayout = errors.New("invalid layout")

// =============================================================================
// Layout - Serialized Cloud
// =============================================================================

// Layout is a finished word cloud: canvas, settings that shaped it, and the
// placed words in rank order.
type Layout struct {
	ID      string `json:"id,omitempty" bson:"_id,omitempty"`
	Version int    `json:"version" bson:"version"`

	// Canvas
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
	Margin int `json:"margin" bson:"margin"`

	// Settings
	Font   string `json:"font,omitempty" bson:"font,omitempty"`
	Sizing string `json:"sizing,omitempty" bson:"sizing,omitempty"`
	Stamp  string `json:"stamp,omitempty" bson:"stamp,omitempty"`
	Seed   uint64 `json:"seed,omitempty" bson:"seed,omitempty"`

	// Outcome
	Words    []Word   `json:"words" bson:"words"`
	Skipped  []string `json:"skipped,omitempty" bson:"skipped,omitempty"`
	Complete bool     `json:"complete" bson:"complete"`
	Warning  string   `json:"warning,omitempty" bson:"warning,omitempty"`
	Coverage float64  `json:"coverage" bson:"coverage"`

	CreatedAt time.Time `json:"created_at,omitzero" bson:"created_at,omitempty"`
}

// Word is one placed word.
type Word struct {
	Text        string            `json:"text" bson:"text"`
	Color       string            `json:"color,omitempty" bson:"color,omitempty"`
	Weight      float64           `json:"weight" bson:"weight"`
	Rank        int               `json:"rank" bson:"rank"`
	Index       int               `json:"index" bson:"index"`
	Size        int               `json:"size" bson:"size"`
	X           int               `json:"x" bson:"x"`
	Y           int               `json:"y" bson:"y"`
	Width       int               `json:"width" bson:"width"`
	Height      int               `json:"height" bson:"height"`
	Orientation cloud.Orientation `json:"orientation" bson:"orientation"`
}

// Settings records how a layout was produced.
type Settings struct {
	Font   string
	Sizing string
	Stamp  string
	Seed   uint64
}

// FromResult converts an engine result into a document. Skipped words are
// recorded by text, looked up in words.
func FromResult(res *cloud.Result, words []cloud.Word, s Settings) Layout {
	l := Layout{
		Version:  FormatVersion,
		Width:    res.Width,
		Height:   res.Height,
		Margin:   res.Margin,
		Font:     s.Font,
		Sizing:   s.Sizing,
		Stamp:    s.Stamp,
		Seed:     s.Seed,
		Words:    make([]Word, len(res.Placements)),
		Complete: res.Complete(),
		Coverage: res.Coverage,
	}
	if res.Warning != nil {
		l.Warning = res.Warning.Error()
	}
	for i, p := range res.Placements {
		l.Words[i] = Word{
			Text:        p.Text,
			Color:       p.Color,
			Weight:      p.Weight,
			Rank:        p.Rank,
			Index:       p.Index,
			Size:        p.Size,
			X:           p.Col,
			Y:           p.Row,
			Width:       p.Width,
			Height:      p.Height,
			Orientation: p.Orientation,
		}
	}
	for _, idx := range res.Skipped {
		if idx >= 0 && idx < len(words) {
			l.Skipped = append(l.Skipped, words[idx].Text)
		}
	}
	return l
}

// Placements returns the words as engine placements.
func (l Layout) Placements() []cloud.Placement {
	out := make([]cloud.Placement, len(l.Words))
	for i, w := range l.Words {
		out[i] = cloud.Placement{
			Index:       w.Index,
			Rank:        w.Rank,
			Text:        w.Text,
			Color:       w.Color,
			Weight:      w.Weight,
			Size:        w.Size,
			Row:         w.Y,
			Col:         w.X,
			Orientation: w.Orientation,
			Height:      w.Height,
			Width:       w.Width,
		}
	}
	return out
}

// Validate checks that the canvas is positive and every word box lies on it.
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidLayout, l.Width, l.Height)
	}
	if l.Margin < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalidLayout)
	}
	for i, p := range l.Placements() {
		if p.Text == "" || p.Size <= 0 {
			return fmt.Errorf("%w: word %d has no text or size", ErrInvalidLayout, i)
		}
		if !p.Box().Within(l.Width, l.Height) {
			return fmt.Errorf("%w: word %q at (%d, %d) lies outside the canvas", ErrInvalidLayout, p.Text, p.Col, p.Row)
		}
	}
	return nil
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes and validates JSON bytes into a Layout. Documents
// without a version are treated as the current version.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Version == 0 {
		l.Version = FormatVersion
	}
	if l.Version > FormatVersion {
		return Layout{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidLayout, l.Version)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Write encodes l as JSON to w.
func Write(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a Layout from r.
func Read(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, fmt.Errorf("read: %w", err)
	}
	return Unmarshal(data)
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
