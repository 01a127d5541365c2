// Package pipeline provides the word cloud pipeline shared by the CLI and
// the HTTP API.
//
// This package implements the complete read → layout → render pipeline. By
// centralizing it, every entry point applies the same defaults, validation
// and caching.
//
// # Architecture
//
// The pipeline consists of two cached stages:
//
//  1. Layout: rank the words and place them on the canvas with [cloud.Engine]
//  2. Render: draw a layout as PNG, SVG, PDF or JSON
//
// Reading word lists is left to the caller (see package io), so the stages
// take []cloud.Word and [layout.Layout] values.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Width: 800, Height: 600, Formats: []string{"png"}}
//	result, err := runner.Execute(ctx, words, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Run individual stages:
//
//	l, err := runner.Layout(ctx, words, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600

	// DefaultMargin is the default padding added around every word box.
	DefaultMargin = 4

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultMaxFontSize is the starting size of the highest-ranked word.
	DefaultMaxFontSize = 200

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0

	// DefaultBackground and DefaultForeground are the canvas and fallback
	// word colors.
	DefaultBackground = "000000"
	DefaultForeground = "ffffff"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatPNG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. It is decoded from
// API request bodies (JSON) and config files (TOML).
type Options struct {
	// Layout options
	Width          int      `json:"width,omitempty" toml:"width"`
	Height         int      `json:"height,omitempty" toml:"height"`
	Margin         int      `json:"margin,omitempty" toml:"margin"`
	Font           string   `json:"font,omitempty" toml:"font"`
	Sizing         string   `json:"sizing,omitempty" toml:"sizing"`
	MaxFontSize    int      `json:"max_font_size,omitempty" toml:"max_font_size"`
	Orientations   []string `json:"orientations,omitempty" toml:"orientations"`
	Stamp          string   `json:"stamp,omitempty" toml:"stamp"`
	Seed           uint64   `json:"seed,omitempty" toml:"seed"`
	ContinueOnSkip bool     `json:"continue_on_skip,omitempty" toml:"continue_on_skip"`
	MaxShrinkSteps int      `json:"max_shrink_steps,omitempty" toml:"max_shrink_steps"`
	MaxAnchors     int      `json:"max_anchors,omitempty" toml:"max_anchors"`

	// Color options, applied to words without a color before layout
	Palette string `json:"palette,omitempty" toml:"palette"` // comma-separated hex; empty = random hues

	// Render options
	Formats    []string `json:"formats,omitempty" toml:"formats"`
	Background string   `json:"background,omitempty" toml:"background"`
	Foreground string   `json:"foreground,omitempty" toml:"foreground"`
	Scale      float64  `json:"scale,omitempty" toml:"scale"`
	EmbedFont  bool     `json:"embed_font,omitempty" toml:"embed_font"`
	Vector     bool     `json:"vector,omitempty" toml:"vector"` // PNG through SVG and rsvg-convert

	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger         *log.Logger `json:"-" toml:"-"`
	AllowFontPaths bool        `json:"-" toml:"-"` // false for API requests
	Debug          bool        `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the placed cloud.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Words      int
	Placed     int
	Skipped    int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.ValidateOneOf(errs.ErrCodeInvalidFormat, "format", format, FormatSVG, FormatPNG, FormatPDF, FormatJSON)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSizing checks that a sizing mode is valid.
func ValidateSizing(mode string) error {
	return errs.ValidateOneOf(errs.ErrCodeInvalidSizing, "sizing", mode,
		string(cloud.SizingRankOnly), string(cloud.SizingWeightAware))
}

// ValidateStamp checks that a stamp mode is valid.
func ValidateStamp(mode string) error {
	return errs.ValidateOneOf(errs.ErrCodeInvalidInput, "stamp", mode,
		string(cloud.StampBox), string(cloud.StampGlyph))
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// DefaultOptions returns options with every layout and render default set.
// Callers overlay flags, config files or request bodies on top of it.
func DefaultOptions() Options {
	o := Options{Margin: DefaultMargin, Seed: DefaultSeed}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	return o
}

// SetLayoutDefaults fills unset layout fields. Margin and Seed are left
// alone because zero is a valid value for both; DefaultOptions sets them.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Font == "" {
		o.Font = fonts.Default
	}
	if o.Sizing == "" {
		o.Sizing = string(cloud.SizingRankOnly)
	}
	if o.MaxFontSize == 0 {
		o.MaxFontSize = DefaultMaxFontSize
	}
	if len(o.Orientations) == 0 {
		o.Orientations = []string{cloud.Horizontal.String(), cloud.Vertical.String()}
	}
	if o.Stamp == "" {
		o.Stamp = string(cloud.StampBox)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errs.ValidateCanvas(o.Width, o.Height, o.Margin); err != nil {
		return err
	}
	if err := errs.ValidateFontName(o.Font, o.AllowFontPaths); err != nil {
		return err
	}
	if err := ValidateSizing(o.Sizing); err != nil {
		return err
	}
	if err := ValidateStamp(o.Stamp); err != nil {
		return err
	}
	if err := errs.ValidateFontSize(o.MaxFontSize); err != nil {
		return err
	}
	if o.MaxShrinkSteps < 0 || o.MaxAnchors < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_shrink_steps and max_anchors must not be negative")
	}
	if _, err := o.orientations(); err != nil {
		return err
	}
	for _, c := range strings.Split(o.Palette, ",") {
		if err := errs.ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Foreground == "" {
		o.Foreground = DefaultForeground
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errs.ValidateColor(o.Background); err != nil {
		return err
	}
	if err := errs.ValidateColor(o.Foreground); err != nil {
		return err
	}
	if o.Scale <= 0 || o.Scale > 8 {
		return errs.New(errs.ErrCodeInvalidInput, "scale must be in (0, 8], got %g", o.Scale)
	}
	return nil
}

// EngineConfig converts layout options into an engine configuration.
// Options must have passed ValidateForLayout.
func (o *Options) EngineConfig() cloud.Config {
	orients, _ := o.orientations()
	return cloud.Config{
		Width:          o.Width,
		Height:         o.Height,
		Margin:         o.Margin,
		Sizing:         cloud.SizingMode(o.Sizing),
		MaxFontSize:    o.MaxFontSize,
		Orientations:   orients,
		Stamp:          cloud.StampMode(o.Stamp),
		ContinueOnSkip: o.ContinueOnSkip,
		MaxShrinkSteps: o.MaxShrinkSteps,
		MaxAnchors:     o.MaxAnchors,
		Debug:          o.Debug,
	}
}

// Settings returns the layout settings recorded in the document.
func (o *Options) Settings() layout.Settings {
	return layout.Settings{Font: o.Font, Sizing: o.Sizing, Stamp: o.Stamp, Seed: o.Seed}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:          o.Width,
		Height:         o.Height,
		Margin:         o.Margin,
		Font:           o.Font,
		Sizing:         o.Sizing,
		MaxFontSize:    o.MaxFontSize,
		Orientations:   o.Orientations,
		Stamp:          o.Stamp,
		Seed:           o.Seed,
		ContinueOnSkip: o.ContinueOnSkip,
		MaxShrinkSteps: o.MaxShrinkSteps,
		MaxAnchors:     o.MaxAnchors,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		k.Background, k.Foreground, k.Scale = o.Background, o.Foreground, o.Scale
		k.EmbedFont = o.Vector
	case FormatSVG, FormatPDF:
		k.Background, k.Foreground = o.Background, o.Foreground
		k.EmbedFont = o.EmbedFont
	}
	return k
}

func (o *Options) orientations() ([]cloud.Orientation, error) {
	out := make([]cloud.Orientation, 0, len(o.Orientations))
	for _, s := range o.Orientations {
		orient, err := cloud.ParseOrientation(s)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid orientation %q", s)
		}
		out = append(out, orient)
	}
	return out, nil
}
