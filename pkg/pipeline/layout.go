package pipeline

import (
	"errors"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
	pkgio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render/raster"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout validates words, assigns colors to words without one and
// places them on the canvas. The caller's slice is not modified.
//
// A run that stops early is not an error: the returned layout carries the
// placed prefix, the skipped words and a warning.
func GenerateLayout(words []cloud.Word, opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, err
	}
	if err := ValidateWords(words); err != nil {
		return layout.Layout{}, err
	}

	colored, err := colorWords(words, opts)
	if err != nil {
		return layout.Layout{}, err
	}

	r, err := raster.NewNamed(opts.Font)
	if err != nil {
		return layout.Layout{}, errs.Wrap(errs.ErrCodeInvalidFont, err, "load font %q", opts.Font)
	}
	engine, err := cloud.NewEngine(opts.EngineConfig(), r, cloud.NewRandom(opts.Seed), cloud.WithLogger(opts.Logger))
	if err != nil {
		return layout.Layout{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "configure engine")
	}

	res, err := engine.Run(colored)
	if err != nil {
		return layout.Layout{}, classifyEngineError(err)
	}
	// The engine logs empty input itself.
	if res.Warning != nil && !errors.Is(res.Warning, cloud.ErrEmptyInput) {
		opts.Logger.Warn("canvas exhausted", "placed", len(res.Placements), "skipped", len(res.Skipped), "reason", res.Warning)
	}
	return layout.FromResult(res, colored, opts.Settings()), nil
}

// ValidateWords checks the word count and every word. No words is valid.
func ValidateWords(words []cloud.Word) error {
	if err := errs.ValidateWordCount(len(words)); err != nil {
		return err
	}
	for i, w := range words {
		if err := errs.ValidateWord(w.Text, w.Weight); err != nil {
			return errs.Wrap(errs.GetCode(err), err, "word %d", i+1)
		}
		if err := errs.ValidateColor(w.Color); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidColor, err, "word %d (%q)", i+1, w.Text)
		}
	}
	return nil
}

// colorWords copies words and fills missing colors from the palette.
func colorWords(words []cloud.Word, opts Options) ([]cloud.Word, error) {
	out := make([]cloud.Word, len(words))
	for i, w := range words {
		w.Color = pkgio.NormalizeColor(w.Color)
		out[i] = w
	}
	var popts []pkgio.PaletteOption
	if opts.Palette != "" {
		colors, err := pkgio.ParsePalette(opts.Palette)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidColor, err, "parse palette")
		}
		if len(colors) > 0 {
			popts = append(popts, pkgio.WithColors(colors...))
		}
	}
	pkgio.NewPalette(opts.Seed, popts...).Fill(out)
	return out, nil
}

func classifyEngineError(err error) error {
	switch {
	case errors.Is(err, cloud.ErrInvalidWord):
		return errs.Wrap(errs.ErrCodeInvalidWord, err, "invalid word")
	default:
		return errs.Wrap(errs.ErrCodeRenderFailed, err, "layout")
	}
}

// LayoutFromData parses a serialized layout, mapping failures to
// ErrCodeInvalidLayout.
func LayoutFromData(data []byte) (layout.Layout, error) {
	l, err := layout.Unmarshal(data)
	if err != nil {
		return layout.Layout{}, errs.Wrap(errs.ErrCodeInvalidLayout, err, "parse layout")
	}
	return l, nil
}
