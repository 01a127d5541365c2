package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/observability"
)

var testWords = []cloud.Word{
	{Text: "cloud", Weight: 9},
	{Text: "word", Weight: 5, Color: "#FF8800"},
	{Text: "go", Weight: 2},
}

func smallOpts() Options {
	return Options{Width: 240, Height: 120, MaxFontSize: 48, Formats: []string{FormatPNG, FormatSVG, FormatJSON}}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errs.GetCode(err))
		}
	}
}

func TestSetDefaults(t *testing.T) {
	o := DefaultOptions()
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if o.Width != DefaultWidth || o.Height != DefaultHeight || o.Margin != DefaultMargin {
		t.Errorf("canvas = %dx%d m%d", o.Width, o.Height, o.Margin)
	}
	if o.Sizing != string(cloud.SizingRankOnly) || o.Stamp != string(cloud.StampBox) {
		t.Errorf("sizing %q stamp %q", o.Sizing, o.Stamp)
	}
	if len(o.Orientations) != 2 || len(o.Formats) != 1 || o.Formats[0] != DefaultFormat {
		t.Errorf("orientations %v formats %v", o.Orientations, o.Formats)
	}
	if o.Seed != DefaultSeed || o.Logger == nil {
		t.Error("seed and logger should be defaulted")
	}
	// Idempotent.
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Error(err)
	}
}

func TestZeroMarginAndSeedKept(t *testing.T) {
	o := smallOpts()
	if err := o.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	if cfg := o.EngineConfig(); cfg.Margin != 0 {
		t.Errorf("engine margin = %d, want 0", cfg.Margin)
	}
	if o.Seed != 0 {
		t.Errorf("seed = %d, want 0", o.Seed)
	}

	l, err := GenerateLayout(testWords, smallOpts())
	if err != nil {
		t.Fatal(err)
	}
	if l.Margin != 0 || l.Seed != 0 {
		t.Errorf("layout margin %d seed %d, want 0 and 0", l.Margin, l.Seed)
	}
}

func TestValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Options)
		code errs.Code
	}{
		{"negative width", func(o *Options) { o.Width = -1 }, errs.ErrCodeInvalidCanvas},
		{"margin too large", func(o *Options) { o.Width, o.Height, o.Margin = 10, 10, 10 }, errs.ErrCodeInvalidCanvas},
		{"bad sizing", func(o *Options) { o.Sizing = "linear" }, errs.ErrCodeInvalidSizing},
		{"bad stamp", func(o *Options) { o.Stamp = "pixel" }, errs.ErrCodeInvalidInput},
		{"bad orientation", func(o *Options) { o.Orientations = []string{"diagonal"} }, errs.ErrCodeInvalidInput},
		{"font path not allowed", func(o *Options) { o.Font = "/tmp/x.ttf" }, errs.ErrCodeInvalidFont},
		{"bad palette", func(o *Options) { o.Palette = "ff0000,nothex" }, errs.ErrCodeInvalidColor},
		{"negative anchors", func(o *Options) { o.MaxAnchors = -1 }, errs.ErrCodeInvalidInput},
		{"font size too large", func(o *Options) { o.MaxFontSize = errs.MaxFontSize + 1 }, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Options{}
			tt.mod(&o)
			err := o.ValidateForLayout()
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateForRender(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Options)
	}{
		{"bad format", func(o *Options) { o.Formats = []string{"gif"} }},
		{"bad background", func(o *Options) { o.Background = "zzz" }},
		{"scale too large", func(o *Options) { o.Scale = 100 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Options{}
			tt.mod(&o)
			if err := o.ValidateForRender(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	o := Options{Orientations: []string{"vertical"}, Stamp: "glyph", ContinueOnSkip: true}
	if err := o.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	cfg := o.EngineConfig()
	if len(cfg.Orientations) != 1 || cfg.Orientations[0] != cloud.Vertical {
		t.Errorf("orientations = %v", cfg.Orientations)
	}
	if cfg.Stamp != cloud.StampGlyph || !cfg.ContinueOnSkip || cfg.Width != DefaultWidth {
		t.Errorf("config = %+v", cfg)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	a := Options{Background: "000000", Scale: 1}
	b := Options{Background: "ffffff", Scale: 2}
	if a.ArtifactKeyOpts(FormatJSON).Background != b.ArtifactKeyOpts(FormatJSON).Background {
		t.Error("JSON artifacts should not depend on colors")
	}
	if a.ArtifactKeyOpts(FormatPNG) == b.ArtifactKeyOpts(FormatPNG) {
		t.Error("PNG artifacts should depend on colors and scale")
	}
}

func TestGenerateLayout(t *testing.T) {
	words := append([]cloud.Word(nil), testWords...)
	l, err := GenerateLayout(words, smallOpts())
	if err != nil {
		t.Fatalf("GenerateLayout: %v", err)
	}
	if len(l.Words) == 0 {
		t.Fatal("no words placed")
	}
	if l.Words[0].Text != "cloud" {
		t.Errorf("first placed = %q, want the heaviest word", l.Words[0].Text)
	}
	for _, w := range l.Words {
		if w.Color == "" {
			t.Errorf("%q has no color", w.Text)
		}
		if w.Text == "word" && w.Color != "ff8800" {
			t.Errorf("explicit color = %q, want normalized ff8800", w.Color)
		}
	}
	if words[0].Color != "" {
		t.Error("GenerateLayout should not modify the caller's words")
	}

	again, err := GenerateLayout(words, smallOpts())
	if err != nil {
		t.Fatal(err)
	}
	for i := range l.Words {
		if l.Words[i] != again.Words[i] {
			t.Errorf("word %d differs between runs: %+v vs %+v", i, l.Words[i], again.Words[i])
		}
	}
}

func TestGenerateLayoutErrors(t *testing.T) {
	tests := []struct {
		name  string
		words []cloud.Word
		code  errs.Code
	}{
		{"blank word", []cloud.Word{{Text: " ", Weight: 1}}, errs.ErrCodeInvalidWord},
		{"negative weight", []cloud.Word{{Text: "a", Weight: -1}}, errs.ErrCodeInvalidWord},
		{"bad color", []cloud.Word{{Text: "a", Weight: 1, Color: "red"}}, errs.ErrCodeInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateLayout(tt.words, smallOpts())
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestGenerateLayoutEmpty(t *testing.T) {
	for _, words := range [][]cloud.Word{nil, {}} {
		l, err := GenerateLayout(words, smallOpts())
		if err != nil {
			t.Fatalf("empty input should not be an error: %v", err)
		}
		if len(l.Words) != 0 || l.Complete || l.Warning != cloud.ErrEmptyInput.Error() {
			t.Errorf("words=%d complete=%v warning=%q", len(l.Words), l.Complete, l.Warning)
		}
	}
}

func TestGenerateLayoutExhausted(t *testing.T) {
	o := Options{Width: 60, Height: 30, MaxFontSize: 20, MaxShrinkSteps: 2}
	l, err := GenerateLayout([]cloud.Word{
		{Text: "a", Weight: 3},
		{Text: "unplaceablylongword", Weight: 2},
		{Text: "b", Weight: 1},
	}, o)
	if err != nil {
		t.Fatalf("exhaustion should not be an error: %v", err)
	}
	if l.Complete || l.Warning == "" || len(l.Skipped) == 0 {
		t.Errorf("complete=%v warning=%q skipped=%v", l.Complete, l.Warning, l.Skipped)
	}
}

func TestRunnerCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	first, err := r.Execute(ctx, testWords, smallOpts())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(ctx, testWords, smallOpts())
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	for format, data := range first.Artifacts {
		if !bytes.Equal(data, second.Artifacts[format]) {
			t.Errorf("%s artifact differs between cached and fresh run", format)
		}
	}

	refresh := smallOpts()
	refresh.Refresh = true
	third, err := r.Execute(ctx, testWords, refresh)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("Refresh should bypass the cache")
	}

	other := smallOpts()
	other.Seed = 7
	fourth, err := r.Execute(ctx, testWords, other)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.LayoutHit {
		t.Error("a different seed should miss the cache")
	}
}

func TestRenderArtifacts(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	o := smallOpts()
	o.Scale = 2
	res, err := r.Execute(ctx, testWords, o)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(res.Artifacts[FormatPNG]))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != 480 || cfg.Height != 240 {
		t.Errorf("png = %dx%d, want 480x240", cfg.Width, cfg.Height)
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact missing root element")
	}
	l, err := LayoutFromData(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(l.Words) != len(res.Layout.Words) {
		t.Errorf("json has %d words, want %d", len(l.Words), len(res.Layout.Words))
	}
}

func TestBatch(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	jobs := []Job{
		{Name: "ok", Words: testWords, Opts: smallOpts()},
		{Name: "bad", Words: []cloud.Word{{Text: "", Weight: 1}}, Opts: smallOpts()},
		{Name: "ok2", Words: testWords[:1], Opts: smallOpts()},
	}
	results, err := r.Batch(context.Background(), jobs, 2)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	for i, res := range results {
		if res.Name != jobs[i].Name {
			t.Errorf("result %d name = %q, want %q", i, res.Name, jobs[i].Name)
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("valid jobs failed: %v, %v", results[0].Err, results[2].Err)
	}
	if results[1].Err == nil {
		t.Error("invalid job should fail")
	}
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil)
	_, err := r.Batch(ctx, []Job{{Name: "a", Words: testWords, Opts: smallOpts()}}, 1)
	if err == nil {
		t.Error("cancelled batch should return an error")
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets atomic.Int32
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits.Add(1) }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses.Add(1) }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets.Add(1) }

func TestCacheHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	o := smallOpts()
	o.Formats = []string{FormatJSON}
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), testWords, o); err != nil {
			t.Fatal(err)
		}
	}
	// First run misses and stores layout + json; second run hits both.
	if hooks.misses.Load() != 2 || hooks.sets.Load() != 2 || hooks.hits.Load() != 2 {
		t.Errorf("hits=%d misses=%d sets=%d", hooks.hits.Load(), hooks.misses.Load(), hooks.sets.Load())
	}
}
