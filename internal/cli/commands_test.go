package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

func TestLayoutThenVisualize(t *testing.T) {
	isolateCache(t)
	words := writeTestWords(t, "words.csv")

	out, err := runCLI(t, append([]string{"layout", words}, smallCanvas...)...)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	layoutPath := strings.TrimSuffix(words, ".csv") + ".layout.json"
	l, err := layout.ReadFile(layoutPath)
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if len(l.Words) == 0 {
		t.Fatal("layout placed no words")
	}
	if !strings.Contains(out, "visualize "+layoutPath) {
		t.Errorf("output should suggest the next step, got:\n%s", out)
	}

	if _, err := runCLI(t, "visualize", layoutPath, "-f", "svg,json,png"); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	base := strings.TrimSuffix(words, ".csv")
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("svg artifact is not an SVG document")
	}
	png, err := os.ReadFile(base + ".png")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("png artifact lacks the PNG signature")
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Error(err)
	}
}

func TestRenderSingleOutput(t *testing.T) {
	isolateCache(t)
	words := writeTestWords(t, "words.csv")
	out := filepath.Join(t.TempDir(), "nested", "cloud.png")

	if _, err := runCLI(t, append([]string{"render", words, "-o", out}, smallCanvas...)...); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output lacks the PNG signature")
	}
}

func TestRenderUsesCache(t *testing.T) {
	isolateCache(t)
	words := writeTestWords(t, "words.csv")
	args := append([]string{"render", words, "-f", "json"}, smallCanvas...)

	first, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	if !strings.Contains(first, iconFresh) {
		t.Errorf("first run should be fresh:\n%s", first)
	}
	second, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(second, iconCached) {
		t.Errorf("second run should be cached:\n%s", second)
	}

	third, err := runCLI(t, append(args, "--no-cache")...)
	if err != nil {
		t.Fatalf("uncached render: %v", err)
	}
	if !strings.Contains(third, iconFresh) {
		t.Errorf("--no-cache run should be fresh:\n%s", third)
	}
}

func TestRenderTextInput(t *testing.T) {
	isolateCache(t)
	path := filepath.Join(t.TempDir(), "speech.txt")
	text := "the cloud and the words, words, words; clouds of words drift over the cloud"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, append([]string{"render", path, "-f", "json", "--no-cache"}, smallCanvas...)...); err != nil {
		t.Fatalf("render: %v", err)
	}
	l, err := layout.ReadFile(strings.TrimSuffix(path, ".txt") + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Words) == 0 || l.Words[0].Text != "words" {
		t.Errorf("most frequent word should be placed first, got %+v", l.Words)
	}
}

func TestCommandErrors(t *testing.T) {
	isolateCache(t)
	words := writeTestWords(t, "words.csv")
	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"missing words", []string{"render", filepath.Join(t.TempDir(), "nope.csv")}, errs.ErrCodeFileNotFound},
		{"missing layout", []string{"visualize", filepath.Join(t.TempDir(), "nope.layout.json")}, errs.ErrCodeFileNotFound},
		{"bad format", []string{"render", words, "-f", "gif"}, errs.ErrCodeInvalidFormat},
		{"bad input format", []string{"render", words, "--input-format", "xml"}, errs.ErrCodeInvalidFormat},
		{"bad canvas", []string{"layout", words, "--width", "-5"}, errs.ErrCodeInvalidCanvas},
		{"stdout needs one format", []string{"render", words, "-o", "-", "-f", "svg,json"}, errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, append(tt.args, "--no-cache")...)
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestBatch(t *testing.T) {
	isolateCache(t)
	a := writeTestWords(t, "first.csv")
	b := writeTestWords(t, "second.csv")
	outDir := t.TempDir()

	out, err := runCLI(t, append([]string{"batch", a, b, "-o", outDir, "-f", "json", "-j", "2"}, smallCanvas...)...)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	for _, name := range []string{"first", "second"} {
		if _, err := os.Stat(filepath.Join(outDir, name+".json")); err != nil {
			t.Error(err)
		}
		if !strings.Contains(out, name) {
			t.Errorf("summary should list %s:\n%s", name, out)
		}
	}
}

func TestBatchRejectsDuplicateNames(t *testing.T) {
	isolateCache(t)
	a := writeTestWords(t, "words.csv")
	b := writeTestWords(t, "words.csv")
	_, err := runCLI(t, "batch", a, b, "--no-cache")
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := isolateCache(t)
	words := writeTestWords(t, "words.csv")

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), dir)
	}

	if _, err := runCLI(t, append([]string{"render", words, "-f", "json"}, smallCanvas...)...); err != nil {
		t.Fatal(err)
	}
	out, err = runCLI(t, "cache", "stats")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Entries") {
		t.Errorf("stats output = %q", out)
	}

	out, err = runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("clear output = %q, want two entries (layout and artifact)", out)
	}
}

func TestCompletion(t *testing.T) {
	isolateCache(t)
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the command name")
	}
}
