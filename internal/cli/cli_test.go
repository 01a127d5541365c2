package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory")
		}
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join(home, ".cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"png"}},
		{"svg", []string{"svg"}},
		{"svg,pdf,png", []string{"svg", "pdf", "png"}},
		{" svg , json ,", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "words.csv", "words"},
		{"", "dir/words.layout.json", "dir/words"},
		{"out.png", "words.csv", "out"},
		{"out/cloud", "words.csv", "out/cloud"},
		{"cloud.v2", "words.csv", "cloud.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestToStdout(t *testing.T) {
	tests := []struct {
		output, input string
		want          bool
	}{
		{"-", "words.csv", true},
		{"", "-", true},
		{"cloud.png", "-", false},
		{"", "words.csv", false},
	}
	for _, tt := range tests {
		if got := toStdout(tt.output, tt.input); got != tt.want {
			t.Errorf("toStdout(%q, %q) = %v, want %v", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestConfigFileUnderFlags(t *testing.T) {
	isolateCache(t)
	words := writeTestWords(t, "words.csv")
	cfg := filepath.Join(t.TempDir(), "wordcloud.toml")
	err := os.WriteFile(cfg, []byte(`
width = 360
height = 240
seed = 7
margin = 0
max_font_size = 50
orientations = ["horizontal"]
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "cloud.layout.json")
	if _, err := runCLI(t, "layout", words, "--config", cfg, "--height", "180", "-o", out); err != nil {
		t.Fatalf("layout: %v", err)
	}

	l, err := layout.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if l.Width != 360 || l.Height != 180 || l.Seed != 7 || l.Margin != 0 {
		t.Errorf("got %dx%d seed %d margin %d, want 360x180 seed 7 margin 0", l.Width, l.Height, l.Seed, l.Margin)
	}
	for _, w := range l.Words {
		if w.Orientation.String() != "horizontal" {
			t.Errorf("%q is %s, config allows only horizontal", w.Text, w.Orientation)
		}
	}
}

func TestZeroFlagsKept(t *testing.T) {
	isolateCache(t)
	words := writeTestWords(t, "words.csv")
	out := filepath.Join(t.TempDir(), "zero.layout.json")
	args := append([]string{"layout", words, "--margin", "0", "--seed", "0", "-o", out}, smallCanvas...)
	if _, err := runCLI(t, args...); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := layout.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if l.Margin != 0 || l.Seed != 0 {
		t.Errorf("margin %d seed %d, want 0 and 0", l.Margin, l.Seed)
	}
}

func TestEmptyWordList(t *testing.T) {
	isolateCache(t)
	words := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(words, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "empty.layout.json")
	if _, err := runCLI(t, append([]string{"layout", words, "-o", out}, smallCanvas...)...); err != nil {
		t.Fatalf("empty input should not fail: %v", err)
	}
	l, err := layout.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Words) != 0 || l.Warning == "" {
		t.Errorf("layout has %d words, warning %q", len(l.Words), l.Warning)
	}
}

func TestConfigFileErrors(t *testing.T) {
	isolateCache(t)
	words := writeTestWords(t, "words.csv")
	cfg := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(cfg, []byte("width = \"wide\""), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := runCLI(t, "layout", words, "--config", cfg, "--no-cache")
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestVersionFlag(t *testing.T) {
	isolateCache(t)
	out, err := runCLI(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName+" version") {
		t.Errorf("version output = %q", out)
	}
}
