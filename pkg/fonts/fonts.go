// Package fonts resolves font names to parsed OpenType fonts.
//
// The Go font family is embedded via golang.org/x/image/font/gofont, so the
// default rasterizer works without any files on disk. Any other name is
// treated as a path to a TrueType or OpenType file.
package fonts

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Embedded font names.
const (
	Regular = "goregular"
	Bold    = "gobold"
	Italic  = "goitalic"
	Mono    = "gomono"
)

// Default is the font used when none is configured.
const Default = Regular

var embedded = map[string][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
	Italic:  goitalic.TTF,
	Mono:    gomono.TTF,
}

var families = map[string]string{
	Regular: "Go",
	Bold:    "Go",
	Italic:  "Go",
	Mono:    "Go Mono",
}

// Names returns the embedded font names in sorted order.
func Names() []string {
	names := make([]string, 0, len(embedded))
	for n := range embedded {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// IsEmbedded reports whether name refers to an embedded font.
func IsEmbedded(name string) bool {
	_, ok := embedded[normalize(name)]
	return ok
}

// Data returns the raw font bytes for an embedded name or a file path.
func Data(name string) ([]byte, error) {
	name = normalize(name)
	if b, ok := embedded[name]; ok {
		return b, nil
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".ttf" && ext != ".otf" {
		return nil, fmt.Errorf("unknown font %q (embedded: %s; or a .ttf/.otf path)", name, strings.Join(Names(), ", "))
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return b, nil
}

// Parsed fonts are shared; opentype.Font is safe for concurrent use.
var (
	mu     sync.Mutex
	parsed = map[string]*opentype.Font{}
	b64    = map[string]string{}
)

// Load returns the parsed font for name, caching the result.
func Load(name string) (*opentype.Font, error) {
	name = normalize(name)
	mu.Lock()
	defer mu.Unlock()
	if f, ok := parsed[name]; ok {
		return f, nil
	}
	data, err := Data(name)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", name, err)
	}
	parsed[name] = f
	return f, nil
}

// Base64 returns the font bytes base64-encoded for embedding in SVG
// @font-face rules. The result is cached after first computation.
func Base64(name string) (string, error) {
	name = normalize(name)
	mu.Lock()
	s, ok := b64[name]
	mu.Unlock()
	if ok {
		return s, nil
	}
	data, err := Data(name)
	if err != nil {
		return "", err
	}
	s = base64.StdEncoding.EncodeToString(data)
	mu.Lock()
	b64[name] = s
	mu.Unlock()
	return s, nil
}

// Family returns the CSS font-family for name. File fonts are named after
// their base name.
func Family(name string) string {
	name = normalize(name)
	if f, ok := families[name]; ok {
		return f
	}
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}

// Weight returns the CSS font-weight for name.
func Weight(name string) string {
	if normalize(name) == Bold {
		return "bold"
	}
	return "normal"
}

// Style returns the CSS font-style for name.
func Style(name string) string {
	if normalize(name) == Italic {
		return "italic"
	}
	return "normal"
}

func normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return Default
	}
	if _, ok := embedded[strings.ToLower(name)]; ok {
		return strings.ToLower(name)
	}
	return name
}
