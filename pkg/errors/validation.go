package errors

import (
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits applied to untrusted input.
const (
	MaxWordLength   = 200
	MaxCanvasSide   = 8192
	MaxCanvasPixels = 32 << 20
	MaxWords        = 5000
	MaxFontSize     = 2 * MaxCanvasSide
)

// ValidateWord validates one word's text and weight.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only text
//   - No control characters or invalid UTF-8
//   - Maximum length of MaxWordLength runes
//   - Weight finite and non-negative
func ValidateWord(text string, weight float64) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidWord, "word text cannot be empty")
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidWord, "word %q is not valid UTF-8", text)
	}
	if n := utf8.RuneCountInString(text); n > MaxWordLength {
		return New(ErrCodeInvalidWord, "word too long (%d runes, max %d)", n, MaxWordLength)
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWord, "word %q contains control characters", text)
		}
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return New(ErrCodeInvalidWord, "word %q has invalid weight %v", text, weight)
	}
	return nil
}

// ValidateWordCount rejects oversized word lists. An empty list is valid and
// yields an empty layout.
func ValidateWordCount(n int) error {
	if n > MaxWords {
		return New(ErrCodeTooManyWords, "too many words (%d, max %d)", n, MaxWords)
	}
	return nil
}

// ValidateCanvas validates canvas dimensions and margin.
func ValidateCanvas(width, height, margin int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas must be positive, got %dx%d", width, height)
	}
	if width > MaxCanvasSide || height > MaxCanvasSide {
		return New(ErrCodeInvalidCanvas, "canvas side too large (max %d)", MaxCanvasSide)
	}
	if width*height > MaxCanvasPixels {
		return New(ErrCodeInvalidCanvas, "canvas %dx%d exceeds %d pixels", width, height, MaxCanvasPixels)
	}
	if margin < 0 {
		return New(ErrCodeInvalidCanvas, "margin cannot be negative")
	}
	if margin >= min(width, height) {
		return New(ErrCodeInvalidCanvas, "margin %d leaves no room on a %dx%d canvas", margin, width, height)
	}
	return nil
}

// ValidateFontSize bounds the starting font size. The engine measures every
// size between it and the first fit, so it must stay near canvas scale.
func ValidateFontSize(size int) error {
	if size < 0 {
		return New(ErrCodeInvalidInput, "max font size cannot be negative")
	}
	if size > MaxFontSize {
		return New(ErrCodeInvalidInput, "max font size %d exceeds %d", size, MaxFontSize)
	}
	return nil
}

var hexColorRegex = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a hex color with or without '#'. Empty is allowed.
func ValidateColor(c string) error {
	if c == "" {
		return nil
	}
	if !hexColorRegex.MatchString(strings.TrimSpace(c)) {
		return New(ErrCodeInvalidColor, "invalid color %q (want hex like ff8800 or #f80)", c)
	}
	return nil
}

var fontNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateFontName validates a font reference. Names must be simple
// identifiers; paths are accepted only when allowPaths is set, and must end
// in .ttf or .otf.
func ValidateFontName(name string, allowPaths bool) error {
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	if fontNameRegex.MatchString(lower) {
		return nil
	}
	if !allowPaths {
		return New(ErrCodeInvalidFont, "font %q must be one of the embedded font names", name)
	}
	if ext := strings.ToLower(filepath.Ext(name)); ext != ".ttf" && ext != ".otf" {
		return New(ErrCodeInvalidFont, "font path %q must end in .ttf or .otf", name)
	}
	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidFont, "font path contains invalid characters")
		}
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateOneOf checks that value is one of allowed, using code on failure.
func ValidateOneOf(code Code, field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(code, "invalid %s %q (must be one of: %s)", field, value, strings.Join(allowed, ", "))
}

