package io

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
)

// TextOptions controls plain-text word counting.
type TextOptions struct {
	MinLength int             // shortest word kept, in runes; default 2
	MaxWords  int             // keep only the most frequent; 0 = all
	Stopwords map[string]bool // case-folded words to drop; DefaultStopwords if nil
}

// DefaultStopwords is a small English list.
var DefaultStopwords = toSet(
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "from",
	"has", "have", "he", "her", "his", "i", "in", "is", "it", "its", "of",
	"on", "or", "she", "so", "that", "the", "their", "they", "this", "to",
	"was", "we", "were", "with", "you",
)

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// ReadText tokenizes r and returns one word per distinct token, weighted by
// frequency, most frequent first. Ties keep first-appearance order.
func ReadText(r io.Reader, opts TextOptions) ([]cloud.Word, error) {
	if opts.MinLength == 0 {
		opts.MinLength = 2
	}
	if opts.Stopwords == nil {
		opts.Stopwords = DefaultStopwords
	}
	fold := cases.Fold()

	counts := map[string]int{}
	var order []string

	sc := bufio.NewScanner(norm.NFC.Reader(r))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		for _, tok := range tokens(sc.Text()) {
			tok = fold.String(tok)
			if len([]rune(tok)) < opts.MinLength || opts.Stopwords[tok] {
				continue
			}
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	words := make([]cloud.Word, len(order))
	for i, tok := range order {
		words[i] = cloud.Word{Text: tok, Weight: float64(counts[tok])}
	}
	slices.SortStableFunc(words, func(a, b cloud.Word) int { return cmp.Compare(b.Weight, a.Weight) })
	if opts.MaxWords > 0 && len(words) > opts.MaxWords {
		words = words[:opts.MaxWords]
	}
	return words, nil
}

// tokens splits a whitespace-free chunk at anything that is not a letter,
// digit, apostrophe or hyphen, and trims those joiners from the ends.
func tokens(chunk string) []string {
	parts := strings.FieldsFunc(chunk, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.Trim(p, "'-"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
