package io

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
)

// Format is a word-list encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat accepts "csv", "json", "text" or "txt".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown input format %q (must be csv, json or text)", s)
}

// DetectFormat guesses the format from a path's extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".txt", ".text", ".md":
		return FormatText
	}
	return FormatCSV
}

// Read decodes words from r in the given format.
func Read(r io.Reader, f Format) ([]cloud.Word, error) {
	switch f {
	case FormatCSV, "":
		return ReadCSV(r)
	case FormatJSON:
		return ReadJSON(r)
	case FormatText:
		return ReadText(r, TextOptions{})
	}
	return nil, fmt.Errorf("unknown input format %q", f)
}

// ReadFile reads words from path, detecting the format from its extension.
// The path "-" reads CSV from standard input.
func ReadFile(path string) ([]cloud.Word, error) {
	if path == "-" {
		return ReadCSV(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, DetectFormat(path))
}

// ReadCSV decodes count,color,word records.
func ReadCSV(r io.Reader) ([]cloud.Word, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var words []cloud.Word
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 3 {
			return nil, fmt.Errorf("csv line %d: want count,color,word, got %d fields", line, len(rec))
		}
		count, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: count %q: %w", line, rec[0], err)
		}
		w := cloud.Word{
			Text:   strings.TrimSpace(strings.Join(rec[2:], ",")),
			Weight: count,
			Color:  NormalizeColor(rec[1]),
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		words = append(words, w)
	}
	return words, nil
}

type jsonWord struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
	Color  string  `json:"color,omitempty"`
}

// ReadJSON decodes an array of words or an object with a "words" array.
func ReadJSON(r io.Reader) ([]cloud.Word, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var list []jsonWord
	if err := json.Unmarshal(data, &list); err != nil {
		var doc struct {
			Words []jsonWord `json:"words"`
		}
		if err2 := json.Unmarshal(data, &doc); err2 != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		list = doc.Words
	}

	words := make([]cloud.Word, len(list))
	for i, jw := range list {
		words[i] = cloud.Word{Text: strings.TrimSpace(jw.Text), Weight: jw.Weight, Color: NormalizeColor(jw.Color)}
		if err := words[i].Validate(); err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
	}
	return words, nil
}

// WriteJSON encodes words in the format read by ReadJSON.
func WriteJSON(words []cloud.Word, w io.Writer) error {
	out := make([]jsonWord, len(words))
	for i, wd := range words {
		out[i] = jsonWord{Text: wd.Text, Weight: wd.Weight, Color: wd.Color}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteCSV encodes words as count,color,word records.
func WriteCSV(words []cloud.Word, w io.Writer) error {
	cw := csv.NewWriter(w)
	for _, wd := range words {
		rec := []string{strconv.FormatFloat(wd.Weight, 'f', -1, 64), wd.Color, wd.Text}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
