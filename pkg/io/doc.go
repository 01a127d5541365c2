// Package io reads word lists and assigns colors to words that have none.
//
// # Formats
//
// Three input formats are supported. [DetectFormat] picks one from a file
// extension; anything unrecognized is read as CSV.
//
// CSV ([FormatCSV]) has one record per line in the order count,color,word:
//
//	12,3b82f6,gopher
//	7,#ef4444,channel
//	3,,defer
//
// The color may carry a leading '#' or be empty. Words may contain commas
// when quoted. Lines starting with '#' are comments.
//
// JSON ([FormatJSON]) is either an array of words or an object with a
// "words" array:
//
//	[{"text": "gopher", "weight": 12, "color": "3b82f6"}]
//
// Plain text ([FormatText]) is tokenized into words, case-folded and counted.
// Each distinct word becomes one entry weighted by its frequency.
//
// # Colors
//
// A [Palette] fills in missing colors. The default palette samples hues at
// random with fixed saturation and value, seeded for reproducible output.
//
//	words, err := io.ReadFile("words.csv")
//	io.NewPalette(seed).Fill(words)
//
// # Concurrency
//
// Readers are stateless. A Palette holds its own random source and must not
// be shared between goroutines.
package io
