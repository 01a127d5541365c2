package cli

import (
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
	pkgio "github.com/matzehuels/wordcloud/pkg/io"
)

// inputFlags selects how word lists are decoded.
type inputFlags struct {
	format    string
	minLength int
	maxWords  int
}

func (f *inputFlags) add(fs *pflag.FlagSet) {
	fs.StringVar(&f.format, "input-format", "", "word list format: csv, json, text (default: from extension, csv for stdin)")
	fs.IntVar(&f.minLength, "min-length", 0, "text input: shortest word counted (default 2)")
	fs.IntVar(&f.maxWords, "max-words", 0, "text input: keep only the most frequent words (0 = all)")
}

// read decodes the word list at path; "-" reads standard input.
func (f *inputFlags) read(path string) ([]cloud.Word, error) {
	format := pkgio.DetectFormat(path)
	if path == stdoutPath {
		format = pkgio.FormatCSV
	}
	if f.format != "" {
		var err error
		if format, err = pkgio.ParseFormat(f.format); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "input format")
		}
	}

	var r io.Reader = os.Stdin
	if path != stdoutPath {
		file, err := os.Open(path)
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "word list %s not found", path)
		}
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
		}
		defer file.Close()
		r = file
	}

	var (
		words []cloud.Word
		err   error
	)
	if format == pkgio.FormatText {
		words, err = pkgio.ReadText(r, pkgio.TextOptions{MinLength: f.minLength, MaxWords: f.maxWords})
	} else {
		words, err = pkgio.Read(r, format)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", path)
	}
	return words, nil
}
