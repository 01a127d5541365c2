package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// stdoutPath selects standard output as a destination.
const stdoutPath = "-"

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout for "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// basePath returns the path artifacts are named after: the output flag with
// any known format extension stripped, or the input without its extension.
func basePath(output, input string) string {
	if output == "" {
		name := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(name, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// toStdout reports whether artifacts go to standard output: when asked for
// with "-o -", or when words were piped in and no output was named.
func toStdout(output, input string) bool {
	return output == stdoutPath || (output == "" && input == stdoutPath)
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes one file per format and returns the paths written.
// A single format may go to stdout; several always go to files named
// <base>.<format>.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if toStdout(p.output, p.input) {
		if len(p.formats) != 1 {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "only one format can be written to stdout, got %d", len(p.formats))
		}
		if _, err := os.Stdout.Write(p.artifacts[p.formats[0]]); err != nil {
			return nil, fmt.Errorf("write stdout: %w", err)
		}
		return []string{stdoutPath}, nil
	}

	base := basePath(p.output, p.input)
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return paths, fmt.Errorf("no %s artifact rendered", format)
		}
		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" && filepath.Ext(p.output) != "" {
			path = p.output
		}
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		printFile(path, len(data))
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
