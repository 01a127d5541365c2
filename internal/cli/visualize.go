package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var output string
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to PNG, SVG, PDF or JSON. The layout holds every word's size,
orientation, position and color, so this step only draws.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from a word list to an image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolve(cmd, flags)
			if err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	flags.addRender(cmd.Flags())

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string) error {
	l, err := readLayout(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if toStdout(output, input) {
		defer redirectUI(os.Stderr)()
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d words...", len(l.Words)))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()
	prog.done("Rendered", "formats", opts.Formats, "cached", cacheHit)

	printSuccess("Rendered %s", input)
	if _, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	}); err != nil {
		return err
	}
	printStats(len(l.Words), len(l.Skipped), l.Coverage, cacheHit)
	return nil
}

// readLayout reads a layout file, or standard input for "-".
func readLayout(path string) (layout.Layout, error) {
	if path == stdoutPath {
		return layout.Read(os.Stdin)
	}
	l, err := layout.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return layout.Layout{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "layout %s not found", path)
	}
	if err != nil {
		return layout.Layout{}, fmt.Errorf("load layout %s: %w", path, err)
	}
	return l, nil
}
