package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// layoutCommand creates the layout command for placing words.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string
	flags := newOptionFlags()
	in := &inputFlags{}

	cmd := &cobra.Command{
		Use:   "layout [words]",
		Short: "Place words on a canvas",
		Long: `Place words on a canvas.

The layout command reads a word list (CSV count,color,word records, JSON, or
plain text) and places every word, biggest first, at the first position where
it fits. The result is a layout.json file that the 'visualize' command renders
to PNG, SVG, PDF or JSON, and that 'preview' browses interactively.

Use "-" to read CSV from standard input. Results are cached locally for faster
subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolve(cmd, flags)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], in, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	flags.addLayout(cmd.Flags())
	in.add(cmd.Flags())

	return cmd
}

// runLayout reads the words, computes the layout, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, input string, in *inputFlags, opts pipeline.Options, output string) error {
	words, err := in.read(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
		if input == stdoutPath {
			outputPath = appName + ".layout.json"
		}
	}
	if outputPath == stdoutPath {
		defer redirectUI(os.Stderr)()
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d words...", len(words)))
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, words, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done("Layout computed", "placed", len(l.Words), "cached", cacheHit)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := layout.Marshal(l)
	if err != nil {
		return err
	}
	if err := writeFile(outputPath, data); err != nil {
		return err
	}

	printSuccess("Layout complete")
	if outputPath != stdoutPath {
		printFile(outputPath, len(data))
	}
	printStats(len(l.Words), len(l.Skipped), l.Coverage, cacheHit)
	warnIncomplete(l)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)
	printNextStep("Browse", appName+" preview "+outputPath)

	return nil
}

// warnIncomplete reports why a layout stopped before placing every word.
func warnIncomplete(l layout.Layout) {
	if l.Complete {
		return
	}
	if l.Warning != "" {
		printWarning("%s", l.Warning)
		return
	}
	printWarning("%d words did not fit", len(l.Skipped))
}
