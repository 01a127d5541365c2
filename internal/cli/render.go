package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// renderCommand creates the render command, which runs layout and
// visualize in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var output string
	flags := newOptionFlags()
	in := &inputFlags{}

	cmd := &cobra.Command{
		Use:   "render [words]",
		Short: "Place words and render the cloud in one step",
		Long: `Place words and render the cloud in one step.

The render command is 'layout' followed by 'visualize' without writing the
intermediate layout.json. Words piped on standard input ("-") produce an
image on standard output unless -o names a file:

  wordcloud render - < words.csv > cloud.png

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolve(cmd, flags)
			if err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], in, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	flags.addLayout(cmd.Flags())
	flags.addRender(cmd.Flags())
	in.add(cmd.Flags())

	return cmd
}

// runRender reads the words and executes the full pipeline.
func (c *CLI) runRender(ctx context.Context, input string, in *inputFlags, opts pipeline.Options, output string) error {
	words, err := in.read(input)
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

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d words...", len(words)))
	spinner.Start()

	result, err := runner.Execute(ctx, words, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	c.Logger.Info("Rendered",
		"placed", result.Stats.Placed,
		"skipped", result.Stats.Skipped,
		"layout", result.Stats.LayoutTime.Round(time.Millisecond),
		"render", result.Stats.RenderTime.Round(time.Millisecond))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Render complete")
	if _, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	}); err != nil {
		return err
	}
	printStats(result.Stats.Placed, result.Stats.Skipped, result.Layout.Coverage,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	warnIncomplete(result.Layout)
	return nil
}
