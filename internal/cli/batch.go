package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// batchCommand creates the batch command for rendering many word lists.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		outDir      string
		concurrency int
	)
	flags := newOptionFlags()
	in := &inputFlags{}

	cmd := &cobra.Command{
		Use:   "batch [words...]",
		Short: "Render several word lists concurrently",
		Long: `Render several word lists concurrently.

Every input becomes an independent cloud with the same options, written to
<out>/<name>.<format>. A failing input does not stop the others; the command
fails if any input failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolve(cmd, flags)
			if err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runBatch(cmd.Context(), args, in, opts, outDir, concurrency)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", runtime.NumCPU(), "clouds computed at once")
	flags.addLayout(cmd.Flags())
	flags.addRender(cmd.Flags())
	in.add(cmd.Flags())

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, inputs []string, in *inputFlags, opts pipeline.Options, outDir string, concurrency int) error {
	jobs := make([]pipeline.Job, 0, len(inputs))
	seen := map[string]bool{}
	for _, input := range inputs {
		if input == stdoutPath {
			return errs.New(errs.ErrCodeInvalidInput, "batch inputs must be files")
		}
		name := basePath("", filepath.Base(input))
		if seen[name] {
			return errs.New(errs.ErrCodeInvalidInput, "two inputs would both write %q", name)
		}
		seen[name] = true

		words, err := in.read(input)
		if err != nil {
			return err
		}
		jobs = append(jobs, pipeline.Job{Name: name, Words: words, Opts: opts})
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d clouds...", len(jobs)))
	spinner.Start()

	results, err := runner.Batch(ctx, jobs, concurrency)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("Batch complete", "jobs", len(jobs))

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		if _, err := writeArtifacts(artifactWriteParams{
			artifacts: r.Result.Artifacts,
			formats:   opts.Formats,
			output:    filepath.Join(outDir, r.Name),
		}); err != nil {
			return err
		}
	}

	printNewline()
	fmt.Fprintln(uiOut, batchTable(results))
	if failed > 0 {
		return fmt.Errorf("%d of %d clouds failed", failed, len(results))
	}
	printSuccess("Rendered %d clouds", len(results))
	return nil
}

// batchTable summarizes batch results, one row per job.
func batchTable(results []pipeline.BatchResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			rows = append(rows, []string{r.Name, "-", "-", "-", errs.UserMessage(r.Err)})
			continue
		}
		s := r.Result.Stats
		status := iconFresh
		if r.Result.CacheInfo.LayoutHit && r.Result.CacheInfo.RenderHit {
			status = iconCached
		}
		rows = append(rows, []string{
			r.Name,
			fmt.Sprint(s.Placed),
			fmt.Sprint(s.Skipped),
			fmt.Sprintf("%.0f%%", r.Result.Layout.Coverage*100),
			status,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Cloud", "Placed", "Skipped", "Covered", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(results) {
				return base
			}
			switch {
			case results[row].Err != nil:
				return base.Foreground(colorRed)
			case col == 4 && strings.HasPrefix(rows[row][4], iconCached):
				return base.Foreground(colorGreen)
			case col > 0:
				return base.Foreground(colorGray)
			}
			return base
		})
	return t.Render()
}
