// Package cli implements the wordcloud command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cache"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "wordcloud"

	// envRedisURL selects a shared Redis cache instead of the local file cache.
	envRedisURL = "WORDCLOUD_REDIS_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	configPath string
	redisURL   string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Wordcloud packs weighted words into an image",
		Long: `Wordcloud places a list of weighted words on a fixed canvas, biggest first,
shrinking each word until it fits, and renders the result as PNG, SVG, PDF or
JSON.

Words are read as CSV records (count,color,word), JSON, or counted from plain
text. Layouts and renders are cached locally for faster subsequent runs.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.configPath, "config", "", "TOML file with default options (flags override it)")
	pf.StringVar(&c.redisURL, "redis", os.Getenv(envRedisURL), "Redis URL for a shared cache (env "+envRedisURL+")")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable caching")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache picks Redis when a URL is configured, otherwise the file cache
// under cacheDir. A missing home directory disables caching.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, c.redisURL, appName+":")
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Debug("Using redis cache")
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("No cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/wordcloud/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// optionFlags binds the pipeline options shared by several commands. List
// options are kept as comma-separated strings so that re-applying a flag
// replaces its value instead of appending to it.
type optionFlags struct {
	opts         pipeline.Options
	formats      string
	orientations string
}

func newOptionFlags() *optionFlags {
	f := &optionFlags{opts: pipeline.DefaultOptions()}
	f.opts.Logger = nil
	f.opts.AllowFontPaths = true
	return f
}

// addLayout registers the flags that shape a layout.
func (f *optionFlags) addLayout(fs *pflag.FlagSet) {
	o := &f.opts
	fs.IntVar(&o.Width, "width", o.Width, "canvas width in pixels")
	fs.IntVar(&o.Height, "height", o.Height, "canvas height in pixels")
	fs.IntVar(&o.Margin, "margin", o.Margin, "padding around every word box")
	fs.StringVar(&o.Font, "font", o.Font, "embedded font name or .ttf/.otf path")
	fs.StringVar(&o.Sizing, "sizing", o.Sizing, "sizing policy: rank-only (default), weight-aware")
	fs.IntVar(&o.MaxFontSize, "max-font-size", o.MaxFontSize, "starting size of the top-ranked word")
	fs.StringVar(&f.orientations, "orientations", strings.Join(o.Orientations, ","), "allowed orientations: horizontal, vertical (comma-separated)")
	fs.StringVar(&o.Stamp, "stamp", o.Stamp, "occupancy stamp: box (default), glyph")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "random seed")
	fs.BoolVar(&o.ContinueOnSkip, "continue-on-skip", o.ContinueOnSkip, "keep placing smaller words after one does not fit")
	fs.IntVar(&o.MaxShrinkSteps, "max-shrink-steps", o.MaxShrinkSteps, "give up on a word after this many size steps (0 = until size 1)")
	fs.IntVar(&o.MaxAnchors, "max-anchors", o.MaxAnchors, "examine at most this many positions per size (0 = all)")
	fs.StringVar(&o.Palette, "palette", o.Palette, "hex colors for words without one (comma-separated; default random hues)")
	fs.BoolVar(&o.Debug, "verify", o.Debug, "check the occupancy table after every word (slow)")
	_ = fs.MarkHidden("verify")
}

// addRender registers the flags that shape rendered artifacts.
func (f *optionFlags) addRender(fs *pflag.FlagSet) {
	o := &f.opts
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): png (default), svg, pdf, json (comma-separated)")
	fs.StringVar(&o.Background, "background", o.Background, "canvas color")
	fs.StringVar(&o.Foreground, "foreground", o.Foreground, "color of words without one")
	fs.Float64Var(&o.Scale, "scale", o.Scale, "PNG scale factor")
	fs.BoolVar(&o.EmbedFont, "embed-font", o.EmbedFont, "embed the font in SVG output")
	fs.BoolVar(&o.Vector, "vector", o.Vector, "draw PNG through SVG with rsvg-convert")
	fs.BoolVar(&o.Refresh, "refresh", o.Refresh, "recompute even when cached")
}

// resolve merges the --config file under the flags the user set and returns
// the final options.
func (c *CLI) resolve(cmd *cobra.Command, f *optionFlags) (pipeline.Options, error) {
	if err := c.loadConfig(cmd, &f.opts); err != nil {
		return pipeline.Options{}, err
	}
	opts := f.opts
	if cmd.Flags().Changed("orientations") || len(opts.Orientations) == 0 {
		opts.Orientations = parseList(f.orientations)
	}
	if cmd.Flags().Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	opts.Logger = c.Logger
	return opts, nil
}

// loadConfig decodes the config file into opts, then re-applies every flag
// set on the command line so that flags win over the file.
func (c *CLI) loadConfig(cmd *cobra.Command, opts *pipeline.Options) error {
	if c.configPath == "" {
		return nil
	}
	changed := map[string]string{}
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		changed[fl.Name] = fl.Value.String()
	})

	md, err := toml.DecodeFile(c.configPath, opts)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "read config %s", c.configPath)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		c.Logger.Warn("Unknown config keys", "keys", undecoded)
	}
	for name, v := range changed {
		if err := cmd.Flags().Set(name, v); err != nil {
			return err
		}
	}
	c.Logger.Debug("Loaded config", "path", c.configPath)
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	return parseList(s)
}

// parseList splits a comma-separated list, dropping blanks.
func parseList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
