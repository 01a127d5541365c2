package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/server"
	"github.com/matzehuels/wordcloud/pkg/store"
)

const envMongoURL = "WORDCLOUD_MONGO_URL"

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mongoURI string
		mongoDB  string
		timeout  time.Duration
	)
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

  POST   /v1/layouts                 create a layout from {words, options}
  GET    /v1/layouts                 list stored layouts
  GET    /v1/layouts/{id}            fetch a layout
  DELETE /v1/layouts/{id}            delete a layout
  GET    /v1/layouts/{id}/render     render as png, svg, pdf or json
  GET    /healthz                    liveness

Layouts are kept in memory unless --mongo names a MongoDB server. Layout and
render flags (or --config) set the defaults beneath each request's options.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolve(cmd, flags)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr, mongoURI, mongoDB, timeout, opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo", os.Getenv(envMongoURL), "MongoDB URI for layout storage (env "+envMongoURL+")")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultRequestTimeout, "per-request time limit")
	flags.addLayout(cmd.Flags())
	flags.addRender(cmd.Flags())

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, mongoURI, mongoDB string, timeout time.Duration, defaults pipeline.Options) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "api:")

	st, backend, err := c.newStore(ctx, mongoURI, mongoDB)
	if err != nil {
		return err
	}
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(cctx); err != nil {
			c.Logger.Warn("Close store", "err", err)
		}
	}()

	observability.NewLogHooks(c.Logger).Register()
	defer observability.Reset()

	defaults.Logger = nil
	srv := server.New(runner, st,
		server.WithLogger(c.Logger),
		server.WithDefaults(defaults),
		server.WithRequestTimeout(timeout),
	)

	printSuccess("Serving on %s", addr)
	printKeyValue("Storage", backend)
	printKeyValue("Canvas", fmt.Sprintf("%dx%d", defaults.Width, defaults.Height))
	printNewline()

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	printInfo("Server stopped")
	return nil
}

func (c *CLI) newStore(ctx context.Context, uri, db string) (store.Store, string, error) {
	if uri == "" {
		return store.NewMemoryStore(), "memory", nil
	}
	st, err := store.NewMongoStore(ctx, uri, db)
	if err != nil {
		return nil, "", fmt.Errorf("connect mongo: %w", err)
	}
	return st, "mongodb/" + db, nil
}
