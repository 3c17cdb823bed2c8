package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sigil/internal/server"
	"github.com/matzehuels/sigil/pkg/observability"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		dictionary string
		maxAge     time.Duration
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve seals over HTTP",
		Long: `Serve seals over HTTP.

Routes:
  GET /v1/seals/{identifier}.{svg|png|pdf|json|dot}?size=&colorway=&scale=&title=
  GET /v1/colorways
  GET /v1/colorways/{identifier}
  GET /v1/layouts/{count}?size=
  GET /healthz

The cache backend comes from the [cache] section of the config file; a shared
redis or mongo cache lets several instances reuse each other's renders.`,
		Example: `  sigil serve --addr :8080 -d symbols.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.config().Server.Addr
			}
			return c.runServe(cmd.Context(), addr, dictionary, maxAge, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVarP(&dictionary, "dictionary", "d", "", "symbol dictionary JSON file or URL")
	cmd.Flags().DurationVar(&maxAge, "max-age", server.DefaultMaxAge, "Cache-Control max-age for seals (0 disables)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable server-side caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, dictionary string, maxAge time.Duration, noCache bool) error {
	dict, err := c.loadDictionary(ctx, dictionary)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := server.New(runner, c.Logger, server.WithDictionary(dict), server.WithMaxAge(maxAge))

	printInfo("Serving seals on %s", StyleLink.Render("http://"+addr))
	if dict == nil {
		printDetail("No dictionary: every syllable draws the default symbol")
	}
	if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	printSuccess("Server stopped")
	return nil
}
