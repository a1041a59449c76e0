package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbreak/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the breaking API over HTTP",
		Long: `Serve the breaking API over HTTP until interrupted.

The cache backend comes from the [cache] table of the profile. Without one,
results are cached in the local cache directory like the other commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg.Cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Serving on %s", addr)
			if strings.HasPrefix(addr, ":") {
				printNextStep("Try", "curl -s localhost"+addr+"/healthz")
			}
			return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
