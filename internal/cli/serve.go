package cli

import (
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/matzehuels/logsheet/internal/mcp"
	"github.com/matzehuels/logsheet/internal/server"
	"github.com/matzehuels/logsheet/pkg/store"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		host      string
		port      int
		tailscale bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored workouts and their sheets over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("tailscale") {
				cfg.Tailscale.Enabled = tailscale
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts, err := c.pipelineOptions()
			if err != nil {
				return err
			}
			if cfg.Server.JWTSecret == "" {
				c.Logger.Warn("no jwt_secret configured, every request acts as the local user")
			}

			srv := server.New(st, runner, opts, cfg.Server.JWTSecret, c.Logger)
			return srv.Run(ctx, server.ListenConfig{
				Addr:      cfg.Server.Addr(),
				Tailscale: cfg.Tailscale.Enabled,
				Hostname:  cfg.Tailscale.Hostname,
				StateDir:  cfg.Tailscale.StateDir,
			})
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	cmd.Flags().BoolVar(&tailscale, "tailscale", false, "serve on the tailnet instead of a local port")
	return cmd
}

func (c *CLI) mcpCommand() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the Model Context Protocol on stdin and stdout",
		Long: `Run an MCP server on stdio so assistants can list stored workouts and
read their log sheets. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts, err := c.pipelineOptions()
			if err != nil {
				return err
			}

			s := mcpserver.New(st, runner, opts, c.Logger)
			c.Logger.Info("mcp server ready", "owner", owner)
			return mcpserver.ServeStdio(mcpserver.WithOwner(ctx, owner), s, os.Stdin, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&owner, "owner", store.LocalOwner, "owner whose workouts the tools see")
	return cmd
}
