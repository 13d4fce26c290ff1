package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/logsheet/internal/server"
)

func (c *CLI) tokenCommand() *cobra.Command {
	var (
		name string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <username>",
		Short: "Issue a bearer token for the HTTP server",
		Long: `Sign a token with the configured jwt_secret. Requests carrying it act as
<username> and see only that user's workouts.`,
		Example: `  curl -H "Authorization: Bearer $(logsheet token anna)" localhost:8080/api/v1/workouts`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			token, err := server.IssueToken(cfg.Server.JWTSecret, server.Identity{Username: args[0], Name: name}, ttl, time.Now())
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("issued token", "username", args[0], "expires", time.Now().Add(ttl).Format(time.RFC3339))
			fmt.Fprintln(stdout, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name stored in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", server.DefaultTokenTTL, "token lifetime")
	return cmd
}
