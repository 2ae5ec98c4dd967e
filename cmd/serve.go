package cmd

import (
	"github.com/spf13/cobra"

	"teamhub/config"
	"teamhub/connection"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return connection.StartServer(cmd.Context(), cfg)
		},
	}
}
