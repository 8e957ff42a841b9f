package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hospos-dev/hospos/internal/stubapi"
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run the in-memory development API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := stubapi.NewServer(cfg.JWTSecret, logger)
		logger.Info().Str("port", cfg.StubPort).Msg("stub API listening")
		return srv.Start(":" + cfg.StubPort)
	},
}

func init() {
	rootCmd.AddCommand(stubCmd)
}
