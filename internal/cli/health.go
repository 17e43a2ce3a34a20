package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up and how fast it answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			start := time.Now()
			if err := client.Get(cmd.Context(), "/api/health", &result); err != nil {
				return err
			}
			result.Server = cfg.ServerURL
			result.LatencyMs = time.Since(start).Milliseconds()

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
