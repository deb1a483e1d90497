// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/scix/internal/output"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Show the local token budget and the server's rate-limit window",
	Long: `Limits prints the local token bucket and what the server last reported in
its X-RateLimit headers. The server values are unknown until a request has
been made, so --probe sends one cheap search first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		if probe, _ := cmd.Flags().GetBool("probe"); probe {
			if _, err := client.Search(cmd.Context(), "bibcode:1905AnP...322..891E", 1); err != nil {
				return err
			}
		}
		return output.WriteLimits(stdout(cmd), state.format, client.Limiter().Snapshot())
	},
}

func init() {
	limitsCmd.Flags().Bool("probe", false, "make one request to read the server's limits")
	rootCmd.AddCommand(limitsCmd)
}
