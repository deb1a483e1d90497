// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/scix/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP tool server on stdin/stdout",
	Long: `Serve speaks JSON-RPC 2.0 over stdin/stdout, one message per line, and
exposes search, export, metrics, network, object, reference, link, paper and
library operations as MCP tools. Logs are written to stderr as JSON so that
stdout carries protocol messages only.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{"log-format": "json"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		if !client.HasToken() {
			state.log.Warn("no API token configured; tool calls will fail until one is set")
		}
		srv, err := mcp.NewServer(client, state.log.Named("mcp"))
		if err != nil {
			return err
		}
		state.log.Info("serving MCP on stdio", zap.String("version", version))
		return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
