// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scix/pkg/scix"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintf(stdout(cmd), "scix %s (client %s)\n", version, scix.Version)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
