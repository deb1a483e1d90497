// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scix/internal/secrets"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the SciX API token stored in the OS keyring",
}

var authSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store an API token in the OS keyring",
	Long: `Set stores the token in the OS keyring. Without an argument the token is
read from the first line of stdin, which keeps it out of shell history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading token from stdin: %w", err)
			}
			token = line
		}
		if err := secrets.StoreToken(token); err != nil {
			return err
		}
		return done(cmd, "Token stored in keyring")
	},
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the API token from the OS keyring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := secrets.DeleteToken(); err != nil {
			return err
		}
		return done(cmd, "Token removed from keyring")
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which token will be used and where it came from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if state.cfg.Token == "" {
			return done(cmd, "No API token configured")
		}
		return done(cmd, "Token %s (from %s)", maskToken(state.cfg.Token), state.cfg.TokenSource)
	},
}

// maskToken shows the last four characters of a token.
func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", 8) + token[len(token)-4:]
}

func init() {
	authCmd.AddCommand(authSetCmd, authClearCmd, authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
