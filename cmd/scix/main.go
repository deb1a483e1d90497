// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scix CLI: search, export, metrics
// and library management against SciX / NASA ADS, plus an MCP tool server
// over stdio.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/scix/internal/config"
	"github.com/pdiddy/scix/internal/logging"
	"github.com/pdiddy/scix/internal/output"
	"github.com/pdiddy/scix/pkg/scix"
	"github.com/pdiddy/scix/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// app holds the state built once per invocation in PersistentPreRunE.
type app struct {
	v      *viper.Viper
	cfg    types.ClientConfig
	log    *zap.Logger
	format output.Format
	client *scix.Client
}

var state app

// rootCmd is the base command for the scix CLI.
var rootCmd = &cobra.Command{
	Use:   "scix",
	Short: "Search and manage literature in SciX / NASA ADS",
	Long: `scix is a command-line client for the SciX (NASA ADS) API. It searches the
literature, exports citations, computes metrics, resolves references and
objects, and manages personal libraries.

All requests share one rate limiter that also follows the server's
X-RateLimit headers. Set the API token with --token, SCIX_API_TOKEN,
ADS_API_TOKEN, the config file, .secrets/scix-api-token or "scix auth set".

"scix serve" runs the same operations as an MCP tool server on stdin/stdout.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./scix.yaml or $XDG_CONFIG_HOME/scix/scix.yaml)")
	pf.String("token", "", "SciX API token (overrides environment and config)")
	pf.StringP("output", "o", "table", "output format: table, json, yaml, csl")
	pf.BoolP("verbose", "v", false, "log requests and rate-limit waits to stderr")
	pf.String("secrets-dir", "", "directory holding scix-api-token (default: .secrets)")
}

// initConfig runs before every command and rebuilds viper from flags, the
// config file and the environment.
func initConfig() {
	state = app{v: viper.New()}
}

func setup(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if err := config.NewViper(state.v, cfgFile); err != nil {
		return err
	}

	level, format := config.LogSettings(state.v)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	if cmd.Annotations["log-format"] != "" {
		format = cmd.Annotations["log-format"]
	}
	log, err := logging.New(level, logging.Format(format))
	if err != nil {
		return err
	}
	state.log = log
	if used := state.v.ConfigFileUsed(); used != "" {
		log.Debug("using config file", zap.String("path", used))
	}

	outFlag, _ := cmd.Flags().GetString("output")
	if state.format, err = output.ParseFormat(outFlag); err != nil {
		return err
	}

	token, _ := cmd.Flags().GetString("token")
	secretsDir, _ := cmd.Flags().GetString("secrets-dir")
	state.cfg, err = config.Load(state.v, config.Options{
		Token:       token,
		SecretsDir:  secretsDir,
		SkipKeyring: state.v.GetBool("no_keyring"),
		Log:         log,
	})
	return err
}

// apiClient builds the SciX client on first use so commands that never
// reach the API work with a broken base URL.
func apiClient() (*scix.Client, error) {
	if state.client != nil {
		return state.client, nil
	}
	c, err := scix.New(state.cfg, scix.WithLogger(state.log))
	if err != nil {
		return nil, err
	}
	state.client = c
	return c, nil
}

// stdout is where command results go; logs always go to stderr.
func stdout(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if state.log != nil {
		_ = state.log.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
