// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/scix/internal/output"
	"github.com/pdiddy/scix/pkg/types"
)

var networkCmd = &cobra.Command{
	Use:   "network <bibcode>...",
	Short: "Build an author or paper network for a set of papers",
	RunE: func(cmd *cobra.Command, args []string) error {
		bibcodes, err := bibcodeArgs(cmd, args)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("type")
		kind, err := types.ParseNetworkType(name)
		if err != nil {
			return err
		}
		client, err := apiClient()
		if err != nil {
			return err
		}
		raw, err := client.Network(cmd.Context(), bibcodes, kind)
		if err != nil {
			return err
		}
		return output.WriteValue(stdout(cmd), state.format, raw)
	},
}

var citationHelperCmd = &cobra.Command{
	Use:   "citation-helper <bibcode>...",
	Short: "Suggest papers that are cited with the given ones but missing from them",
	RunE: func(cmd *cobra.Command, args []string) error {
		bibcodes, err := bibcodeArgs(cmd, args)
		if err != nil {
			return err
		}
		client, err := apiClient()
		if err != nil {
			return err
		}
		raw, err := client.CitationHelper(cmd.Context(), bibcodes)
		if err != nil {
			return err
		}
		return output.WriteValue(stdout(cmd), state.format, raw)
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <reference>...",
	Short: "Resolve free-text references to bibcodes",
	Long: `Resolve matches free-text reference strings such as
"Einstein, A. 1905, AnP, 17, 891" against SciX and prints the bibcode,
score and match status for each. With --file, each line is one reference.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		refs, err := bibcodeArgs(cmd, args)
		if err != nil {
			return err
		}
		client, err := apiClient()
		if err != nil {
			return err
		}
		resolved, err := client.ResolveReferences(cmd.Context(), refs)
		if err != nil {
			return err
		}
		return output.WriteReferences(stdout(cmd), state.format, resolved)
	},
}

var objectsCmd = &cobra.Command{
	Use:   "objects <name>...",
	Short: "Resolve astronomical object names through SIMBAD and NED",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		raw, err := client.ResolveObjects(cmd.Context(), args)
		if err != nil {
			return err
		}
		return output.WriteValue(stdout(cmd), state.format, raw)
	},
}

var linksCmd = &cobra.Command{
	Use:   "links <bibcode>",
	Short: "Show full-text, data and related links for a paper",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var linkType *types.LinkType
		if name, _ := cmd.Flags().GetString("type"); name != "" {
			lt, err := types.ParseLinkType(name)
			if err != nil {
				return err
			}
			linkType = &lt
		}
		client, err := apiClient()
		if err != nil {
			return err
		}
		raw, err := client.ResolveLinks(cmd.Context(), args[0], linkType)
		if err != nil {
			return err
		}
		return output.WriteValue(stdout(cmd), state.format, raw)
	},
}

func init() {
	networkCmd.Flags().StringP("type", "t", "author", "network type: author or paper")
	addFileFlag(networkCmd)
	addFileFlag(citationHelperCmd)
	addFileFlag(resolveCmd)
	linksCmd.Flags().StringP("type", "t", "", "link type: esource, data, citation, reference, coreads (default: all)")

	rootCmd.AddCommand(networkCmd, citationHelperCmd, resolveCmd, objectsCmd, linksCmd)
}
