// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/scix/internal/output"
	"github.com/pdiddy/scix/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export <bibcode>...",
	Short: "Export citations in a bibliographic format",
	Long: fmt.Sprintf(`Export renders papers in one of the SciX export formats:
%s.

The exported text is printed as-is; --output does not apply.`, strings.Join(types.ExportFormatNames(), ", ")),
	Example: `  scix export 2019ApJ...882L..24A 1905AnP...322..891E
  scix export --format ris --file bibcodes.txt --out refs.ris`,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringP("format", "f", "bibtex", "export format")
	f.String("sort", "", `sort order of the entries, e.g. "date desc"`)
	f.String("out", "", "write to a file instead of stdout")
	addFileFlag(exportCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	bibcodes, err := bibcodeArgs(cmd, args)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("format")
	format, err := types.ParseExportFormat(name)
	if err != nil {
		return err
	}
	var sort *types.Sort
	if s, _ := cmd.Flags().GetString("sort"); s != "" {
		parsed, err := types.ParseSort(s)
		if err != nil {
			return err
		}
		sort = &parsed
	}

	client, err := apiClient()
	if err != nil {
		return err
	}
	text, err := client.Export(cmd.Context(), bibcodes, format, sort)
	if err != nil {
		return err
	}

	var w io.Writer = stdout(cmd)
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		state.log.Info("wrote export", zap.String("path", path), zap.Stringer("format", format), zap.Int("papers", len(bibcodes)))
		return nil
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err = io.WriteString(w, text)
	return err
}

var metricsCmd = &cobra.Command{
	Use:   "metrics <bibcode>...",
	Short: "Compute citation metrics for a set of papers",
	RunE: func(cmd *cobra.Command, args []string) error {
		bibcodes, err := bibcodeArgs(cmd, args)
		if err != nil {
			return err
		}
		client, err := apiClient()
		if err != nil {
			return err
		}
		m, err := client.Metrics(cmd.Context(), bibcodes)
		if err != nil {
			return err
		}
		return output.WriteMetrics(stdout(cmd), state.format, m)
	},
}

func init() {
	addFileFlag(metricsCmd)
	rootCmd.AddCommand(metricsCmd)
}
