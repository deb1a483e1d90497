// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output renders SciX results for the terminal: tables for people,
// JSON and YAML for scripts, and CSL-YAML for reference managers.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scix/pkg/ratelimit"
	"github.com/pdiddy/scix/pkg/types"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSL   Format = "csl"
)

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	case string(FormatCSL):
		return FormatCSL, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

// WriteValue renders an arbitrary value. Raw JSON from the API is re-indented;
// the table format falls back to JSON since there are no columns to pick.
func WriteValue(w io.Writer, f Format, v any) error {
	if raw, ok := v.(json.RawMessage); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		v = decoded
	}
	switch f {
	case FormatYAML:
		return WriteYAML(w, v)
	case FormatCSL:
		return errCSL
	default:
		return WriteJSON(w, v)
	}
}

var errCSL = errors.New("csl output is only available for paper lists")

// WritePapers renders one page of search results. start is the offset of the
// first paper, used to number table rows.
func WritePapers(w io.Writer, f Format, resp *types.SearchResponse, start int) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, resp)
	case FormatYAML:
		return WriteYAML(w, resp)
	case FormatCSL:
		return FormatCSLItems(w, resp.Papers)
	default:
		_, err := io.WriteString(w, papersTable(resp, start)+"\n")
		return err
	}
}

// WritePaper renders a single paper in detail.
func WritePaper(w io.Writer, f Format, p *types.Paper) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, p)
	case FormatYAML:
		return WriteYAML(w, p)
	case FormatCSL:
		return FormatCSLItems(w, []types.Paper{*p})
	default:
		_, err := io.WriteString(w, paperTable(p)+"\n")
		return err
	}
}

// WriteLibraries renders a list of libraries.
func WriteLibraries(w io.Writer, f Format, libs []types.Library) error {
	switch f {
	case FormatTable:
		_, err := io.WriteString(w, librariesTable(libs)+"\n")
		return err
	case FormatCSL:
		return errCSL
	default:
		return WriteValue(w, f, libs)
	}
}

// WriteReferences renders resolved references.
func WriteReferences(w io.Writer, f Format, refs []types.ResolvedReference) error {
	switch f {
	case FormatTable:
		_, err := io.WriteString(w, referencesTable(refs)+"\n")
		return err
	case FormatCSL:
		return errCSL
	default:
		return WriteValue(w, f, refs)
	}
}

// WriteMetrics renders a metrics report.
func WriteMetrics(w io.Writer, f Format, m *types.Metrics) error {
	switch f {
	case FormatTable:
		_, err := io.WriteString(w, metricsTable(m)+"\n")
		return err
	case FormatCSL:
		return errCSL
	default:
		return WriteValue(w, f, m)
	}
}

// WriteLimits renders the rate limiter state.
func WriteLimits(w io.Writer, f Format, s ratelimit.State) error {
	switch f {
	case FormatTable:
		_, err := io.WriteString(w, limitsTable(s)+"\n")
		return err
	case FormatCSL:
		return errCSL
	default:
		return WriteValue(w, f, s)
	}
}
