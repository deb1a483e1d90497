// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/scix/internal/output"
	"github.com/pdiddy/scix/pkg/query"
	"github.com/pdiddy/scix/pkg/scix"
	"github.com/pdiddy/scix/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search SciX with an ADS query",
	Long: `Search runs an ADS query and prints one page of results. The query can be
given as arguments (author:"Einstein" year:1905) or assembled from the
field flags, which are ANDed onto any positional query.

Use --all to page through results up to --max. --save writes the query and
results to a YAML file; --load prints a saved file without calling the API.`,
	Example: `  scix search 'author:"Hawking, S" title:"black hole"' --sort "citation_count desc"
  scix search --first-author Rubin --year-range 1970-1980 --property refereed
  scix search 'abs:"dark energy"' --rows 50 --save dark-energy.yaml
  scix search --load dark-energy.yaml -o csl`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.Int("rows", 10, "results per page (max 2000)")
	f.Int("start", 0, "offset of the first result")
	f.String("sort", "", `sort order, e.g. "citation_count desc" (default "date desc")`)
	f.String("fields", "", "comma-separated fields to return")
	f.Bool("all", false, "page through results up to --max")
	f.Int("max", 100, "maximum results with --all")
	f.String("save", "", "write query and results to a YAML file")
	f.String("load", "", "print results from a saved YAML file instead of searching")

	f.String("author", "", "author name")
	f.String("first-author", "", "first author name")
	f.String("title", "", "title words")
	f.String("abstract", "", "abstract words")
	f.Int("year", 0, "publication year")
	f.String("year-range", "", "publication years FROM-TO")
	f.String("bibstem", "", "journal abbreviation, e.g. ApJ")
	f.String("object", "", "astronomical object name")
	f.String("property", "", "property flag, e.g. refereed")
	f.String("doctype", "", "document type, e.g. article")
	f.String("orcid", "", "author ORCID")

	rootCmd.AddCommand(searchCmd)
}

// buildQuery ANDs the field flags onto the positional query.
func buildQuery(cmd *cobra.Command, args []string) (string, error) {
	b := query.New()
	terms := 0
	and := func() *query.Builder {
		if terms > 0 {
			b.And()
		}
		terms++
		return b
	}

	if q := strings.TrimSpace(strings.Join(args, " ")); q != "" {
		and().Raw(q)
	}

	f := cmd.Flags()
	quoted := []struct {
		flag string
		add  func(string) *query.Builder
	}{
		{"author", b.Author},
		{"first-author", b.FirstAuthor},
		{"title", b.Title},
		{"abstract", b.Abstract},
		{"object", b.Object},
	}
	for _, q := range quoted {
		if v, _ := f.GetString(q.flag); v != "" {
			and()
			q.add(v)
		}
	}
	if y, _ := f.GetInt("year"); y != 0 {
		and().Year(y)
	}
	if r, _ := f.GetString("year-range"); r != "" {
		var from, to int
		if _, err := fmt.Sscanf(r, "%d-%d", &from, &to); err != nil {
			return "", fmt.Errorf("invalid --year-range %q: want FROM-TO", r)
		}
		and().YearRange(from, to)
	}
	plain := []struct {
		flag string
		add  func(string) *query.Builder
	}{
		{"bibstem", b.Bibstem},
		{"property", b.Property},
		{"doctype", b.Doctype},
		{"orcid", b.ORCID},
	}
	for _, p := range plain {
		if v, _ := f.GetString(p.flag); v != "" {
			and()
			p.add(v)
		}
	}

	q := b.Build()
	if err := query.Validate(q); err != nil {
		return "", err
	}
	return q, nil
}

func searchOptions(cmd *cobra.Command) (types.SearchOptions, error) {
	f := cmd.Flags()
	rows, _ := f.GetInt("rows")
	start, _ := f.GetInt("start")
	fields, _ := f.GetString("fields")
	opts := types.SearchOptions{Fields: fields, Rows: rows, Start: start}
	if s, _ := f.GetString("sort"); s != "" {
		sort, err := types.ParseSort(s)
		if err != nil {
			return opts, err
		}
		opts.Sort = sort
	}
	return opts, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if path, _ := cmd.Flags().GetString("load"); path != "" {
		qf, err := output.ReadQueryFile(path)
		if err != nil {
			return err
		}
		state.log.Debug("loaded saved search", zap.String("path", path), zap.String("query", qf.Query.Q))
		return output.WritePapers(stdout(cmd), state.format, qf.Response(), qf.Query.Start)
	}

	q, err := buildQuery(cmd, args)
	if err != nil {
		return err
	}
	opts, err := searchOptions(cmd)
	if err != nil {
		return err
	}
	client, err := apiClient()
	if err != nil {
		return err
	}

	var resp *types.SearchResponse
	if all, _ := cmd.Flags().GetBool("all"); all {
		limit, _ := cmd.Flags().GetInt("max")
		resp, err = client.SearchAll(cmd.Context(), q, limit, opts)
	} else {
		resp, err = client.SearchWithOptions(cmd.Context(), q, opts)
	}
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := output.WriteQueryFile(path, output.NewQueryFile(q, opts, resp, time.Now())); err != nil {
			return err
		}
		state.log.Info("saved search", zap.String("path", path), zap.Int("results", len(resp.Papers)))
	}
	return output.WritePapers(stdout(cmd), state.format, resp, opts.Start)
}

var paperCmd = &cobra.Command{
	Use:   "paper <bibcode|doi|arxiv-id>",
	Short: "Show full metadata for one paper",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		p, err := client.GetPaper(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return output.WritePaper(stdout(cmd), state.format, p)
	},
}

// relatedCommand builds refs, cites, similar and coreads, which all take one
// bibcode and print a page of papers.
func relatedCommand(use, short string, fetch func(*scix.Client, context.Context, string, int) (*types.SearchResponse, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <bibcode>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient()
			if err != nil {
				return err
			}
			rows, _ := cmd.Flags().GetInt("rows")
			resp, err := fetch(client, cmd.Context(), args[0], rows)
			if err != nil {
				return err
			}
			return output.WritePapers(stdout(cmd), state.format, resp, 0)
		},
	}
	cmd.Flags().Int("rows", 20, "number of papers")
	return cmd
}

var bigqueryCmd = &cobra.Command{
	Use:   "bigquery <bibcode>...",
	Short: "Search within a set of bibcodes",
	Long: `Bigquery filters a known set of bibcodes with an optional query. Bibcodes
come from the arguments or, with --file, one per line from a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bibcodes, err := bibcodeArgs(cmd, args)
		if err != nil {
			return err
		}
		q, _ := cmd.Flags().GetString("query")
		opts, err := searchOptions(cmd)
		if err != nil {
			return err
		}
		client, err := apiClient()
		if err != nil {
			return err
		}
		resp, err := client.BigQuery(cmd.Context(), bibcodes, q, opts)
		if err != nil {
			return err
		}
		return output.WritePapers(stdout(cmd), state.format, resp, opts.Start)
	},
}

func init() {
	rootCmd.AddCommand(paperCmd)
	rootCmd.AddCommand(
		relatedCommand("refs", "List papers a paper cites", (*scix.Client).References),
		relatedCommand("cites", "List papers citing a paper", (*scix.Client).Citations),
		relatedCommand("similar", "List papers with similar content", (*scix.Client).Similar),
		relatedCommand("coreads", "List papers frequently read together with a paper", (*scix.Client).Coreads),
	)

	f := bigqueryCmd.Flags()
	f.String("query", "", "query to apply to the set (default all)")
	f.Int("rows", 0, "results to return (default: number of bibcodes)")
	f.Int("start", 0, "offset of the first result")
	f.String("sort", "", "sort order")
	f.String("fields", "", "comma-separated fields to return")
	addFileFlag(bigqueryCmd)
	rootCmd.AddCommand(bigqueryCmd)
}
