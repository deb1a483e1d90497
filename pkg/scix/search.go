// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scix

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/scix/pkg/types"
)

// MaxRowsPerPage is the largest page the search endpoint serves.
const MaxRowsPerPage = 2000

const defaultRows = 10

// Search runs query with the default fields and sort.
func (c *Client) Search(ctx context.Context, query string, rows int) (*types.SearchResponse, error) {
	return c.SearchWithOptions(ctx, query, types.SearchOptions{Rows: rows})
}

// SearchWithOptions runs one page of a search.
func (c *Client) SearchWithOptions(ctx context.Context, query string, opts types.SearchOptions) (*types.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, InvalidQuery("query must not be empty")
	}
	fields := opts.Fields
	if fields == "" {
		fields = types.DefaultSearchFields
	}
	rows := opts.Rows
	if rows <= 0 {
		rows = defaultRows
	}
	if rows > MaxRowsPerPage {
		rows = MaxRowsPerPage
	}
	start := max(opts.Start, 0)

	params := url.Values{
		"q":     {query},
		"fl":    {fields},
		"rows":  {strconv.Itoa(rows)},
		"start": {strconv.Itoa(start)},
		"sort":  {opts.Sort.String()},
	}
	body, err := c.execute(ctx, getRequest("/search/query", params))
	if err != nil {
		return nil, err
	}
	return parseSearchResponse(body)
}

// SearchAll pages through results until maxResults papers are collected or
// the result set is exhausted. Pages are merged in order; NumFound is the
// server's total.
func (c *Client) SearchAll(ctx context.Context, query string, maxResults int, opts types.SearchOptions) (*types.SearchResponse, error) {
	if maxResults <= 0 {
		maxResults = defaultRows
	}
	out := &types.SearchResponse{}
	start := max(opts.Start, 0)
	for len(out.Papers) < maxResults {
		page := opts
		page.Start = start
		page.Rows = min(maxResults-len(out.Papers), MaxRowsPerPage)

		resp, err := c.SearchWithOptions(ctx, query, page)
		if err != nil {
			return nil, err
		}
		out.NumFound = resp.NumFound
		out.Papers = append(out.Papers, resp.Papers...)

		c.log.Debug("search page",
			zap.Int("start", start),
			zap.Int("rows", page.Rows),
			zap.Int("collected", len(out.Papers)),
			zap.Int("num_found", resp.NumFound),
		)

		// Titleless documents are dropped by the parser, so advance by the
		// page size rather than by the number of papers kept.
		start += page.Rows
		if start >= resp.NumFound {
			break
		}
	}
	if len(out.Papers) > maxResults {
		out.Papers = out.Papers[:maxResults]
	}
	return out, nil
}

// BigQuery searches within a fixed set of bibcodes. An empty query matches
// every bibcode in the set.
func (c *Client) BigQuery(ctx context.Context, bibcodes []string, query string, opts types.SearchOptions) (*types.SearchResponse, error) {
	if len(bibcodes) == 0 {
		return nil, InvalidQuery("bigquery needs at least one bibcode")
	}
	if query == "" {
		query = "*:*"
	}
	fields := opts.Fields
	if fields == "" {
		fields = types.DefaultSearchFields
	}
	rows := opts.Rows
	if rows <= 0 {
		rows = len(bibcodes)
	}

	payload := map[string]any{
		"bibcodes": bibcodes,
		"query":    fmt.Sprintf("q=%s&fl=%s&rows=%d&sort=%s", query, fields, rows, opts.Sort.String()),
	}
	r, err := jsonRequest(http.MethodPost, "/search/bigquery", payload)
	if err != nil {
		return nil, err
	}
	body, err := c.execute(ctx, r)
	if err != nil {
		return nil, err
	}
	return parseSearchResponse(body)
}

// References lists the papers cited by bibcode.
func (c *Client) References(ctx context.Context, bibcode string, rows int) (*types.SearchResponse, error) {
	return c.Search(ctx, "references(bibcode:"+bibcode+")", rows)
}

// Citations lists the papers citing bibcode.
func (c *Client) Citations(ctx context.Context, bibcode string, rows int) (*types.SearchResponse, error) {
	return c.Search(ctx, "citations(bibcode:"+bibcode+")", rows)
}

// Similar lists papers with content similar to bibcode.
func (c *Client) Similar(ctx context.Context, bibcode string, rows int) (*types.SearchResponse, error) {
	return c.Search(ctx, "similar(bibcode:"+bibcode+")", rows)
}

// Coreads lists papers read by the readers of bibcode.
func (c *Client) Coreads(ctx context.Context, bibcode string, rows int) (*types.SearchResponse, error) {
	return c.Search(ctx, "trending(bibcode:"+bibcode+")", rows)
}

// GetPaper fetches the rich metadata of one paper by bibcode, DOI or arXiv id.
func (c *Client) GetPaper(ctx context.Context, id string) (*types.Paper, error) {
	if strings.TrimSpace(id) == "" {
		return nil, InvalidQuery("paper identifier must not be empty")
	}
	resp, err := c.SearchWithOptions(ctx, "identifier:"+quoteIfNeeded(id), types.SearchOptions{
		Fields: types.RichSearchFields,
		Rows:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Papers) == 0 {
		return nil, &Error{Kind: KindNotFound, Message: "paper not found: " + id}
	}
	return &resp.Papers[0], nil
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " :\"") && !strings.HasPrefix(s, "\"") {
		return strconv.Quote(s)
	}
	return s
}
