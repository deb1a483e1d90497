// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scix

import (
	"context"
	"encoding/json"

	"github.com/pdiddy/scix/pkg/types"
)

// AuthorNetwork returns the co-authorship network of a set of papers.
func (c *Client) AuthorNetwork(ctx context.Context, bibcodes []string) (json.RawMessage, error) {
	return c.Network(ctx, bibcodes, types.NetworkAuthor)
}

// PaperNetwork returns the citation/reference clusters of a set of papers.
func (c *Client) PaperNetwork(ctx context.Context, bibcodes []string) (json.RawMessage, error) {
	return c.Network(ctx, bibcodes, types.NetworkPaper)
}

// Network returns the visualization network of the given type. The graph
// is passed through undecoded.
func (c *Client) Network(ctx context.Context, bibcodes []string, kind types.NetworkType) (json.RawMessage, error) {
	if len(bibcodes) == 0 {
		return nil, InvalidQuery("network needs at least one bibcode")
	}
	var out json.RawMessage
	payload := map[string]any{"bibcodes": bibcodes, "types": []string{kind.String()}}
	if err := c.postJSON(ctx, "/vis/"+kind.String()+"-network", payload, &out, "network"); err != nil {
		return nil, err
	}
	return out, nil
}

// CitationHelper suggests papers frequently cited alongside bibcodes but not
// among them.
func (c *Client) CitationHelper(ctx context.Context, bibcodes []string) (json.RawMessage, error) {
	if len(bibcodes) == 0 {
		return nil, InvalidQuery("citation helper needs at least one bibcode")
	}
	var out json.RawMessage
	if err := c.postJSON(ctx, "/citation_helper", map[string]any{"bibcodes": bibcodes}, &out, "citation helper"); err != nil {
		return nil, err
	}
	return out, nil
}
