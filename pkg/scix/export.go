// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scix

import (
	"context"
	"net/http"

	"github.com/pdiddy/scix/pkg/types"
)

// Export renders bibcodes in a citation format. A nil sort keeps the
// server's default order.
func (c *Client) Export(ctx context.Context, bibcodes []string, format types.ExportFormat, sort *types.Sort) (string, error) {
	if len(bibcodes) == 0 {
		return "", InvalidQuery("export needs at least one bibcode")
	}
	payload := map[string]any{"bibcode": bibcodes}
	if sort != nil {
		payload["sort"] = sort.String()
	}
	r, err := jsonRequest(http.MethodPost, "/export/"+format.String(), payload)
	if err != nil {
		return "", err
	}
	body, err := c.execute(ctx, r)
	if err != nil {
		return "", err
	}
	return parseExportResponse(body)
}

// ExportBibTeX is Export in BibTeX with the default order.
func (c *Client) ExportBibTeX(ctx context.Context, bibcodes []string) (string, error) {
	return c.Export(ctx, bibcodes, types.ExportBibTeX, nil)
}
