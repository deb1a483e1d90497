// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scix

import (
	"context"

	"github.com/pdiddy/scix/pkg/types"
)

var metricsTypes = []string{"basic", "citations", "indicators"}

// Metrics computes citation metrics for a set of papers.
func (c *Client) Metrics(ctx context.Context, bibcodes []string) (*types.Metrics, error) {
	if len(bibcodes) == 0 {
		return nil, InvalidQuery("metrics needs at least one bibcode")
	}
	var m types.Metrics
	payload := map[string]any{"bibcodes": bibcodes, "types": metricsTypes}
	if err := c.postJSON(ctx, "/metrics", payload, &m, "metrics"); err != nil {
		return nil, err
	}
	return &m, nil
}
