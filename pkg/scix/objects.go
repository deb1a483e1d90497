// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scix

import (
	"context"
	"encoding/json"
	"fmt"
)

// ResolveObjects maps astronomical object names (M31, NGC 1234) to the
// identifiers SIMBAD and NED know them by. The response is passed through.
func (c *Client) ResolveObjects(ctx context.Context, objects []string) (json.RawMessage, error) {
	if len(objects) == 0 {
		return nil, InvalidQuery("object resolution needs at least one object name")
	}
	queries := make([]string, len(objects))
	for i, o := range objects {
		queries[i] = fmt.Sprintf("object:%q", o)
	}
	var out json.RawMessage
	if err := c.postJSON(ctx, "/objects", map[string]any{"query": queries}, &out, "objects"); err != nil {
		return nil, err
	}
	return out, nil
}
