// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scix

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/pdiddy/scix/pkg/types"
)

// ResolveLinks lists the links the resolver knows for a paper. A nil
// linkType returns every kind of link.
func (c *Client) ResolveLinks(ctx context.Context, bibcode string, linkType *types.LinkType) (json.RawMessage, error) {
	if strings.TrimSpace(bibcode) == "" {
		return nil, InvalidQuery("bibcode must not be empty")
	}
	path := "/resolver/" + url.PathEscape(bibcode)
	if linkType != nil {
		path += "/" + linkType.String()
	}
	var out json.RawMessage
	if err := c.do(ctx, getRequest(path, nil), &out, "links"); err != nil {
		return nil, err
	}
	return out, nil
}
