// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scix

import (
	"context"
	"strconv"
	"strings"

	"github.com/pdiddy/scix/pkg/types"
)

// ResolveReferences matches free-text citation strings to bibcodes. The
// result has one entry per input reference, in input order; references the
// service could not match have an empty Bibcode.
func (c *Client) ResolveReferences(ctx context.Context, references []string) ([]types.ResolvedReference, error) {
	if len(references) == 0 {
		return nil, InvalidQuery("reference resolution needs at least one reference")
	}
	for _, ref := range references {
		if strings.ContainsAny(ref, "\r\n") {
			return nil, InvalidQuery("references must be single lines: %q", ref)
		}
	}

	var raw struct {
		Resolved []struct {
			Bibcode string `json:"bibcode"`
			Score   any    `json:"score"`
		} `json:"resolved"`
	}
	if err := c.do(ctx, textRequest("/reference/text", strings.Join(references, "\n")), &raw, "reference"); err != nil {
		return nil, err
	}

	out := make([]types.ResolvedReference, len(references))
	for i, ref := range references {
		out[i].Reference = ref
		if i < len(raw.Resolved) {
			out[i].Bibcode = raw.Resolved[i].Bibcode
			out[i].Score = scoreString(raw.Resolved[i].Score)
		}
	}
	return out, nil
}

func scoreString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}
