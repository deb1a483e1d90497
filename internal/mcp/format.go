// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/scix/pkg/types"
)

const (
	listAuthors   = 3
	detailAuthors = 10
	detailShown   = 5
)

// formatSearchResults renders a page of results as a numbered list with a
// pagination hint when more results exist.
func formatSearchResults(resp *types.SearchResponse, start int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results:\n\n", resp.NumFound)

	for i, p := range resp.Papers {
		fmt.Fprintf(&b, "%d. %s", start+i+1, p.Title)
		if p.Year > 0 {
			fmt.Fprintf(&b, " (%d)", p.Year)
		}
		fmt.Fprintf(&b, "\n   %s\n   Bibcode: %s\n", listAuthorNames(p.Authors), p.Bibcode)
		if p.DOI != "" {
			fmt.Fprintf(&b, "   DOI: %s\n", p.DOI)
		}
		if p.CitationCount != nil {
			fmt.Fprintf(&b, "   Citations: %d\n", *p.CitationCount)
		}
		b.WriteByte('\n')
	}

	if shown := start + len(resp.Papers); resp.NumFound > shown {
		fmt.Fprintf(&b, "*Use start=%d to see more results*\n", shown)
	}
	return b.String()
}

func listAuthorNames(authors []types.Author) string {
	if len(authors) > listAuthors {
		return authors[0].FamilyName + " et al."
	}
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.FamilyName
	}
	return strings.Join(names, ", ")
}

// formatPaper renders the markdown detail view of one paper.
func formatPaper(p *types.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Authors:** %s\n", detailAuthorNames(p.Authors))
	if p.Year > 0 {
		fmt.Fprintf(&b, "**Year:** %d\n", p.Year)
	}

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "**%s:** %s\n", label, value)
		}
	}
	field("Publication", p.Publication)
	field("Type", p.Doctype)
	field("Bibcode", p.Bibcode)
	field("DOI", p.DOI)
	field("arXiv", p.ArxivID)
	if p.CitationCount != nil {
		fmt.Fprintf(&b, "**Citations:** %d\n", *p.CitationCount)
	}
	field("Properties", strings.Join(p.Properties, ", "))
	field("Keywords", strings.Join(p.Keywords, ", "))
	field("Affiliations", strings.Join(p.Affiliations, "; "))

	if p.Abstract != "" {
		fmt.Fprintf(&b, "\n**Abstract:**\n%s\n", p.Abstract)
	}
	if len(p.PDFLinks) > 0 {
		b.WriteString("\n**Links:**\n")
		for _, l := range p.PDFLinks {
			fmt.Fprintf(&b, "- [%s](%s)\n", l.Label, l.URL)
		}
	}
	fmt.Fprintf(&b, "\n**ADS:** %s\n", p.URL)
	return b.String()
}

func detailAuthorNames(authors []types.Author) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.Name)
	}
	if len(names) > detailAuthors {
		return fmt.Sprintf("%s ... and %d more", strings.Join(names[:detailShown], "; "), len(names)-detailShown)
	}
	return strings.Join(names, "; ")
}

func prettyJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return string(data), nil
}

// jsonResult pretty-prints a raw API payload.
func jsonResult(raw json.RawMessage, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "null", nil
	}
	return prettyJSON(raw)
}
