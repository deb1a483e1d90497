// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scix

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pdiddy/scix/pkg/types"
)

// PaperURLBase is the landing page root for a bibcode.
const PaperURLBase = "https://scixplorer.org/abs/"

// ADS search API JSON structures.
type adsSearchResponse struct {
	Response struct {
		Docs     []adsDocument `json:"docs"`
		NumFound int           `json:"numFound"`
	} `json:"response"`
}

type adsDocument struct {
	Bibcode       string    `json:"bibcode"`
	Title         []string  `json:"title"`
	Author        []string  `json:"author"`
	Year          yearValue `json:"year"`
	Pub           string    `json:"pub"`
	Abstract      string    `json:"abstract"`
	DOI           []string  `json:"doi"`
	Identifier    []string  `json:"identifier"`
	Doctype       string    `json:"doctype"`
	Esources      []string  `json:"esources"`
	CitationCount *int      `json:"citation_count"`
	Property      []string  `json:"property"`
	Keyword       []string  `json:"keyword"`
	Aff           []string  `json:"aff"`
}

// yearValue accepts a year sent as either a JSON string or number.
type yearValue int

func (y *yearValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*y = 0
		return nil
	}
	s := string(b)
	if uq, err := strconv.Unquote(s); err == nil {
		s = uq
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// Unparseable years are dropped rather than failing the page.
		*y = 0
		return nil
	}
	*y = yearValue(n)
	return nil
}

// parseSearchResponse decodes a /search/query or /search/bigquery body.
// Documents without a title are dropped.
func parseSearchResponse(body []byte) (*types.SearchResponse, error) {
	var raw adsSearchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, newError(KindParse, "invalid search response", err)
	}
	resp := &types.SearchResponse{
		NumFound: raw.Response.NumFound,
		Papers:   make([]types.Paper, 0, len(raw.Response.Docs)),
	}
	for _, doc := range raw.Response.Docs {
		if p, ok := documentToPaper(doc); ok {
			resp.Papers = append(resp.Papers, p)
		}
	}
	return resp, nil
}

func documentToPaper(doc adsDocument) (types.Paper, bool) {
	if len(doc.Title) == 0 || doc.Title[0] == "" {
		return types.Paper{}, false
	}

	authors := make([]types.Author, 0, len(doc.Author))
	for _, a := range doc.Author {
		authors = append(authors, types.ParseAuthor(a))
	}

	var doi string
	if len(doc.DOI) > 0 {
		doi = doc.DOI[0]
	}
	arxivID := ExtractArxivID(doc.Identifier)

	var cites *int
	if doc.CitationCount != nil {
		n := max(*doc.CitationCount, 0)
		cites = &n
	}

	return types.Paper{
		Bibcode:       doc.Bibcode,
		Title:         doc.Title[0],
		Authors:       authors,
		Year:          int(doc.Year),
		Publication:   doc.Pub,
		Abstract:      doc.Abstract,
		DOI:           doi,
		ArxivID:       arxivID,
		Identifiers:   doc.Identifier,
		Esources:      doc.Esources,
		CitationCount: cites,
		Doctype:       doc.Doctype,
		Properties:    doc.Property,
		Keywords:      doc.Keyword,
		Affiliations:  doc.Aff,
		PDFLinks:      types.BuildPDFLinks(doc.Esources, doi, arxivID, doc.Bibcode),
		URL:           PaperURLBase + doc.Bibcode,
	}, true
}

// ExtractArxivID returns the first arXiv id in an ADS identifier list, either
// "arXiv:"-prefixed or a bare new-style id such as "2301.12345v2".
func ExtractArxivID(identifiers []string) string {
	for _, id := range identifiers {
		if rest, ok := strings.CutPrefix(id, "arXiv:"); ok {
			return rest
		}
		if isBareArxivID(id) {
			return id
		}
	}
	return ""
}

// isBareArxivID matches DDDD.DDDD or DDDD.DDDDD with an optional vN suffix.
func isBareArxivID(s string) bool {
	base := s
	if i := strings.LastIndexByte(s, 'v'); i > 0 && allDigits(s[i+1:]) {
		base = s[:i]
	}
	prefix, suffix, ok := strings.Cut(base, ".")
	if !ok {
		return false
	}
	return len(prefix) == 4 && allDigits(prefix) &&
		(len(suffix) == 4 || len(suffix) == 5) && allDigits(suffix)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseExportResponse(body []byte) (string, error) {
	var raw struct {
		Export *string `json:"export"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", newError(KindParse, "invalid export response", err)
	}
	if raw.Export == nil {
		return "", newError(KindParse, "export response has no \"export\" field", nil)
	}
	return *raw.Export, nil
}
