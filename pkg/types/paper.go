// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Paper is one bibliographic record returned by a SciX search.
type Paper struct {
	// Bibcode is the ADS bibcode, the primary identifier.
	Bibcode string `json:"bibcode" yaml:"bibcode"`

	// Title is the first title ADS reports for the record.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`

	// Year is the publication year, zero when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Publication is the journal or venue name.
	Publication string `json:"publication,omitempty" yaml:"publication,omitempty"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// DOI is the first DOI listed for the record.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// ArxivID is extracted from the identifier list (e.g. "2301.12345").
	ArxivID string `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`

	// Identifiers is the raw identifier list from ADS.
	Identifiers []string `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`

	// Esources lists electronic source flags (EPRINT_PDF, PUB_PDF, ...).
	Esources []string `json:"esources,omitempty" yaml:"esources,omitempty"`

	// CitationCount is nil when the field was not requested.
	CitationCount *int `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`

	// Doctype is the document type (article, inproceedings, ...).
	Doctype string `json:"doctype,omitempty" yaml:"doctype,omitempty"`

	// Properties lists property flags (REFEREED, OPENACCESS, ...).
	Properties []string `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Keywords and Affiliations are only present in the rich single-paper view.
	Keywords     []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`

	// PDFLinks are full-text links ordered by preference.
	PDFLinks []PDFLink `json:"pdf_links,omitempty" yaml:"pdf_links,omitempty"`

	// URL is the SciX landing page for the record.
	URL string `json:"url" yaml:"url"`
}

// SearchResponse holds one page of search results.
type SearchResponse struct {
	Papers []Paper `json:"papers" yaml:"papers"`

	// NumFound is the total number of matches, which may exceed len(Papers).
	NumFound int `json:"num_found" yaml:"num_found"`
}

// Author is a paper author parsed from the ADS "Last, First M." form.
type Author struct {
	Name       string `json:"name" yaml:"name"`
	FamilyName string `json:"family_name" yaml:"family_name"`
	GivenName  string `json:"given_name,omitempty" yaml:"given_name,omitempty"`
}

// ParseAuthor splits an ADS author string. "Last, First" splits on the first
// comma; otherwise the last whitespace-separated word is the family name.
func ParseAuthor(name string) Author {
	if family, given, ok := strings.Cut(name, ","); ok {
		return Author{
			Name:       name,
			FamilyName: strings.TrimSpace(family),
			GivenName:  strings.TrimSpace(given),
		}
	}
	words := strings.Fields(name)
	if len(words) > 1 {
		return Author{
			Name:       name,
			FamilyName: words[len(words)-1],
			GivenName:  strings.Join(words[:len(words)-1], " "),
		}
	}
	return Author{Name: name, FamilyName: strings.TrimSpace(name)}
}

// DisplayName formats the author as "First M. Last".
func (a Author) DisplayName() string {
	if a.GivenName == "" {
		return a.FamilyName
	}
	return a.GivenName + " " + a.FamilyName
}

// BibTeXName formats the author as "Last, First M.".
func (a Author) BibTeXName() string {
	if a.GivenName == "" {
		return a.FamilyName
	}
	return a.FamilyName + ", " + a.GivenName
}

// PDFLinkType identifies where a full-text link points.
type PDFLinkType string

const (
	LinkArxiv     PDFLinkType = "arxiv"
	LinkPublisher PDFLinkType = "publisher"
	LinkADSScan   PDFLinkType = "ads_scan"
)

// PDFLink is a full-text link for a paper.
type PDFLink struct {
	URL   string      `json:"url" yaml:"url"`
	Type  PDFLinkType `json:"type" yaml:"type"`
	Label string      `json:"label" yaml:"label"`
}

// BuildPDFLinks derives full-text links from ADS esources, DOI, arXiv id and
// bibcode. Esource order is kept; an arXiv or publisher link that no esource
// produced is appended as a fallback.
func BuildPDFLinks(esources []string, doi, arxivID, bibcode string) []PDFLink {
	var links []PDFLink
	hasPreprint, hasPublisher := false, false

	for _, es := range esources {
		switch strings.ToUpper(es) {
		case "EPRINT_PDF":
			if arxivID != "" {
				links = append(links, arxivLink(arxivID))
				hasPreprint = true
			}
		case "PUB_PDF", "PUB_HTML":
			if doi != "" && !hasPublisher {
				links = append(links, publisherLink(doi))
				hasPublisher = true
			}
		case "ADS_PDF", "ADS_SCAN":
			links = append(links, PDFLink{
				URL:   "https://articles.adsabs.harvard.edu/pdf/" + bibcode,
				Type:  LinkADSScan,
				Label: "ADS Scan",
			})
		}
	}

	if !hasPreprint && arxivID != "" {
		links = append(links, arxivLink(arxivID))
	}
	if !hasPublisher && doi != "" {
		links = append(links, publisherLink(doi))
	}
	return links
}

func arxivLink(id string) PDFLink {
	return PDFLink{URL: fmt.Sprintf("https://arxiv.org/pdf/%s.pdf", id), Type: LinkArxiv, Label: "arXiv PDF"}
}

func publisherLink(doi string) PDFLink {
	return PDFLink{URL: "https://doi.org/" + doi, Type: LinkPublisher, Label: "Publisher"}
}
