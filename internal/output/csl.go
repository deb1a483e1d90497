package output

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scix/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps ADS doctypes onto CSL item types. Anything else is "article".
var cslTypes = map[string]string{
	"article":       "article-journal",
	"eprint":        "article",
	"inproceedings": "paper-conference",
	"abstract":      "paper-conference",
	"book":          "book",
	"inbook":        "chapter",
	"phdthesis":     "thesis",
	"mastersthesis": "thesis",
	"techreport":    "report",
	"software":      "software",
	"catalog":       "dataset",
}

// FormatCSLItems writes papers as a CSL-YAML list to w.
func FormatCSLItems(w io.Writer, papers []types.Paper) error {
	items := make([]CSLItem, len(papers))
	for i, p := range papers {
		items[i] = ToCSLItem(p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// ToCSLItem converts a Paper to a CSLItem keyed by bibcode.
func ToCSLItem(p types.Paper) CSLItem {
	item := CSLItem{
		ID:             p.Bibcode,
		Type:           "article",
		Title:          p.Title,
		ContainerTitle: p.Publication,
		Abstract:       p.Abstract,
		DOI:            p.DOI,
		URL:            p.URL,
	}
	if t, ok := cslTypes[strings.ToLower(p.Doctype)]; ok {
		item.Type = t
	}

	for _, a := range p.Authors {
		item.Author = append(item.Author, cslName(a))
	}

	if p.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{p.Year}}}
	}
	return item
}

// cslName uses the literal field for single-token names such as
// collaborations ("Planck Collaboration" has no given name either way).
func cslName(a types.Author) CSLName {
	if a.GivenName == "" {
		return CSLName{Literal: strings.TrimSpace(a.Name)}
	}
	return CSLName{Family: a.FamilyName, Given: a.GivenName}
}
