// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the SciX client, the
// CLI and the MCP tool server: papers, search pages, citation metrics,
// libraries and the closed enumerations the remote API accepts.
package types

import (
	"fmt"
	"strings"
)

// DefaultSearchFields is the field list requested when the caller names none.
const DefaultSearchFields = "bibcode,title,author,year,pub,abstract,doi,identifier,doctype,esources,citation_count,property"

// RichSearchFields adds reading, volume and affiliation data for single-paper views.
const RichSearchFields = "bibcode,title,author,year,pub,abstract,doi,identifier,doctype,esources,citation_count,property,read_count,volume,page,keyword,aff"

// SortDirection orders search results.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort is a search sort order such as "citation_count desc".
type Sort struct {
	Field     string
	Direction SortDirection
}

// DefaultSort is newest first.
var DefaultSort = Sort{Field: "date", Direction: SortDesc}

// String renders the sort in the "field direction" wire form.
func (s Sort) String() string {
	if s.Field == "" {
		return DefaultSort.String()
	}
	dir := s.Direction
	if dir == "" {
		dir = SortDesc
	}
	return s.Field + " " + string(dir)
}

// ParseSort reads "field [asc|desc]". A missing direction means descending.
func ParseSort(s string) (Sort, error) {
	parts := strings.Fields(s)
	switch len(parts) {
	case 0:
		return DefaultSort, nil
	case 1:
		return Sort{Field: parts[0], Direction: SortDesc}, nil
	case 2:
		switch strings.ToLower(parts[1]) {
		case "asc":
			return Sort{Field: parts[0], Direction: SortAsc}, nil
		case "desc":
			return Sort{Field: parts[0], Direction: SortDesc}, nil
		}
	}
	return Sort{}, fmt.Errorf("invalid sort %q: want \"field [asc|desc]\"", s)
}

// SearchOptions controls one search request.
type SearchOptions struct {
	// Fields is a comma-separated field list; empty means DefaultSearchFields.
	Fields string

	// Sort defaults to DefaultSort when its Field is empty.
	Sort Sort

	// Rows is the page size; zero means 10.
	Rows int

	// Start is the zero-based offset of the first result.
	Start int
}
