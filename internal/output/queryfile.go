// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scix/pkg/types"
)

// QueryFile is the on-disk representation of a search query and its results.
// A search saved with --save can be reloaded with --load without spending
// API requests.
type QueryFile struct {
	Query   QueryParams   `yaml:"query"`
	Results []types.Paper `yaml:"results"`
	Summary QuerySummary  `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	Q      string `yaml:"q"`
	Sort   string `yaml:"sort,omitempty"`
	Fields string `yaml:"fields,omitempty"`
	Rows   int    `yaml:"rows"`
	Start  int    `yaml:"start,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	NumFound  int       `yaml:"num_found"`
	Returned  int       `yaml:"returned"`
	Timestamp time.Time `yaml:"timestamp"`
}

// NewQueryFile captures a search and its page of results.
func NewQueryFile(query string, opts types.SearchOptions, resp *types.SearchResponse, now time.Time) QueryFile {
	qf := QueryFile{
		Query: QueryParams{
			Q:      query,
			Sort:   opts.Sort.String(),
			Fields: opts.Fields,
			Rows:   opts.Rows,
			Start:  opts.Start,
		},
		Results: resp.Papers,
		Summary: QuerySummary{
			NumFound:  resp.NumFound,
			Returned:  len(resp.Papers),
			Timestamp: now.UTC(),
		},
	}
	return qf
}

// Response rebuilds the saved page of results.
func (qf *QueryFile) Response() *types.SearchResponse {
	papers := qf.Results
	if papers == nil {
		papers = []types.Paper{}
	}
	return &types.SearchResponse{Papers: papers, NumFound: qf.Summary.NumFound}
}

// Options converts stored QueryParams back into search options.
func (p QueryParams) Options() (types.SearchOptions, error) {
	opts := types.SearchOptions{Fields: p.Fields, Rows: p.Rows, Start: p.Start}
	if p.Sort != "" {
		s, err := types.ParseSort(p.Sort)
		if err != nil {
			return opts, fmt.Errorf("invalid sort %q: %w", p.Sort, err)
		}
		opts.Sort = s
	}
	return opts, nil
}

// WriteQueryFile saves a query file as YAML.
func WriteQueryFile(path string, qf QueryFile) error {
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	if qf.Query.Q == "" {
		return nil, errors.New("parsing query file: missing query.q")
	}
	return &qf, nil
}
