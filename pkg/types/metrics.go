// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Metrics holds the citation metrics the /metrics endpoint computes for a
// set of papers.
type Metrics struct {
	BasicStats    *BasicStats    `json:"basic stats,omitempty" yaml:"basic_stats,omitempty"`
	CitationStats *CitationStats `json:"citation stats,omitempty" yaml:"citation_stats,omitempty"`
	Indicators    *Indicators    `json:"indicators,omitempty" yaml:"indicators,omitempty"`

	// Refereed variants are reported separately by the API.
	BasicStatsRefereed    *BasicStats    `json:"basic stats refereed,omitempty" yaml:"basic_stats_refereed,omitempty"`
	CitationStatsRefereed *CitationStats `json:"citation stats refereed,omitempty" yaml:"citation_stats_refereed,omitempty"`
	IndicatorsRefereed    *Indicators    `json:"indicators refereed,omitempty" yaml:"indicators_refereed,omitempty"`

	// Skipped lists bibcodes the service could not find.
	Skipped []string `json:"skipped bibcodes,omitempty" yaml:"skipped,omitempty"`
}

// BasicStats summarizes paper counts and reads.
type BasicStats struct {
	NumberOfPapers       *int     `json:"number of papers,omitempty" yaml:"number_of_papers,omitempty"`
	NormalizedPaperCount *float64 `json:"normalized paper count,omitempty" yaml:"normalized_paper_count,omitempty"`
	TotalReads           *int     `json:"total number of reads,omitempty" yaml:"total_reads,omitempty"`
	AverageReads         *float64 `json:"average number of reads,omitempty" yaml:"average_reads,omitempty"`
	MedianReads          *float64 `json:"median number of reads,omitempty" yaml:"median_reads,omitempty"`
	TotalDownloads       *int     `json:"total number of downloads,omitempty" yaml:"total_downloads,omitempty"`
}

type CitationStats struct {
	NumberOfCitingPapers   *int     `json:"number of citing papers,omitempty" yaml:"number_of_citing_papers,omitempty"`
	TotalCitations         *int     `json:"total number of citations,omitempty" yaml:"total_citations,omitempty"`
	SelfCitations          *int     `json:"number of self-citations,omitempty" yaml:"self_citations,omitempty"`
	AverageCitations       *float64 `json:"average number of citations,omitempty" yaml:"average_citations,omitempty"`
	MedianCitations        *float64 `json:"median number of citations,omitempty" yaml:"median_citations,omitempty"`
	NormalizedCitations    *float64 `json:"normalized number of citations,omitempty" yaml:"normalized_citations,omitempty"`
	TotalRefereedCitations *int     `json:"total number of refereed citations,omitempty" yaml:"total_refereed_citations,omitempty"`
}

// Indicators are the bibliometric indices (h, g, i10, ...).
type Indicators struct {
	H      *int     `json:"h,omitempty" yaml:"h,omitempty"`
	G      *int     `json:"g,omitempty" yaml:"g,omitempty"`
	I10    *int     `json:"i10,omitempty" yaml:"i10,omitempty"`
	I100   *int     `json:"i100,omitempty" yaml:"i100,omitempty"`
	M      *float64 `json:"m,omitempty" yaml:"m,omitempty"`
	Tori   *float64 `json:"tori,omitempty" yaml:"tori,omitempty"`
	RIQ    *float64 `json:"riq,omitempty" yaml:"riq,omitempty"`
	Read10 *float64 `json:"read10,omitempty" yaml:"read10,omitempty"`
}
