// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pdiddy/scix/pkg/ratelimit"
	"github.com/pdiddy/scix/pkg/types"
)

const (
	titleWidth   = 60
	authorsShown = 3
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

func papersTable(resp *types.SearchResponse, start int) string {
	t := newTable()
	t.AppendHeader(table.Row{"#", "Bibcode", "Year", "Title", "Authors", "Cites"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: titleWidth},
	})

	for i, p := range resp.Papers {
		t.AppendRow(table.Row{
			start + i + 1,
			p.Bibcode,
			yearLabel(p.Year),
			p.Title,
			AuthorSummary(p.Authors, authorsShown),
			intLabel(p.CitationCount),
		})
	}

	shown := start + len(resp.Papers)
	summary := fmt.Sprintf("%d of %d", len(resp.Papers), resp.NumFound)
	if resp.NumFound > shown {
		summary += fmt.Sprintf(", next page --start %d", shown)
	}
	t.AppendFooter(table.Row{"", "", "", summary, "", ""})
	return t.Render()
}

func paperTable(p *types.Paper) string {
	t := newTable()
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 80},
	})

	names := make([]string, len(p.Authors))
	for i, a := range p.Authors {
		names[i] = a.DisplayName()
	}

	rows := []struct {
		label, value string
	}{
		{"Title", p.Title},
		{"Authors", strings.Join(names, "; ")},
		{"Year", yearLabel(p.Year)},
		{"Publication", p.Publication},
		{"Bibcode", p.Bibcode},
		{"DOI", p.DOI},
		{"arXiv", p.ArxivID},
		{"Type", p.Doctype},
		{"Citations", intLabel(p.CitationCount)},
		{"Keywords", strings.Join(p.Keywords, ", ")},
		{"URL", p.URL},
		{"Abstract", p.Abstract},
	}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		t.AppendRow(table.Row{r.label, r.value})
	}
	for _, l := range p.PDFLinks {
		t.AppendRow(table.Row{l.Label, l.URL})
	}
	return t.Render()
}

func librariesTable(libs []types.Library) string {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Name", "Docs", "Public", "Owner"})
	for _, l := range libs {
		t.AppendRow(table.Row{l.ID, l.Name, l.NumDocuments, l.Public, l.Owner})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d libraries", len(libs)), "", "", ""})
	return t.Render()
}

func referencesTable(refs []types.ResolvedReference) string {
	t := newTable()
	t.AppendHeader(table.Row{"Reference", "Bibcode", "Score"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: titleWidth},
	})
	for _, r := range refs {
		bibcode := r.Bibcode
		if bibcode == "" {
			bibcode = "(unresolved)"
		}
		t.AppendRow(table.Row{r.Reference, bibcode, r.Score})
	}
	return t.Render()
}

func metricsTable(m *types.Metrics) string {
	t := newTable()
	t.AppendHeader(table.Row{"Metric", "All", "Refereed"})

	if m.BasicStats != nil || m.BasicStatsRefereed != nil {
		all, ref := orBasic(m.BasicStats), orBasic(m.BasicStatsRefereed)
		t.AppendRow(table.Row{"Papers", intLabel(all.NumberOfPapers), intLabel(ref.NumberOfPapers)})
		t.AppendRow(table.Row{"Total reads", intLabel(all.TotalReads), intLabel(ref.TotalReads)})
		t.AppendRow(table.Row{"Total downloads", intLabel(all.TotalDownloads), intLabel(ref.TotalDownloads)})
	}
	if m.CitationStats != nil || m.CitationStatsRefereed != nil {
		all, ref := orCitations(m.CitationStats), orCitations(m.CitationStatsRefereed)
		t.AppendRow(table.Row{"Citing papers", intLabel(all.NumberOfCitingPapers), intLabel(ref.NumberOfCitingPapers)})
		t.AppendRow(table.Row{"Citations", intLabel(all.TotalCitations), intLabel(ref.TotalCitations)})
		t.AppendRow(table.Row{"Self-citations", intLabel(all.SelfCitations), intLabel(ref.SelfCitations)})
		t.AppendRow(table.Row{"Average citations", floatLabel(all.AverageCitations), floatLabel(ref.AverageCitations)})
	}
	if m.Indicators != nil || m.IndicatorsRefereed != nil {
		all, ref := orIndicators(m.Indicators), orIndicators(m.IndicatorsRefereed)
		t.AppendRow(table.Row{"h-index", intLabel(all.H), intLabel(ref.H)})
		t.AppendRow(table.Row{"g-index", intLabel(all.G), intLabel(ref.G)})
		t.AppendRow(table.Row{"i10-index", intLabel(all.I10), intLabel(ref.I10)})
		t.AppendRow(table.Row{"m-index", floatLabel(all.M), floatLabel(ref.M)})
		t.AppendRow(table.Row{"tori", floatLabel(all.Tori), floatLabel(ref.Tori)})
	}
	if len(m.Skipped) > 0 {
		t.AppendFooter(table.Row{"Skipped", strings.Join(m.Skipped, ", "), ""})
	}
	return t.Render()
}

func limitsTable(s ratelimit.State) string {
	t := newTable()
	t.AppendHeader(table.Row{"Limit", "Value"})
	t.AppendRow(table.Row{"Local capacity", fmt.Sprintf("%d/s", s.Capacity)})
	t.AppendRow(table.Row{"Local tokens", strconv.FormatFloat(s.Tokens, 'f', 2, 64)})
	t.AppendRow(table.Row{"Server limit", serverLabel(s.ServerLimit)})
	t.AppendRow(table.Row{"Server remaining", serverLabel(s.ServerRemaining)})
	reset := "-"
	if !s.ServerResetAt.IsZero() {
		reset = s.ServerResetAt.Local().Format(time.RFC3339)
	}
	t.AppendRow(table.Row{"Server reset", reset})
	if !s.RetryUntil.IsZero() {
		t.AppendRow(table.Row{"Retry after", s.RetryUntil.Local().Format(time.RFC3339)})
	}
	return t.Render()
}

// AuthorSummary lists family names, collapsing to "First et al." past limit.
func AuthorSummary(authors []types.Author, limit int) string {
	if len(authors) == 0 {
		return ""
	}
	if len(authors) > limit {
		return authors[0].FamilyName + " et al."
	}
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.FamilyName
	}
	return strings.Join(names, ", ")
}

func yearLabel(y int) string {
	if y == 0 {
		return "-"
	}
	return strconv.Itoa(y)
}

func intLabel(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func floatLabel(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func serverLabel(v int) string {
	if v < 0 {
		return "unknown"
	}
	return strconv.Itoa(v)
}

func orBasic(b *types.BasicStats) types.BasicStats {
	if b == nil {
		return types.BasicStats{}
	}
	return *b
}

func orCitations(c *types.CitationStats) types.CitationStats {
	if c == nil {
		return types.CitationStats{}
	}
	return *c
}

func orIndicators(i *types.Indicators) types.Indicators {
	if i == nil {
		return types.Indicators{}
	}
	return *i
}
