// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scix/pkg/ratelimit"
	"github.com/pdiddy/scix/pkg/types"
)

func intPtr(v int) *int { return &v }

func samplePapers() *types.SearchResponse {
	return &types.SearchResponse{
		NumFound: 42,
		Papers: []types.Paper{
			{
				Bibcode:       "2019ApJ...882L..24A",
				Title:         "First M87 Results",
				Year:          2019,
				Publication:   "The Astrophysical Journal",
				DOI:           "10.3847/2041-8213/ab0ec7",
				Doctype:       "article",
				CitationCount: intPtr(3000),
				URL:           "https://scixplorer.org/abs/2019ApJ...882L..24A",
				Authors: []types.Author{
					types.ParseAuthor("Akiyama, Kazunori"),
					types.ParseAuthor("Alberdi, Antxon"),
					types.ParseAuthor("Alef, Walter"),
					types.ParseAuthor("Asada, Keiichi"),
				},
			},
			{
				Bibcode: "1905AnP...322..891E",
				Title:   "Zur Elektrodynamik",
				Year:    1905,
				Authors: []types.Author{types.ParseAuthor("Einstein, A.")},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":      FormatTable,
		"table": FormatTable,
		"JSON":  FormatJSON,
		"yaml":  FormatYAML,
		"yml":   FormatYAML,
		" csl ": FormatCSL,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("csv")
	require.Error(t, err)
}

func TestWritePapersTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePapers(&buf, FormatTable, samplePapers(), 10))
	out := buf.String()

	assert.Contains(t, out, "2019ApJ...882L..24A")
	assert.Contains(t, out, "Akiyama et al.")
	assert.Contains(t, out, "Einstein")
	assert.Contains(t, out, "11")
	assert.Contains(t, out, "3000")
	assert.Contains(t, strings.ToLower(out), "next page --start 12")
}

func TestWritePapersJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePapers(&buf, FormatJSON, samplePapers(), 0))

	var decoded types.SearchResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 42, decoded.NumFound)
	require.Len(t, decoded.Papers, 2)
	assert.Equal(t, "Akiyama", decoded.Papers[0].Authors[0].FamilyName)
}

func TestWritePapersYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePapers(&buf, FormatYAML, samplePapers(), 0))
	assert.Contains(t, buf.String(), "num_found: 42")
	assert.Contains(t, buf.String(), "bibcode: 1905AnP...322..891E")
}

func TestWritePapersCSL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePapers(&buf, FormatCSL, samplePapers(), 0))

	var items []CSLItem
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "2019ApJ...882L..24A", items[0].ID)
	assert.Equal(t, "article-journal", items[0].Type)
	assert.Equal(t, "10.3847/2041-8213/ab0ec7", items[0].DOI)
	assert.Equal(t, [][]int{{2019}}, items[0].Issued.DateParts)
	assert.Equal(t, "article", items[1].Type)
}

func TestWritePaperTable(t *testing.T) {
	p := samplePapers().Papers[0]
	p.Abstract = "We present images."
	p.PDFLinks = types.BuildPDFLinks([]string{"PUB_PDF"}, p.DOI, "", p.Bibcode)

	var buf bytes.Buffer
	require.NoError(t, WritePaper(&buf, FormatTable, &p))
	out := buf.String()
	assert.Contains(t, out, "Kazunori Akiyama; Antxon Alberdi")
	assert.Contains(t, out, "We present images.")
	assert.Contains(t, out, "https://doi.org/10.3847/2041-8213/ab0ec7")
	assert.NotContains(t, out, "arXiv")
}

func TestWriteLibrariesTable(t *testing.T) {
	libs := []types.Library{
		{ID: "abc123", Name: "Black holes", NumDocuments: 12, Public: true, Owner: "me"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteLibraries(&buf, FormatTable, libs))
	assert.Contains(t, buf.String(), "abc123")
	assert.Contains(t, buf.String(), "Black holes")
	assert.Contains(t, strings.ToLower(buf.String()), "1 libraries")
}

func TestNonPaperCSLRejected(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteLibraries(&buf, FormatCSL, nil))
	assert.Error(t, WriteMetrics(&buf, FormatCSL, &types.Metrics{}))
	assert.Error(t, WriteReferences(&buf, FormatCSL, nil))
	assert.Error(t, WriteValue(&buf, FormatCSL, map[string]int{}))
}

func TestWriteReferencesTable(t *testing.T) {
	refs := []types.ResolvedReference{
		{Reference: "Einstein 1905", Bibcode: "1905AnP...322..891E", Score: "1.0"},
		{Reference: "nonsense"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteReferences(&buf, FormatTable, refs))
	assert.Contains(t, buf.String(), "1905AnP...322..891E")
	assert.Contains(t, buf.String(), "(unresolved)")
}

func TestWriteMetricsTable(t *testing.T) {
	h := 12
	m := &types.Metrics{
		Indicators: &types.Indicators{H: &h},
		Skipped:    []string{"bad"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteMetrics(&buf, FormatTable, m))
	out := buf.String()
	assert.Contains(t, out, "h-index")
	assert.Contains(t, out, "12")
	assert.Contains(t, strings.ToLower(out), "bad")
}

func TestWriteLimits(t *testing.T) {
	s := ratelimit.State{Capacity: 5, Tokens: 4.5, ServerLimit: -1, ServerRemaining: -1}

	var buf bytes.Buffer
	require.NoError(t, WriteLimits(&buf, FormatTable, s))
	assert.Contains(t, buf.String(), "5/s")
	assert.Contains(t, buf.String(), "4.50")
	assert.Contains(t, buf.String(), "unknown")

	buf.Reset()
	require.NoError(t, WriteLimits(&buf, FormatJSON, s))
	assert.Contains(t, buf.String(), `"capacity": 5`)
	assert.NotContains(t, buf.String(), "server_reset_at")
	assert.NotContains(t, buf.String(), "retry_until")

	s.RetryUntil = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	buf.Reset()
	require.NoError(t, WriteLimits(&buf, FormatTable, s))
	assert.Contains(t, strings.ToLower(buf.String()), "retry after")
}

func TestWriteValueRawJSON(t *testing.T) {
	raw := json.RawMessage(`{"nodes":[1,2],"name":"<net>"}`)

	var buf bytes.Buffer
	require.NoError(t, WriteValue(&buf, FormatTable, raw))
	assert.Contains(t, buf.String(), "\"name\": \"<net>\"")

	buf.Reset()
	require.NoError(t, WriteValue(&buf, FormatYAML, raw))
	assert.Contains(t, buf.String(), "nodes:")

	assert.Error(t, WriteValue(&buf, FormatJSON, json.RawMessage(`{`)))
}

func TestAuthorSummary(t *testing.T) {
	three := []types.Author{
		types.ParseAuthor("Smith, J."),
		types.ParseAuthor("Jones, K."),
		types.ParseAuthor("Brown, L."),
	}
	assert.Equal(t, "Smith, Jones, Brown", AuthorSummary(three, 3))
	assert.Equal(t, "Smith et al.", AuthorSummary(append(three, types.ParseAuthor("Lee, M.")), 3))
	assert.Equal(t, "", AuthorSummary(nil, 3))
}

func TestCSLNameLiteral(t *testing.T) {
	item := ToCSLItem(types.Paper{
		Bibcode: "2020A&A...641A...6P",
		Doctype: "inproceedings",
		Authors: []types.Author{types.ParseAuthor("Planck")},
	})
	require.Len(t, item.Author, 1)
	assert.Equal(t, "Planck", item.Author[0].Literal)
	assert.Equal(t, "paper-conference", item.Type)
	assert.Nil(t, item.Issued)
}

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	opts := types.SearchOptions{
		Sort:  types.Sort{Field: "citation_count", Direction: types.SortDesc},
		Rows:  2,
		Start: 0,
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	qf := NewQueryFile("author:\"Akiyama\"", opts, samplePapers(), now)
	require.NoError(t, WriteQueryFile(path, qf))

	loaded, err := ReadQueryFile(path)
	require.NoError(t, err)
	assert.Equal(t, "author:\"Akiyama\"", loaded.Query.Q)
	assert.Equal(t, 42, loaded.Summary.NumFound)
	assert.Equal(t, 2, loaded.Summary.Returned)
	assert.True(t, now.Equal(loaded.Summary.Timestamp))

	gotOpts, err := loaded.Query.Options()
	require.NoError(t, err)
	assert.Equal(t, opts.Sort, gotOpts.Sort)
	assert.Equal(t, 2, gotOpts.Rows)

	resp := loaded.Response()
	require.Len(t, resp.Papers, 2)
	assert.Equal(t, "Einstein", resp.Papers[1].Authors[0].FamilyName)
}

func TestReadQueryFileErrors(t *testing.T) {
	_, err := ReadQueryFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, WriteQueryFile(path, QueryFile{}))
	_, err = ReadQueryFile(path)
	require.ErrorContains(t, err, "missing query.q")

	_, err = QueryParams{Q: "x", Sort: "a b c"}.Options()
	require.Error(t, err)
}
