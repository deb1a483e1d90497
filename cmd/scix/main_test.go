// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scix/pkg/scix"
)

const searchBody = `{"response":{"numFound":2,"docs":[
	{"bibcode":"1905AnP...322..891E","title":["Zur Elektrodynamik bewegter Körper"],"author":["Einstein, A."],"year":"1905","citation_count":3000},
	{"bibcode":"1916AnP...354..769E","title":["Die Grundlage der allgemeinen Relativitätstheorie"],"author":["Einstein, A."],"year":1916}
]}}`

// resetFlags restores every flag to its default so state from one Execute
// does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI in-process with a clean environment and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SCIX_API_TOKEN", "")
	t.Setenv("ADS_API_TOKEN", "")
	t.Setenv("SCIX_TOKEN", "")
	t.Setenv("SCIX_NO_KEYRING", "true")
	t.Chdir(t.TempDir())

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.Execute()
	return out.String(), err
}

// newAPI points the CLI at a fake SciX server and counts requests.
func newAPI(t *testing.T, h http.HandlerFunc) *atomic.Int32 {
	t.Helper()
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(ts.Close)
	t.Setenv("SCIX_BASE_URL", ts.URL)
	return &calls
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "scix dev (client "+scix.Version+")\n", out)
}

func TestSearch_JSON(t *testing.T) {
	newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/query", r.URL.Path)
		assert.Equal(t, "Bearer flag-token", r.Header.Get("Authorization"))
		q := r.URL.Query().Get("q")
		assert.Contains(t, q, "relativity")
		assert.Contains(t, q, `author:"Einstein"`)
		assert.Equal(t, "5", r.URL.Query().Get("rows"))
		w.Write([]byte(searchBody))
	})

	out, err := run(t, "", "search", "relativity", "--author", "Einstein", "--rows", "5", "--token", "flag-token", "-o", "json")
	require.NoError(t, err)

	var got struct {
		NumFound int `json:"num_found"`
		Papers   []struct {
			Bibcode string `json:"bibcode"`
			Year    int    `json:"year"`
		} `json:"papers"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.NumFound)
	require.Len(t, got.Papers, 2)
	assert.Equal(t, "1905AnP...322..891E", got.Papers[0].Bibcode)
	assert.Equal(t, 1916, got.Papers[1].Year)
}

func TestSearch_NoTokenMakesNoCalls(t *testing.T) {
	calls := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(searchBody))
	})

	_, err := run(t, "", "search", "black holes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, scix.ErrAuthRequired), "got %v", err)
	assert.EqualValues(t, 0, calls.Load())
}

func TestSearch_InvalidQueryMakesNoCalls(t *testing.T) {
	calls := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {})

	_, err := run(t, "", "search", `title:"unbalanced`, "--token", "x")
	require.Error(t, err)
	assert.Equal(t, scix.KindInvalidQuery, scix.KindOf(err))

	_, err = run(t, "", "search", "--token", "x")
	require.Error(t, err)
	assert.EqualValues(t, 0, calls.Load())
}

func TestSearch_SaveAndLoad(t *testing.T) {
	calls := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(searchBody))
	})
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")

	_, err := run(t, "", "search", "relativity", "--token", "x", "--save", path)
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())
	_, err = os.Stat(path)
	require.NoError(t, err)

	out, err := run(t, "", "search", "--load", path, "-o", "csl")
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load(), "loading a saved search must not call the API")
	assert.Contains(t, out, "id: 1905AnP...322..891E")
}

func TestSearch_YearRangeFlag(t *testing.T) {
	_, err := run(t, "", "search", "--year-range", "1990", "--token", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FROM-TO")
}

func TestExport_FromFile(t *testing.T) {
	newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/export/ris", r.URL.Path)
		var body struct {
			Bibcode []string `json:"bibcode"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"A", "B", "C"}, body.Bibcode)
		w.Write([]byte(`{"export":"TY  - JOUR"}`))
	})

	out, err := run(t, "B\n\n# comment\nC\n", "export", "A", "--file", "-", "--format", "RIS", "--token", "x")
	require.NoError(t, err)
	assert.Equal(t, "TY  - JOUR\n", out)
}

func TestExport_UnknownFormat(t *testing.T) {
	calls := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {})
	_, err := run(t, "", "export", "A", "--format", "docx", "--token", "x")
	require.Error(t, err)
	assert.EqualValues(t, 0, calls.Load())
}

func TestBibcodesRequired(t *testing.T) {
	for _, args := range [][]string{
		{"export"},
		{"metrics"},
		{"bigquery"},
		{"network"},
	} {
		_, err := run(t, "", append(args, "--token", "x")...)
		require.Error(t, err, "%v", args)
		assert.Contains(t, err.Error(), "bibcodes")
	}
}

func TestLibraryCreate(t *testing.T) {
	newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/biblib/libraries", r.URL.Path)
		w.Write([]byte(`{"id":"lib-1","name":"Reading"}`))
	})

	out, err := run(t, "", "library", "create", "Reading", "2020A", "--token", "x")
	require.NoError(t, err)
	assert.Equal(t, "Created library \"Reading\" with ID: lib-1\n", out)
}

func TestLibraryEdit_NothingToEdit(t *testing.T) {
	calls := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {})
	_, err := run(t, "", "library", "edit", "lib-1", "--token", "x")
	require.Error(t, err)
	assert.Equal(t, scix.KindInvalidQuery, scix.KindOf(err))
	assert.EqualValues(t, 0, calls.Load())
}

func TestAuthStatus(t *testing.T) {
	out, err := run(t, "", "auth", "status", "--token", "abcdefgh1234")
	require.NoError(t, err)
	assert.Equal(t, "Token ********1234 (from flag)\n", out)

	out, err = run(t, "", "auth", "status")
	require.NoError(t, err)
	assert.Equal(t, "No API token configured\n", out)
}

func TestAuthStatus_SecretsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scix-api-token"), []byte("secret-token-9876\n"), 0o600))

	out, err := run(t, "", "auth", "status", "--secrets-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Token ********9876 (from secrets)\n", out)
}

func TestLimits(t *testing.T) {
	out, err := run(t, "", "limits", "-o", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.EqualValues(t, 5, got["capacity"])
}

func TestBadOutputFormat(t *testing.T) {
	_, err := run(t, "", "version", "-o", "xml")
	require.Error(t, err)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "***", maskToken("abc"))
	assert.Equal(t, "********wxyz", maskToken("abcdefwxyz"))
}
