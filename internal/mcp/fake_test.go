// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"context"
	"encoding/json"

	"github.com/pdiddy/scix/pkg/types"
)

// fakeAPI records every call and returns canned results or err.
type fakeAPI struct {
	calls []string
	err   error

	search   *types.SearchResponse
	paper    *types.Paper
	raw      json.RawMessage
	exported string
	added    int

	lastQuery    string
	lastOpts     types.SearchOptions
	lastBibcodes []string
	lastFormat   types.ExportFormat
	lastNetwork  types.NetworkType
	lastLink     *types.LinkType
	lastEdit     types.LibraryEdit
	lastPerm     types.Permission
	lastOp       types.SetOperation
	lastSources  []string
	lastRows     int
}

func (f *fakeAPI) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeAPI) SearchWithOptions(_ context.Context, query string, opts types.SearchOptions) (*types.SearchResponse, error) {
	f.lastQuery, f.lastOpts = query, opts
	return f.search, f.record("search")
}

func (f *fakeAPI) GetPaper(_ context.Context, id string) (*types.Paper, error) {
	f.lastQuery = id
	return f.paper, f.record("get_paper")
}

func (f *fakeAPI) BigQuery(_ context.Context, bibcodes []string, query string, opts types.SearchOptions) (*types.SearchResponse, error) {
	f.lastBibcodes, f.lastQuery, f.lastOpts = bibcodes, query, opts
	return f.search, f.record("bigquery")
}

func (f *fakeAPI) Export(_ context.Context, bibcodes []string, format types.ExportFormat, _ *types.Sort) (string, error) {
	f.lastBibcodes, f.lastFormat = bibcodes, format
	return f.exported, f.record("export")
}

func (f *fakeAPI) Metrics(_ context.Context, bibcodes []string) (*types.Metrics, error) {
	f.lastBibcodes = bibcodes
	h := 7
	return &types.Metrics{Indicators: &types.Indicators{H: &h}}, f.record("metrics")
}

func (f *fakeAPI) CitationHelper(_ context.Context, bibcodes []string) (json.RawMessage, error) {
	f.lastBibcodes = bibcodes
	return f.raw, f.record("citation_helper")
}

func (f *fakeAPI) Network(_ context.Context, bibcodes []string, kind types.NetworkType) (json.RawMessage, error) {
	f.lastBibcodes, f.lastNetwork = bibcodes, kind
	return f.raw, f.record("network")
}

func (f *fakeAPI) ResolveObjects(_ context.Context, objects []string) (json.RawMessage, error) {
	f.lastBibcodes = objects
	return f.raw, f.record("objects")
}

func (f *fakeAPI) ResolveReferences(_ context.Context, refs []string) ([]types.ResolvedReference, error) {
	out := make([]types.ResolvedReference, len(refs))
	for i, r := range refs {
		out[i] = types.ResolvedReference{Reference: r, Bibcode: "1905AnP...322..891E", Score: "1.0"}
	}
	return out, f.record("references")
}

func (f *fakeAPI) ResolveLinks(_ context.Context, bibcode string, linkType *types.LinkType) (json.RawMessage, error) {
	f.lastQuery, f.lastLink = bibcode, linkType
	return f.raw, f.record("links")
}

func (f *fakeAPI) ListLibraries(context.Context) ([]types.Library, error) {
	return []types.Library{{ID: "lib1", Name: "Mine"}}, f.record("list_libraries")
}

func (f *fakeAPI) GetLibrary(_ context.Context, id string) (*types.LibraryDetail, error) {
	return &types.LibraryDetail{Metadata: types.Library{ID: id}, Documents: []string{}}, f.record("get_library")
}

func (f *fakeAPI) CreateLibrary(_ context.Context, name, _ string, _ bool, _ []string) (*types.Library, error) {
	return &types.Library{ID: "new", Name: name}, f.record("create_library")
}

func (f *fakeAPI) EditLibrary(_ context.Context, _ string, edit types.LibraryEdit) error {
	f.lastEdit = edit
	return f.record("edit_library")
}

func (f *fakeAPI) DeleteLibrary(context.Context, string) error { return f.record("delete_library") }

func (f *fakeAPI) GetPermissions(context.Context, string) (json.RawMessage, error) {
	return f.raw, f.record("permissions")
}

func (f *fakeAPI) UpdatePermissions(_ context.Context, _, _ string, perm types.Permission) error {
	f.lastPerm = perm
	return f.record("update_permissions")
}

func (f *fakeAPI) TransferLibrary(context.Context, string, string) error {
	return f.record("transfer")
}

func (f *fakeAPI) AddDocuments(_ context.Context, _ string, bibcodes []string) error {
	f.lastBibcodes = bibcodes
	return f.record("add_documents")
}

func (f *fakeAPI) RemoveDocuments(_ context.Context, _ string, bibcodes []string) error {
	f.lastBibcodes = bibcodes
	return f.record("remove_documents")
}

func (f *fakeAPI) GetAnnotation(context.Context, string, string) (string, error) {
	return "a note", f.record("get_annotation")
}

func (f *fakeAPI) SetAnnotation(context.Context, string, string, string) error {
	return f.record("set_annotation")
}

func (f *fakeAPI) DeleteAnnotation(context.Context, string, string) error {
	return f.record("delete_annotation")
}

func (f *fakeAPI) LibraryOperation(_ context.Context, _ string, op types.SetOperation, sources []string) (json.RawMessage, error) {
	f.lastOp, f.lastSources = op, sources
	return f.raw, f.record("operation")
}

func (f *fakeAPI) AddDocumentsByQuery(_ context.Context, _, query string, rows int) (int, error) {
	f.lastQuery, f.lastRows = query, rows
	return f.added, f.record("add_by_query")
}
