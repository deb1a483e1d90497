// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/scix/pkg/scix"
	"github.com/pdiddy/scix/pkg/types"
)

// API is the part of *scix.Client the tools call.
type API interface {
	SearchWithOptions(ctx context.Context, query string, opts types.SearchOptions) (*types.SearchResponse, error)
	GetPaper(ctx context.Context, id string) (*types.Paper, error)
	BigQuery(ctx context.Context, bibcodes []string, query string, opts types.SearchOptions) (*types.SearchResponse, error)
	Export(ctx context.Context, bibcodes []string, format types.ExportFormat, sort *types.Sort) (string, error)
	Metrics(ctx context.Context, bibcodes []string) (*types.Metrics, error)
	CitationHelper(ctx context.Context, bibcodes []string) (json.RawMessage, error)
	Network(ctx context.Context, bibcodes []string, kind types.NetworkType) (json.RawMessage, error)
	ResolveObjects(ctx context.Context, objects []string) (json.RawMessage, error)
	ResolveReferences(ctx context.Context, references []string) ([]types.ResolvedReference, error)
	ResolveLinks(ctx context.Context, bibcode string, linkType *types.LinkType) (json.RawMessage, error)

	ListLibraries(ctx context.Context) ([]types.Library, error)
	GetLibrary(ctx context.Context, id string) (*types.LibraryDetail, error)
	CreateLibrary(ctx context.Context, name, description string, public bool, bibcodes []string) (*types.Library, error)
	EditLibrary(ctx context.Context, id string, edit types.LibraryEdit) error
	DeleteLibrary(ctx context.Context, id string) error
	GetPermissions(ctx context.Context, libraryID string) (json.RawMessage, error)
	UpdatePermissions(ctx context.Context, libraryID, email string, perm types.Permission) error
	TransferLibrary(ctx context.Context, libraryID, email string) error

	AddDocuments(ctx context.Context, libraryID string, bibcodes []string) error
	RemoveDocuments(ctx context.Context, libraryID string, bibcodes []string) error
	GetAnnotation(ctx context.Context, libraryID, bibcode string) (string, error)
	SetAnnotation(ctx context.Context, libraryID, bibcode, content string) error
	DeleteAnnotation(ctx context.Context, libraryID, bibcode string) error
	LibraryOperation(ctx context.Context, libraryID string, op types.SetOperation, sources []string) (json.RawMessage, error)
	AddDocumentsByQuery(ctx context.Context, libraryID, query string, rows int) (int, error)
}

var _ API = (*scix.Client)(nil)

// nonEmpty reads a required list argument that must hold at least one item.
func nonEmpty(args arguments, name string) ([]string, error) {
	v := args.strs(name)
	if len(v) == 0 {
		return nil, &paramError{Parameter: name, Reason: "must not be empty"}
	}
	return v, nil
}

func handleSearch(ctx context.Context, api API, args arguments) (string, error) {
	rows, err := args.nonNegative("rows", 10)
	if err != nil {
		return "", err
	}
	start, err := args.nonNegative("start", 0)
	if err != nil {
		return "", err
	}
	opts := types.SearchOptions{Fields: args.str("fields"), Rows: rows, Start: start}
	if s := args.str("sort"); s != "" {
		sort, err := types.ParseSort(s)
		if err != nil {
			return "", &paramError{Parameter: "sort", Reason: err.Error()}
		}
		opts.Sort = sort
	}

	resp, err := api.SearchWithOptions(ctx, args.str("query"), opts)
	if err != nil {
		return "", err
	}
	return formatSearchResults(resp, start), nil
}

func handleBigQuery(ctx context.Context, api API, args arguments) (string, error) {
	bibcodes, err := nonEmpty(args, "bibcodes")
	if err != nil {
		return "", err
	}
	resp, err := api.BigQuery(ctx, bibcodes, args.str("query"), types.SearchOptions{})
	if err != nil {
		return "", err
	}
	return formatSearchResults(resp, 0), nil
}

func handleExport(ctx context.Context, api API, args arguments) (string, error) {
	bibcodes, err := nonEmpty(args, "bibcodes")
	if err != nil {
		return "", err
	}
	format := types.ExportBibTeX
	if args.has("format") {
		if format, err = types.ParseExportFormat(args.str("format")); err != nil {
			return "", &paramError{Parameter: "format", Reason: err.Error()}
		}
	}
	return api.Export(ctx, bibcodes, format, nil)
}

func handleMetrics(ctx context.Context, api API, args arguments) (string, error) {
	bibcodes, err := nonEmpty(args, "bibcodes")
	if err != nil {
		return "", err
	}
	m, err := api.Metrics(ctx, bibcodes)
	if err != nil {
		return "", err
	}
	return prettyJSON(m)
}

func handleCitationHelper(ctx context.Context, api API, args arguments) (string, error) {
	bibcodes, err := nonEmpty(args, "bibcodes")
	if err != nil {
		return "", err
	}
	return jsonResult(api.CitationHelper(ctx, bibcodes))
}

func handleNetwork(ctx context.Context, api API, args arguments) (string, error) {
	bibcodes, err := nonEmpty(args, "bibcodes")
	if err != nil {
		return "", err
	}
	kind := types.NetworkAuthor
	if args.has("type") {
		if kind, err = types.ParseNetworkType(args.str("type")); err != nil {
			return "", &paramError{Parameter: "type", Reason: err.Error()}
		}
	}
	return jsonResult(api.Network(ctx, bibcodes, kind))
}

func handleObjectSearch(ctx context.Context, api API, args arguments) (string, error) {
	objects, err := nonEmpty(args, "objects")
	if err != nil {
		return "", err
	}
	return jsonResult(api.ResolveObjects(ctx, objects))
}

func handleResolveReference(ctx context.Context, api API, args arguments) (string, error) {
	refs, err := nonEmpty(args, "references")
	if err != nil {
		return "", err
	}
	resolved, err := api.ResolveReferences(ctx, refs)
	if err != nil {
		return "", err
	}
	return prettyJSON(resolved)
}

func handleResolveLinks(ctx context.Context, api API, args arguments) (string, error) {
	var linkType *types.LinkType
	if args.has("link_type") {
		lt, err := types.ParseLinkType(args.str("link_type"))
		if err != nil {
			return "", &paramError{Parameter: "link_type", Reason: err.Error()}
		}
		linkType = &lt
	}
	return jsonResult(api.ResolveLinks(ctx, args.str("bibcode"), linkType))
}

func handleGetPaper(ctx context.Context, api API, args arguments) (string, error) {
	p, err := api.GetPaper(ctx, args.str("bibcode"))
	if err != nil {
		return "", err
	}
	return formatPaper(p), nil
}

func handleLibrary(ctx context.Context, api API, args arguments) (string, error) {
	action := args.str("action")
	id := args.str("id")

	switch action {
	case "list":
		libs, err := api.ListLibraries(ctx)
		if err != nil {
			return "", err
		}
		return prettyJSON(libs)

	case "get":
		if err := args.require(action, "id"); err != nil {
			return "", err
		}
		lib, err := api.GetLibrary(ctx, id)
		if err != nil {
			return "", err
		}
		return prettyJSON(lib)

	case "create":
		if err := args.require(action, "name"); err != nil {
			return "", err
		}
		public := args.boolean("public")
		lib, err := api.CreateLibrary(ctx, args.str("name"), args.str("description"), public != nil && *public, nil)
		if err != nil {
			return "", err
		}
		return prettyJSON(lib)

	case "edit":
		if err := args.require(action, "id"); err != nil {
			return "", err
		}
		edit := types.LibraryEdit{
			Name:        args.optStr("name"),
			Description: args.optStr("description"),
			Public:      args.boolean("public"),
		}
		if err := api.EditLibrary(ctx, id, edit); err != nil {
			return "", err
		}
		return fmt.Sprintf("Library %s updated", id), nil

	case "delete":
		if err := args.require(action, "id"); err != nil {
			return "", err
		}
		if err := api.DeleteLibrary(ctx, id); err != nil {
			return "", err
		}
		return fmt.Sprintf("Library %s deleted", id), nil

	case "permissions":
		if err := args.require(action, "id"); err != nil {
			return "", err
		}
		return jsonResult(api.GetPermissions(ctx, id))

	case "update_permissions":
		if err := args.require(action, "id", "email", "permission"); err != nil {
			return "", err
		}
		perm, err := types.ParsePermission(args.str("permission"))
		if err != nil {
			return "", &paramError{Parameter: "permission", Reason: err.Error()}
		}
		email := args.str("email")
		if err := api.UpdatePermissions(ctx, id, email, perm); err != nil {
			return "", err
		}
		return fmt.Sprintf("Permissions updated for %s on library %s", email, id), nil

	case "transfer":
		if err := args.require(action, "id", "email"); err != nil {
			return "", err
		}
		email := args.str("email")
		if err := api.TransferLibrary(ctx, id, email); err != nil {
			return "", err
		}
		return fmt.Sprintf("Library %s transferred to %s", id, email), nil
	}
	return "", &paramError{Parameter: "action", Reason: "unknown library action " + action}
}

func handleLibraryDocuments(ctx context.Context, api API, args arguments) (string, error) {
	action := args.str("action")
	libraryID := args.str("library_id")
	bibcode := args.str("bibcode")

	switch action {
	case "add", "remove":
		bibcodes, err := nonEmpty(args, "bibcodes")
		if err != nil {
			return "", err
		}
		if action == "add" {
			if err := api.AddDocuments(ctx, libraryID, bibcodes); err != nil {
				return "", err
			}
			return fmt.Sprintf("Added %d documents", len(bibcodes)), nil
		}
		if err := api.RemoveDocuments(ctx, libraryID, bibcodes); err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed %d documents", len(bibcodes)), nil

	case "get_notes":
		if err := args.require(action, "bibcode"); err != nil {
			return "", err
		}
		return api.GetAnnotation(ctx, libraryID, bibcode)

	case "add_note", "edit_note":
		if err := args.require(action, "bibcode", "content"); err != nil {
			return "", err
		}
		if err := api.SetAnnotation(ctx, libraryID, bibcode, args.str("content")); err != nil {
			return "", err
		}
		return fmt.Sprintf("Note saved for %s", bibcode), nil

	case "delete_note":
		if err := args.require(action, "bibcode"); err != nil {
			return "", err
		}
		if err := api.DeleteAnnotation(ctx, libraryID, bibcode); err != nil {
			return "", err
		}
		return fmt.Sprintf("Note deleted for %s", bibcode), nil

	case "union", "intersection", "difference", "copy", "empty":
		op, err := types.ParseSetOperation(action)
		if err != nil {
			return "", &paramError{Parameter: "action", Reason: err.Error()}
		}
		sources := args.strs("libraries")
		if op.NeedsSources() && len(sources) == 0 {
			return "", &paramError{Parameter: "libraries", Reason: "required for " + action}
		}
		return jsonResult(api.LibraryOperation(ctx, libraryID, op, sources))

	case "add_by_query":
		if err := args.require(action, "query"); err != nil {
			return "", err
		}
		rows, err := args.nonNegative("rows", scix.DefaultAddByQueryRows)
		if err != nil {
			return "", err
		}
		n, err := api.AddDocumentsByQuery(ctx, libraryID, args.str("query"), rows)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added %d documents by query", n), nil
	}
	return "", &paramError{Parameter: "action", Reason: "unknown document action " + action}
}
