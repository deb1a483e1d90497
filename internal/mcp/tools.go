// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import "context"

// toolHandler runs one tool against the API and returns the text block sent
// back to the host.
type toolHandler func(ctx context.Context, api API, args arguments) (string, error)

type tool struct {
	Tool
	handle toolHandler
}

func readOnly() *ToolAnnotations {
	return &ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true, OpenWorldHint: true}
}

func mutating() *ToolAnnotations {
	return &ToolAnnotations{OpenWorldHint: true}
}

func stringList(description string) Property {
	return Property{Type: "array", Items: &Property{Type: "string"}, Description: description}
}

func object(props map[string]Property, required ...string) Schema {
	return Schema{Type: "object", Properties: props, Required: required}
}

var (
	libraryActions = []string{"list", "get", "create", "edit", "delete", "permissions", "update_permissions", "transfer"}

	documentActions = []string{
		"add", "remove", "get_notes", "add_note", "edit_note", "delete_note",
		"union", "intersection", "difference", "copy", "empty", "add_by_query",
	}
)

// toolset lists the tools in tools/list order.
func toolset() []tool {
	return []tool{
		{Tool{
			Name:        "scix_search",
			Description: "Search the SciX / NASA ADS database. Supports field queries (author, title, abstract, year, etc.), boolean operators, and functional operators (citations(), references(), similar()).",
			InputSchema: object(map[string]Property{
				"query":  {Type: "string", Description: "ADS query string (e.g., 'author:\"Einstein\" year:1905')"},
				"rows":   {Type: "integer", Description: "Max results (default 10)", Default: 10},
				"start":  {Type: "integer", Description: "Starting index for pagination (default 0)", Default: 0},
				"sort":   {Type: "string", Description: "Sort order (e.g., 'date desc', 'citation_count desc')"},
				"fields": {Type: "string", Description: "Comma-separated fields to return"},
			}, "query"),
			Annotations: readOnly(),
		}, handleSearch},
		{Tool{
			Name:        "scix_bigquery",
			Description: "Search within a set of known bibcodes. Useful for filtering a collection of papers.",
			InputSchema: object(map[string]Property{
				"bibcodes": stringList("List of bibcodes to search within"),
				"query":    {Type: "string", Description: "Optional additional query filter"},
			}, "bibcodes"),
			Annotations: readOnly(),
		}, handleBigQuery},
		{Tool{
			Name:        "scix_export",
			Description: "Export papers in citation formats (bibtex, ris, aastex, mnras, ieee, csl, etc.).",
			InputSchema: object(map[string]Property{
				"bibcodes": stringList("Bibcodes to export"),
				"format": {
					Type:        "string",
					Description: "Export format (bibtex, ris, aastex, mnras, ieee, csl, etc.)",
					Default:     "bibtex",
				},
			}, "bibcodes"),
			Annotations: readOnly(),
		}, handleExport},
		{Tool{
			Name:        "scix_metrics",
			Description: "Get citation metrics (h-index, g-index, citation counts) for a set of papers.",
			InputSchema: object(map[string]Property{
				"bibcodes": stringList("Bibcodes to get metrics for"),
			}, "bibcodes"),
			Annotations: readOnly(),
		}, handleMetrics},
		{Tool{
			Name:        "scix_library",
			Description: "Manage SciX personal libraries (list, get, create, edit, delete, permissions, transfer).",
			InputSchema: object(map[string]Property{
				"action":      {Type: "string", Enum: libraryActions},
				"id":          {Type: "string", Description: "Library ID (for get/edit/delete/permissions/update_permissions/transfer)"},
				"name":        {Type: "string", Description: "Library name (for create/edit)"},
				"description": {Type: "string", Description: "Library description (for create/edit)"},
				"public":      {Type: "boolean", Description: "Public visibility (for create/edit)"},
				"email":       {Type: "string", Description: "Collaborator email (for update_permissions/transfer)"},
				"permission": {
					Type:        "string",
					Description: "Permission level: owner, admin, write, read (for update_permissions)",
					Enum:        []string{"owner", "admin", "write", "read"},
				},
			}, "action"),
			Annotations: mutating(),
		}, handleLibrary},
		{Tool{
			Name:        "scix_library_documents",
			Description: "Manage documents in a SciX library: add/remove bibcodes, notes, set operations (union/intersection/difference/copy/empty), or add by search query.",
			InputSchema: object(map[string]Property{
				"action":     {Type: "string", Enum: documentActions},
				"library_id": {Type: "string", Description: "Library ID"},
				"bibcodes":   stringList("Bibcodes to add/remove"),
				"bibcode":    {Type: "string", Description: "Single bibcode (for note operations)"},
				"content":    {Type: "string", Description: "Note content (for add_note/edit_note)"},
				"libraries":  stringList("Source library IDs (for set operations: union/intersection/difference/copy)"),
				"query":      {Type: "string", Description: "Search query (for add_by_query)"},
				"rows":       {Type: "integer", Description: "Max documents to add by query (default 50)", Default: 50},
			}, "action", "library_id"),
			Annotations: mutating(),
		}, handleLibraryDocuments},
		{Tool{
			Name:        "scix_citation_helper",
			Description: "Find papers frequently co-cited with the given set but not yet included.",
			InputSchema: object(map[string]Property{
				"bibcodes": stringList("Bibcodes for co-citation analysis"),
			}, "bibcodes"),
			Annotations: readOnly(),
		}, handleCitationHelper},
		{Tool{
			Name:        "scix_network",
			Description: "Get author collaboration or paper citation network data.",
			InputSchema: object(map[string]Property{
				"bibcodes": stringList("Bibcodes for network analysis"),
				"type":     {Type: "string", Enum: []string{"author", "paper"}, Description: "Network type", Default: "author"},
			}, "bibcodes"),
			Annotations: readOnly(),
		}, handleNetwork},
		{Tool{
			Name:        "scix_object_search",
			Description: "Resolve astronomical object names (M31, NGC 1234, Crab Nebula) via SIMBAD/NED.",
			InputSchema: object(map[string]Property{
				"objects": stringList("Object names to resolve"),
			}, "objects"),
			Annotations: readOnly(),
		}, handleObjectSearch},
		{Tool{
			Name:        "scix_resolve_reference",
			Description: "Resolve free-text references to bibcodes (e.g., 'Einstein 1905 Annalen der Physik 17 891').",
			InputSchema: object(map[string]Property{
				"references": stringList("Free-text reference strings"),
			}, "references"),
			Annotations: readOnly(),
		}, handleResolveReference},
		{Tool{
			Name:        "scix_resolve_links",
			Description: "Resolve links for a paper (full-text, datasets, citations, references).",
			InputSchema: object(map[string]Property{
				"bibcode":   {Type: "string", Description: "Paper bibcode"},
				"link_type": {Type: "string", Enum: []string{"esource", "data", "citation", "reference", "coreads"}, Description: "Specific link type (optional)"},
			}, "bibcode"),
			Annotations: readOnly(),
		}, handleResolveLinks},
		{Tool{
			Name:        "scix_get_paper",
			Description: "Get detailed metadata for a single paper by bibcode, including abstract, affiliations, keywords, and links.",
			InputSchema: object(map[string]Property{
				"bibcode": {Type: "string", Description: "Paper bibcode"},
			}, "bibcode"),
			Annotations: readOnly(),
		}, handleGetPaper},
	}
}
