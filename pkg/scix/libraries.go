// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/scix/pkg/types"
)

// Library operations live under /biblib. Everything except the list, get,
// permission and note reads mutates server state and is never retried.

// DefaultAddByQueryRows is how many search hits AddDocumentsByQuery adds
// when the caller gives no limit.
const DefaultAddByQueryRows = 50

type libraryJSON struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	NumDocuments     int    `json:"num_documents"`
	Public           bool   `json:"public"`
	Owner            string `json:"owner"`
	DateCreated      string `json:"date_created"`
	DateLastModified string `json:"date_last_modified"`
}

func (l libraryJSON) library() types.Library {
	return types.Library(l)
}

func libraryPath(prefix, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", InvalidQuery("library id must not be empty")
	}
	return prefix + url.PathEscape(id), nil
}

// ListLibraries returns the caller's libraries. Entries without an id are skipped.
func (c *Client) ListLibraries(ctx context.Context) ([]types.Library, error) {
	var raw struct {
		Libraries []libraryJSON `json:"libraries"`
	}
	if err := c.do(ctx, getRequest("/biblib/libraries", nil), &raw, "libraries"); err != nil {
		return nil, err
	}
	libs := make([]types.Library, 0, len(raw.Libraries))
	for _, l := range raw.Libraries {
		if l.ID == "" {
			continue
		}
		libs = append(libs, l.library())
	}
	return libs, nil
}

// GetLibrary returns a library's metadata and bibcodes.
func (c *Client) GetLibrary(ctx context.Context, id string) (*types.LibraryDetail, error) {
	path, err := libraryPath("/biblib/libraries/", id)
	if err != nil {
		return nil, err
	}
	var raw struct {
		Metadata  libraryJSON `json:"metadata"`
		Documents []string    `json:"documents"`
	}
	if err := c.do(ctx, getRequest(path, nil), &raw, "library"); err != nil {
		return nil, err
	}
	meta := raw.Metadata.library()
	meta.ID = id
	docs := raw.Documents
	if docs == nil {
		docs = []string{}
	}
	return &types.LibraryDetail{Metadata: meta, Documents: docs}, nil
}

// CreateLibrary creates a library, optionally seeded with bibcodes.
func (c *Client) CreateLibrary(ctx context.Context, name, description string, public bool, bibcodes []string) (*types.Library, error) {
	if strings.TrimSpace(name) == "" {
		return nil, InvalidQuery("library name must not be empty")
	}
	payload := map[string]any{"name": name, "description": description, "public": public}
	if len(bibcodes) > 0 {
		payload["bibcode"] = bibcodes
	}
	var raw struct {
		ID string `json:"id"`
	}
	if err := c.postJSON(ctx, "/biblib/libraries", payload, &raw, "create library"); err != nil {
		return nil, err
	}
	return &types.Library{
		ID:           raw.ID,
		Name:         name,
		Description:  description,
		NumDocuments: len(bibcodes),
		Public:       public,
	}, nil
}

// EditLibrary changes the fields set in edit.
func (c *Client) EditLibrary(ctx context.Context, id string, edit types.LibraryEdit) error {
	path, err := libraryPath("/biblib/documents/", id)
	if err != nil {
		return err
	}
	payload := map[string]any{}
	if edit.Name != nil {
		payload["name"] = *edit.Name
	}
	if edit.Description != nil {
		payload["description"] = *edit.Description
	}
	if edit.Public != nil {
		payload["public"] = *edit.Public
	}
	if len(payload) == 0 {
		return InvalidQuery("nothing to edit: set a name, description or visibility")
	}
	r, err := jsonRequest(http.MethodPut, path, payload)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil, "edit library")
}

// DeleteLibrary removes a library.
func (c *Client) DeleteLibrary(ctx context.Context, id string) error {
	path, err := libraryPath("/biblib/documents/", id)
	if err != nil {
		return err
	}
	return c.do(ctx, Request{Method: http.MethodDelete, Path: path}, nil, "delete library")
}

// AddDocuments adds bibcodes to a library.
func (c *Client) AddDocuments(ctx context.Context, libraryID string, bibcodes []string) error {
	return c.changeDocuments(ctx, libraryID, bibcodes, types.ActionAdd)
}

// RemoveDocuments removes bibcodes from a library.
func (c *Client) RemoveDocuments(ctx context.Context, libraryID string, bibcodes []string) error {
	return c.changeDocuments(ctx, libraryID, bibcodes, types.ActionRemove)
}

func (c *Client) changeDocuments(ctx context.Context, libraryID string, bibcodes []string, action types.DocumentAction) error {
	path, err := libraryPath("/biblib/documents/", libraryID)
	if err != nil {
		return err
	}
	if len(bibcodes) == 0 {
		return InvalidQuery("%s needs at least one bibcode", action)
	}
	payload := map[string]any{"bibcode": bibcodes, "action": action.String()}
	return c.postJSON(ctx, path, payload, nil, "documents")
}

// GetPermissions returns the collaborators of a library and their levels.
// The response is passed through.
func (c *Client) GetPermissions(ctx context.Context, libraryID string) (json.RawMessage, error) {
	path, err := libraryPath("/biblib/permissions/", libraryID)
	if err != nil {
		return nil, err
	}
	var out json.RawMessage
	if err := c.do(ctx, getRequest(path, nil), &out, "permissions"); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePermissions grants email the given level on a library.
func (c *Client) UpdatePermissions(ctx context.Context, libraryID, email string, perm types.Permission) error {
	path, err := libraryPath("/biblib/permissions/", libraryID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(email) == "" {
		return InvalidQuery("collaborator email must not be empty")
	}
	payload := map[string]any{"email": email, "permission": perm.String()}
	return c.postJSON(ctx, path, payload, nil, "permissions")
}

// TransferLibrary hands ownership of a library to email.
func (c *Client) TransferLibrary(ctx context.Context, libraryID, email string) error {
	path, err := libraryPath("/biblib/transfer/", libraryID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(email) == "" {
		return InvalidQuery("new owner email must not be empty")
	}
	return c.postJSON(ctx, path, map[string]any{"email": email}, nil, "transfer")
}

func notePath(libraryID, bibcode string) (string, error) {
	path, err := libraryPath("/biblib/libraries/", libraryID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(bibcode) == "" {
		return "", InvalidQuery("bibcode must not be empty")
	}
	return path + "/notes/" + url.PathEscape(bibcode), nil
}

// GetAnnotation returns the note attached to bibcode in a library.
func (c *Client) GetAnnotation(ctx context.Context, libraryID, bibcode string) (string, error) {
	path, err := notePath(libraryID, bibcode)
	if err != nil {
		return "", err
	}
	var raw struct {
		Content string `json:"content"`
	}
	if err := c.do(ctx, getRequest(path, nil), &raw, "annotation"); err != nil {
		return "", err
	}
	return raw.Content, nil
}

// SetAnnotation creates or replaces the note on bibcode.
func (c *Client) SetAnnotation(ctx context.Context, libraryID, bibcode, content string) error {
	path, err := notePath(libraryID, bibcode)
	if err != nil {
		return err
	}
	return c.postJSON(ctx, path, map[string]any{"content": content}, nil, "annotation")
}

// DeleteAnnotation removes the note on bibcode.
func (c *Client) DeleteAnnotation(ctx context.Context, libraryID, bibcode string) error {
	path, err := notePath(libraryID, bibcode)
	if err != nil {
		return err
	}
	return c.do(ctx, Request{Method: http.MethodDelete, Path: path}, nil, "annotation")
}

// LibraryOperation applies a set operation to a library. Union,
// intersection, difference and copy read from sources.
func (c *Client) LibraryOperation(ctx context.Context, libraryID string, op types.SetOperation, sources []string) (json.RawMessage, error) {
	path, err := libraryPath("/biblib/libraries/operations/", libraryID)
	if err != nil {
		return nil, err
	}
	if op.NeedsSources() && len(sources) == 0 {
		return nil, InvalidQuery("%s needs at least one source library", op)
	}
	payload := map[string]any{"action": op.String()}
	if len(sources) > 0 {
		payload["libraries"] = sources
	}
	var out json.RawMessage
	if err := c.postJSON(ctx, path, payload, &out, "operation"); err != nil {
		return nil, err
	}
	return out, nil
}

// AddDocumentsByQuery searches and adds up to rows hits to a library. It
// returns how many bibcodes were added; a search with no hits adds nothing
// and makes no second request.
func (c *Client) AddDocumentsByQuery(ctx context.Context, libraryID, query string, rows int) (int, error) {
	if _, err := libraryPath("", libraryID); err != nil {
		return 0, err
	}
	if rows <= 0 {
		rows = DefaultAddByQueryRows
	}
	resp, err := c.Search(ctx, query, rows)
	if err != nil {
		return 0, err
	}
	bibcodes := make([]string, 0, len(resp.Papers))
	for _, p := range resp.Papers {
		bibcodes = append(bibcodes, p.Bibcode)
	}
	if len(bibcodes) == 0 {
		return 0, nil
	}
	if err := c.AddDocuments(ctx, libraryID, bibcodes); err != nil {
		return 0, err
	}
	return len(bibcodes), nil
}
