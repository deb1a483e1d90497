// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Request is one API call, built by an operation and consumed once by the
// transport.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        []byte
	ContentType string
}

func getRequest(path string, query url.Values) Request {
	return Request{Method: http.MethodGet, Path: path, Query: query}
}

func jsonRequest(method, path string, payload any) (Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Request{}, newError(KindInvalidQuery, "encoding request body", err)
	}
	return Request{Method: method, Path: path, Body: body, ContentType: "application/json"}, nil
}

func textRequest(path, text string) Request {
	return Request{Method: http.MethodPost, Path: path, Body: []byte(text), ContentType: "text/plain"}
}

func (r Request) httpRequest(ctx context.Context, baseURL string) (*http.Request, error) {
	u := baseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	return req, nil
}

// do executes r and decodes a JSON body into out. A nil out discards the body.
func (c *Client) do(ctx context.Context, r Request, out any, what string) error {
	body, err := c.execute(ctx, r)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(body, out, what)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any, what string) error {
	r, err := jsonRequest(http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	return c.do(ctx, r, out, what)
}

func decode(body []byte, out any, what string) error {
	if err := json.Unmarshal(body, out); err != nil {
		return newError(KindParse, "invalid "+what+" response", err)
	}
	return nil
}
