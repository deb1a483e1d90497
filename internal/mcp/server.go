// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/scix/pkg/scix"
)

// ServerName is reported in the initialize result.
const ServerName = "scix-mcp"

// SupportedVersions lists the protocol versions the server speaks, newest
// first.
var SupportedVersions = []string{"2025-06-18", "2025-03-26", "2024-11-05"}

// negotiateProtocolVersion echoes a supported version and otherwise offers
// the latest one.
func negotiateProtocolVersion(requested string) string {
	for _, v := range SupportedVersions {
		if requested == v {
			return v
		}
	}
	return SupportedVersions[0]
}

type state int

const (
	stateUninitialized state = iota
	stateInitializing
	stateReady
)

func (s state) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateInitializing:
		return "initializing"
	default:
		return "ready"
	}
}

// Server is a sequential JSON-RPC dispatcher over one connection. It is not
// safe for concurrent use; Serve handles one line at a time.
type Server struct {
	api     API
	log     *zap.Logger
	version string

	state    state
	protocol string

	tools     map[string]tool
	toolsList json.RawMessage
}

// NewServer builds a server around api. The tools/list result is encoded
// once so every listing is byte-identical.
func NewServer(api API, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	defs := toolset()
	s := &Server{
		api:     api,
		log:     log,
		version: scix.Version,
		tools:   make(map[string]tool, len(defs)),
	}
	list := ListToolsResult{Tools: make([]Tool, len(defs))}
	for i, t := range defs {
		s.tools[t.Name] = t
		list.Tools[i] = t.Tool
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encoding tool list: %w", err)
	}
	s.toolsList = data
	return s, nil
}

// Serve reads newline-delimited requests from r and writes one response line
// per request to w. It returns nil at end of input.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	for {
		line, readErr := br.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			if out := s.Handle(ctx, line); out != nil {
				if _, err := w.Write(append(out, '\n')); err != nil {
					return fmt.Errorf("writing response: %w", err)
				}
			}
		}
		if errors.Is(readErr, io.EOF) {
			s.log.Debug("input closed")
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("reading request: %w", readErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Handle processes one input line and returns the encoded response, or nil
// when nothing should be written.
func (s *Server) Handle(ctx context.Context, line []byte) []byte {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn("skipping unparseable line", zap.Int("bytes", len(line)), zap.Error(err))
		return nil
	}

	log := s.log.With(
		zap.String("call_id", uuid.NewString()),
		zap.String("method", req.Method),
	)

	if req.JSONRPC != JSONRPCVersion || req.Method == "" {
		log.Warn("invalid request envelope", zap.String("jsonrpc", req.JSONRPC))
		if req.IsNotification() {
			return nil
		}
		return s.encode(log, errorResponse(req.ID, InvalidRequest, "invalid request: jsonrpc must be \"2.0\" and method is required", nil))
	}

	started := time.Now()
	resp := s.dispatch(ctx, log, &req)
	log.Debug("handled",
		zap.Duration("elapsed", time.Since(started)),
		zap.Bool("reply", resp != nil),
		zap.Stringer("state", s.state),
	)
	if resp == nil {
		return nil
	}
	return s.encode(log, resp)
}

func (s *Server) dispatch(ctx context.Context, log *zap.Logger, req *Request) *Response {
	method := ParseMethod(req.Method)

	if method.requiresInit() && s.state == stateUninitialized {
		if req.IsNotification() {
			return nil
		}
		return errorResponse(req.ID, ServerNotInitialized, "server not initialized", nil)
	}

	switch method {
	case MethodInitialize:
		return s.initialize(req)
	case MethodInitialized:
		if s.state == stateInitializing {
			s.state = stateReady
		}
		return nil
	case MethodCancelled:
		return nil
	case MethodPing:
		return reply(req, struct{}{})
	case MethodToolsList:
		return reply(req, s.toolsList)
	case MethodToolsCall:
		return s.callTool(ctx, log, req)
	case MethodResourcesList:
		list := ListResourcesResult{Resources: make([]Resource, len(resources))}
		for i, r := range resources {
			list.Resources[i] = r.Resource
		}
		return reply(req, list)
	case MethodResourcesRead:
		return s.readResource(req)
	case MethodUnknown:
		if req.IsNotification() {
			return nil
		}
		return errorResponse(req.ID, MethodNotFound, "method not found: "+req.Method, nil)
	}
	return errorResponse(req.ID, InternalError, "unhandled method: "+req.Method, nil)
}

// reply wraps a result, dropping it when the request was a notification.
func reply(req *Request, result any) *Response {
	if req.IsNotification() {
		return nil
	}
	return &Response{JSONRPC: JSONRPCVersion, ID: req.ID, Result: result}
}

func errorResponse(id json.RawMessage, code int, message string, data map[string]any) *Response {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error:   &ErrorDetail{Code: code, Message: message, Data: data},
	}
}

func (s *Server) encode(log *zap.Logger, resp *Response) []byte {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Error("encoding response", zap.Error(err))
		data, _ = json.Marshal(errorResponse(resp.ID, InternalError, "encoding response failed", nil))
	}
	return data
}

func (s *Server) initialize(req *Request) *Response {
	if s.state != stateUninitialized {
		return errorResponse(req.ID, InvalidRequest, "server already initialized", nil)
	}
	var params InitializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, InvalidParams, "invalid initialize params: "+err.Error(), nil)
		}
	}
	s.protocol = negotiateProtocolVersion(params.ProtocolVersion)
	s.state = stateInitializing
	s.log.Info("session initialized",
		zap.String("client", params.ClientInfo.Name),
		zap.String("client_version", params.ClientInfo.Version),
		zap.String("requested_version", params.ProtocolVersion),
		zap.String("protocol_version", s.protocol),
	)
	return reply(req, InitializeResult{
		ProtocolVersion: s.protocol,
		ServerInfo:      Implementation{Name: ServerName, Version: s.version},
	})
}

func (s *Server) callTool(ctx context.Context, log *zap.Logger, req *Request) *Response {
	if req.IsNotification() {
		log.Warn("ignoring tools/call sent as a notification")
		return nil
	}
	var params CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, InvalidParams, "invalid tools/call params: "+err.Error(), nil)
	}
	t, ok := s.tools[params.Name]
	if !ok {
		return errorResponse(req.ID, InvalidParams, "unknown tool: "+params.Name, map[string]any{"tool": params.Name})
	}

	args := arguments(params.Arguments)
	if args == nil {
		args = arguments{}
	}
	text, err := s.runTool(ctx, t, args)
	if err != nil {
		log.Info("tool failed", zap.String("tool", t.Name), zap.Error(err))
		return toolError(req.ID, err)
	}
	return reply(req, CallToolResult{Content: []Content{{Type: "text", Text: text}}})
}

func (s *Server) runTool(ctx context.Context, t tool, args arguments) (string, error) {
	if err := validateArguments(t.InputSchema, args); err != nil {
		return "", err
	}
	return t.handle(ctx, s.api, args)
}

// toolError maps a tool failure onto a JSON-RPC error: bad arguments become
// InvalidParams naming the parameter, SciX errors become APIError carrying
// the error kind.
func toolError(id json.RawMessage, err error) *Response {
	var pe *paramError
	if errors.As(err, &pe) {
		return errorResponse(id, InvalidParams, pe.Error(), map[string]any{"parameter": pe.Parameter})
	}
	var se *scix.Error
	if errors.As(err, &se) {
		data := map[string]any{"kind": se.Kind.String()}
		if se.Status != 0 {
			data["status"] = se.Status
		}
		if se.RetryAfter > 0 {
			data["retry_after_seconds"] = se.RetryAfter.Seconds()
		}
		return errorResponse(id, APIError, se.Error(), data)
	}
	return errorResponse(id, InternalError, err.Error(), nil)
}

func (s *Server) readResource(req *Request) *Response {
	var params ReadResourceParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, InvalidParams, "invalid resources/read params: "+err.Error(), nil)
	}
	r, ok := lookupResource(params.URI)
	if !ok {
		return errorResponse(req.ID, InvalidParams, "unknown resource: "+params.URI, map[string]any{"uri": params.URI})
	}
	return reply(req, ReadResourceResult{
		Contents: []ResourceContents{{URI: r.URI, MimeType: r.MimeType, Text: r.text}},
	})
}
