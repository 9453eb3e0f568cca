package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/amxkifir/italian-jokes-MCP/internal/tools"
)

const protocolVersion = "2024-11-05"

// Server drives the stdio MCP session: it reads requests, routes the
// MCP methods, and hands tool calls to the dispatcher.
type Server struct {
	transport  *Transport
	dispatcher *tools.Dispatcher
	name       string
	version    string
}

// NewServer creates a server speaking over r/w with the given identity.
func NewServer(r io.Reader, w io.Writer, dispatcher *tools.Dispatcher, name, version string) *Server {
	return &Server{
		transport:  NewTransport(r, w),
		dispatcher: dispatcher,
		name:       name,
		version:    version,
	}
}

// Run processes messages until the stream ends. io.EOF means the client
// disconnected cleanly.
func (s *Server) Run(ctx context.Context) error {
	log.Printf("Starting %s v%s", s.name, s.version)
	for {
		msg, err := s.transport.ReadMessage()
		if err != nil {
			return err
		}
		if err := s.handleMessage(ctx, msg); err != nil {
			log.Printf("Error handling %s: %v", msg.Method, err)
			if werr := s.transport.WriteError(msg.ID, -32603, err.Error()); werr != nil {
				return werr
			}
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, msg *Message) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "notifications/initialized":
		// Client acknowledgment, no response needed.
		return nil
	case "tools/list":
		return s.transport.WriteResponse(msg.ID, struct {
			Tools []tools.Tool `json:"tools"`
		}{Tools: tools.List()})
	case "tools/call":
		return s.handleToolsCall(ctx, msg)
	default:
		if msg.ID != nil {
			return s.transport.WriteError(msg.ID, -32601, fmt.Sprintf("Method not found: %s", msg.Method))
		}
		// Notifications without an ID get no response.
		return nil
	}
}

type initializeParams struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ClientInfo      clientInfo     `json:"clientInfo"`
}

type clientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    capabilities `json:"capabilities"`
	ServerInfo      serverInfo   `json:"serverInfo"`
}

type capabilities struct {
	Tools map[string]any `json:"tools,omitempty"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (s *Server) handleInitialize(msg *Message) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return fmt.Errorf("invalid initialize params: %w", err)
		}
	}
	log.Printf("Client: %s v%s", params.ClientInfo.Name, params.ClientInfo.Version)

	return s.transport.WriteResponse(msg.ID, initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities:    capabilities{Tools: map[string]any{}},
		ServerInfo:      serverInfo{Name: s.name, Version: s.version},
	})
}

func (s *Server) handleToolsCall(ctx context.Context, msg *Message) error {
	var params tools.CallParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return fmt.Errorf("invalid tools/call params: %w", err)
	}
	log.Printf("Tool call: %s", params.Name)
	return s.transport.WriteResponse(msg.ID, s.dispatcher.Invoke(ctx, params))
}
