// Package mcp implements the stdio MCP transport: JSON-RPC 2.0 messages,
// one per line, with protocol traffic on stdout and logging on stderr.
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
)

// Message represents a JSON-RPC 2.0 message.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Transport reads and writes line-delimited JSON-RPC messages.
type Transport struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewTransport creates a transport over the given stream pair.
func NewTransport(r io.Reader, w io.Writer) *Transport {
	return &Transport{reader: bufio.NewReader(r), writer: w}
}

// ReadMessage reads and parses the next message.
func (t *Transport) ReadMessage() (*Message, error) {
	line, err := t.reader.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, fmt.Errorf("parse JSON-RPC message: %w", err)
	}
	log.Printf("← %s id=%v", msg.Method, msg.ID)
	return &msg, nil
}

// WriteMessage serializes msg followed by a newline.
func (t *Transport) WriteMessage(msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal JSON-RPC message: %w", err)
	}
	data = append(data, '\n')
	if _, err := t.writer.Write(data); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// WriteResponse writes a success response for id.
func (t *Transport) WriteResponse(id any, result any) error {
	return t.WriteMessage(&Message{JSONRPC: "2.0", ID: id, Result: result})
}

// WriteError writes an error response for id.
func (t *Transport) WriteError(id any, code int, message string) error {
	return t.WriteMessage(&Message{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	})
}
