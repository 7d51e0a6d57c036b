// ABOUTME: RPC request/response envelopes and method names
// ABOUTME: JSON-serializable types shared by the server loop and the router

package rpc

import "encoding/json"

// Request represents an RPC request from an external client.
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response represents an RPC response to an external client.
type Response struct {
	ID     string `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

// Error represents an RPC error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// Methods
const (
	MethodListModels    = "list_models"
	MethodGetCurrent    = "get_current"
	MethodSwitchModel   = "switch_model"
	MethodChat          = "chat"
	MethodClearChat     = "clear_chat"
	MethodGetTranscript = "get_transcript"
	MethodGetStatus     = "get_status"
)
