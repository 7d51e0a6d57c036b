// ABOUTME: Standard JSON-RPC error codes and backend failure mapping
// ABOUTME: Backend errors carry the user-facing message and, for HTTP failures, the status

package rpc

import (
	"errors"

	"github.com/mauromedda/nimdeck/pkg/api"
)

// Standard JSON-RPC 2.0 error codes.
const (
	ErrCodeParse          = -32700
	ErrCodeInvalidReq     = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
)

// Custom application error codes.
const (
	ErrCodeBackend     = -32001
	ErrCodeEmptyPrompt = -32002
)

// NewParseError returns an Error for malformed JSON input.
func NewParseError(msg string) *Error {
	return &Error{Code: ErrCodeParse, Message: msg}
}

// NewInvalidRequestError returns an Error for a request missing required fields.
func NewInvalidRequestError(msg string) *Error {
	return &Error{Code: ErrCodeInvalidReq, Message: msg}
}

// NewMethodNotFoundError returns an Error for an unknown RPC method.
func NewMethodNotFoundError(method string) *Error {
	return &Error{Code: ErrCodeMethodNotFound, Message: "method not found: " + method}
}

// NewInvalidParamsError returns an Error for invalid method parameters.
func NewInvalidParamsError(msg string) *Error {
	return &Error{Code: ErrCodeInvalidParams, Message: msg}
}

// NewInternalError returns an Error for unexpected server-side failures.
func NewInternalError(msg string) *Error {
	return &Error{Code: ErrCodeInternal, Message: msg}
}

// NewEmptyPromptError returns an Error when a chat prompt is blank.
func NewEmptyPromptError() *Error {
	return &Error{Code: ErrCodeEmptyPrompt, Message: "empty prompt"}
}

// BackendErrorData is attached to backend errors that came with an HTTP status.
type BackendErrorData struct {
	Status int `json:"status"`
}

// NewBackendError returns an Error for a failed backend call. The message is
// what a user would see; the HTTP status is attached when there was one.
func NewBackendError(err error) *Error {
	e := &Error{Code: ErrCodeBackend, Message: api.Message(err)}
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		e.Data = BackendErrorData{Status: httpErr.StatusCode}
	}
	return e
}
