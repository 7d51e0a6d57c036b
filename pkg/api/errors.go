// ABOUTME: Error taxonomy for backend calls: transport, HTTP status, and undecodable bodies
// ABOUTME: Message extracts the user-visible text shown in notifications and transcripts

package api

import (
	"errors"
	"fmt"
)

// Generic messages used when the backend gives nothing better.
const (
	MsgLoadCurrent = "Failed to load current model"
	MsgLoadModels  = "Failed to load models"
	MsgSwitch      = "Failed to switch model"
	MsgSend        = "Failed to get response"
)

// FetchError is a network or transport failure; no HTTP response was received.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response. Message is parsed from the body when
// possible, else the operation's generic message.
type HTTPError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

// ParseError is a response body that could not be decoded. It is surfaced
// like an HTTPError carrying the generic message.
type ParseError struct {
	Op      string
	Message string
	Err     error
}

func (e *ParseError) Error() string { return fmt.Sprintf("%s: decoding response: %v", e.Op, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Message returns the text a user should see for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Message
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) && fetchErr.Err != nil {
		return fetchErr.Err.Error()
	}
	return err.Error()
}
