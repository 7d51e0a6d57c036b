// ABOUTME: Client for the model-switching backend: list, current, switch, and messages
// ABOUTME: Each call is one attempt; failures map to FetchError, HTTPError, or ParseError

package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mauromedda/nimdeck/pkg/api/internal/httputil"
	"github.com/mauromedda/nimdeck/pkg/catalog"
)

const (
	currentPath  = "/v1/models/current"
	modelsPath   = "/v1/models"
	switchPath   = "/v1/models/switch"
	messagesPath = "/v1/messages"

	// DefaultAnthropicVersion is sent with every messages request.
	DefaultAnthropicVersion = "2023-06-01"
	// DefaultAPIKey is what the bundled web dashboard sends; the backend
	// does not validate it.
	DefaultAPIKey = "demo"
)

// Options configures a Client.
type Options struct {
	BaseURL          string
	APIKey           string
	AnthropicVersion string
}

// Client talks to the backend's REST API.
type Client struct {
	http             *httputil.Client
	apiKey           string
	anthropicVersion string
}

// New creates a Client. Empty APIKey and AnthropicVersion take their defaults.
func New(opts Options) *Client {
	if opts.APIKey == "" {
		opts.APIKey = DefaultAPIKey
	}
	if opts.AnthropicVersion == "" {
		opts.AnthropicVersion = DefaultAnthropicVersion
	}
	return &Client{
		http:             httputil.NewClient(opts.BaseURL, nil),
		apiKey:           opts.APIKey,
		anthropicVersion: opts.AnthropicVersion,
	}
}

// BaseURL returns the normalized backend URL.
func (c *Client) BaseURL() string {
	return c.http.BaseURL()
}

// CurrentModel fetches the backend's active model.
func (c *Client) CurrentModel(ctx context.Context) (*catalog.ActiveModel, error) {
	const op = "load current model"

	resp, err := c.http.Do(ctx, http.MethodGet, currentPath, nil, nil)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	if !resp.OK() {
		return nil, &HTTPError{Op: op, StatusCode: resp.StatusCode, Message: MsgLoadCurrent}
	}

	var m catalog.ActiveModel
	if err := json.Unmarshal(resp.Body, &m); err != nil {
		return nil, &ParseError{Op: op, Message: MsgLoadCurrent, Err: err}
	}
	return &m, nil
}

// ListModels fetches every model the backend offers, in server order.
func (c *Client) ListModels(ctx context.Context) ([]catalog.Model, error) {
	const op = "load models"

	resp, err := c.http.Do(ctx, http.MethodGet, modelsPath, nil, nil)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	if !resp.OK() {
		return nil, &HTTPError{Op: op, StatusCode: resp.StatusCode, Message: MsgLoadModels}
	}

	var body struct {
		Data []catalog.Model `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, &ParseError{Op: op, Message: MsgLoadModels, Err: err}
	}
	if body.Data == nil {
		body.Data = []catalog.Model{}
	}
	return body.Data, nil
}

// SwitchModel asks the backend to make id the active model.
func (c *Client) SwitchModel(ctx context.Context, id string) (*SwitchResult, error) {
	const op = "switch model"

	resp, err := c.http.DoJSON(ctx, http.MethodPost, switchPath, map[string]string{"model": id}, nil)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	if !resp.OK() {
		return nil, &HTTPError{Op: op, StatusCode: resp.StatusCode, Message: detailMessage(resp.Body, MsgSwitch)}
	}

	var res SwitchResult
	if err := json.Unmarshal(resp.Body, &res); err != nil {
		return nil, &ParseError{Op: op, Message: MsgSwitch, Err: err}
	}
	return &res, nil
}

// SendMessage posts a messages request.
func (c *Client) SendMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	const op = "send message"

	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": c.anthropicVersion,
	}
	resp, err := c.http.DoJSON(ctx, http.MethodPost, messagesPath, req, headers)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	if !resp.OK() {
		return nil, &HTTPError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(resp.Body, MsgSend)}
	}

	var out MessageResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, &ParseError{Op: op, Message: MsgSend, Err: err}
	}
	return &out, nil
}

// detailMessage reads a string {"detail": "..."} body.
func detailMessage(body []byte, fallback string) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &payload) != nil || len(payload.Detail) == 0 {
		return fallback
	}
	var detail string
	if json.Unmarshal(payload.Detail, &detail) != nil || detail == "" {
		return fallback
	}
	return detail
}

// errorMessage reads an Anthropic-style {"error": {"message": "..."}} body.
func errorMessage(body []byte, fallback string) string {
	var payload struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &payload) != nil || payload.Error.Message == "" {
		return fallback
	}
	return payload.Error.Message
}
