// ABOUTME: In-process fake of the model-switching backend for tests, routed with gorilla/mux
// ABOUTME: Serves list/current/switch/messages with injectable failures and request capture

package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/mauromedda/nimdeck/pkg/catalog"
)

// MessageRequest mirrors the body of POST /v1/messages as received.
type MessageRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens int `json:"max_tokens"`

	APIKey           string `json:"-"`
	AnthropicVersion string `json:"-"`
}

// MessageFunc produces the status and JSON body for a messages request.
// A string body is written verbatim.
type MessageFunc func(req MessageRequest) (int, any)

// Backend is a fake backend. State changes made by the switch endpoint are
// visible to later requests.
type Backend struct {
	mu sync.Mutex

	models  []catalog.Model
	current catalog.ActiveModel

	// Non-zero statuses make the corresponding endpoint fail.
	listStatus    int
	currentStatus int
	listBody      string

	onMessage MessageFunc
	requests  []MessageRequest

	srv *httptest.Server
}

// Option configures a Backend.
type Option func(*Backend)

// WithModels sets the listing and makes the first model current.
func WithModels(models ...catalog.Model) Option {
	return func(b *Backend) {
		b.models = models
		if len(models) > 0 {
			b.current = catalog.ActiveModel{Model: models[0]}
		}
	}
}

// WithCurrent overrides the active model.
func WithCurrent(m catalog.ActiveModel) Option {
	return func(b *Backend) { b.current = m }
}

// WithListFailure makes GET /v1/models answer status.
func WithListFailure(status int) Option {
	return func(b *Backend) { b.listStatus = status }
}

// WithListBody makes GET /v1/models answer 200 with a raw body.
func WithListBody(body string) Option {
	return func(b *Backend) { b.listBody = body }
}

// WithCurrentFailure makes GET /v1/models/current answer status.
func WithCurrentFailure(status int) Option {
	return func(b *Backend) { b.currentStatus = status }
}

// WithMessages installs the messages handler. The default echoes the last
// user message as a text block.
func WithMessages(fn MessageFunc) Option {
	return func(b *Backend) { b.onMessage = fn }
}

// New starts a Backend and stops it when the test ends.
func New(t testing.TB, opts ...Option) *Backend {
	t.Helper()

	b := &Backend{onMessage: echo}
	for _, opt := range opts {
		opt(b)
	}
	b.srv = httptest.NewServer(b.Router())
	t.Cleanup(b.srv.Close)
	return b
}

// URL is the base URL of the running server.
func (b *Backend) URL() string {
	return b.srv.URL
}

// Router builds the route table.
func (b *Backend) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/models/current", b.handleCurrent).Methods(http.MethodGet)
	r.HandleFunc("/v1/models/switch", b.handleSwitch).Methods(http.MethodPost)
	r.HandleFunc("/v1/models", b.handleList).Methods(http.MethodGet)
	r.HandleFunc("/v1/messages", b.handleMessages).Methods(http.MethodPost)
	return r
}

// Current returns the backend's active model.
func (b *Backend) Current() catalog.ActiveModel {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Requests returns the messages requests received so far.
func (b *Backend) Requests() []MessageRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]MessageRequest(nil), b.requests...)
}

func (b *Backend) handleCurrent(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	status, current := b.currentStatus, b.current
	b.mu.Unlock()

	if status != 0 {
		writeJSON(w, status, map[string]string{"detail": "current model unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (b *Backend) handleList(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	status, body, models := b.listStatus, b.listBody, b.models
	b.mu.Unlock()

	switch {
	case status != 0:
		writeJSON(w, status, map[string]string{"detail": "listing unavailable"})
	case body != "":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	default:
		if models == nil {
			models = []catalog.Model{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"object": "list", "data": models})
	}
}

func (b *Backend) handleSwitch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Model == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "model is required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var target *catalog.Model
	for i := range b.models {
		if b.models[i].ID == req.Model {
			target = &b.models[i]
			break
		}
	}
	if target == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": fmt.Sprintf("Model '%s' not found", req.Model)})
		return
	}

	previous := b.current.ID
	b.current = catalog.ActiveModel{Model: *target, Settings: b.current.Settings}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":             b.current.ID,
		"owned_by":       b.current.OwnedBy,
		"settings":       b.current.Settings,
		"previous_model": previous,
		"message":        fmt.Sprintf("Successfully switched to model: %s", b.current.ID),
	})
}

func (b *Backend) handleMessages(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"type":  "error",
			"error": map[string]string{"type": "invalid_request_error", "message": "invalid JSON"},
		})
		return
	}
	req.APIKey = r.Header.Get("x-api-key")
	req.AnthropicVersion = r.Header.Get("anthropic-version")

	b.mu.Lock()
	b.requests = append(b.requests, req)
	fn := b.onMessage
	b.mu.Unlock()

	status, body := fn(req)
	if s, ok := body.(string); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(s))
		return
	}
	writeJSON(w, status, body)
}

func echo(req MessageRequest) (int, any) {
	text := ""
	if n := len(req.Messages); n > 0 {
		text = req.Messages[n-1].Content
	}
	return http.StatusOK, TextReply("echo: " + text)
}

// TextReply builds a messages response with a single text block.
func TextReply(text string) map[string]any {
	return map[string]any{
		"type":    "message",
		"role":    "assistant",
		"content": []map[string]string{{"type": "text", "text": text}},
	}
}

// ErrorReply builds an Anthropic-style error body.
func ErrorReply(message string) map[string]any {
	return map[string]any{
		"type":  "error",
		"error": map[string]string{"type": "api_error", "message": message},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
