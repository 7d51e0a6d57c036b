// ABOUTME: Param and result payloads for the RPC methods
// ABOUTME: Model, switch, chat, transcript and status shapes as seen on the wire

package rpc

import (
	"github.com/mauromedda/nimdeck/internal/chat"
	"github.com/mauromedda/nimdeck/internal/perf"
	"github.com/mauromedda/nimdeck/pkg/catalog"
)

// ListModelsParams overrides the session query; empty fields keep the
// current value.
type ListModelsParams struct {
	Search *string `json:"search,omitempty"`
	Sort   string  `json:"sort,omitempty"`
	Filter string  `json:"filter,omitempty"`
}

// ModelInfo is one row of the display list.
type ModelInfo struct {
	ID      string        `json:"id"`
	OwnedBy string        `json:"owned_by,omitempty"`
	Speed   catalog.Speed `json:"speed"`
	Size    int           `json:"size_b"`
	Current bool          `json:"current"`
}

// ModelListResult is the response payload for list_models.
type ModelListResult struct {
	Models  []ModelInfo `json:"models"`
	Current string      `json:"current,omitempty"`
	Total   int         `json:"total"`
	Sort    string      `json:"sort"`
	Filter  string      `json:"filter"`
}

// CurrentResult is the response payload for get_current.
type CurrentResult struct {
	Model    *catalog.ActiveModel `json:"model"`
	Settings []string             `json:"settings"`
}

// SwitchParams names the model to activate.
type SwitchParams struct {
	Model string `json:"model"`
}

// SwitchResult is the response payload for switch_model.
type SwitchResult struct {
	ID            string   `json:"id"`
	Message       string   `json:"message,omitempty"`
	PreviousModel string   `json:"previous_model,omitempty"`
	Suggestions   []string `json:"suggestions,omitempty"`
}

// ChatParams carries one prompt.
type ChatParams struct {
	Prompt string `json:"prompt"`
}

// ChatResult is the response payload for chat.
type ChatResult struct {
	Text string `json:"text"`
}

// TranscriptEntry is one line of the chat transcript.
type TranscriptEntry struct {
	ID   string    `json:"id"`
	Role chat.Role `json:"role"`
	Text string    `json:"text"`
}

// TranscriptResult is the response payload for get_transcript and clear_chat.
type TranscriptResult struct {
	Entries []TranscriptEntry `json:"entries"`
}

// StatusResult is the response payload for get_status.
type StatusResult struct {
	BaseURL   string                `json:"base_url,omitempty"`
	Current   string                `json:"current,omitempty"`
	Total     int                   `json:"total"`
	BySpeed   map[catalog.Speed]int `json:"by_speed"`
	Latency   perf.LatencyClass     `json:"latency"`
	LatencyMS int64                 `json:"latency_ms"`
	Errors    []string              `json:"errors,omitempty"`
}
