// ABOUTME: Wire types for model switching and the Anthropic-style messages endpoint
// ABOUTME: Content blocks carry either text or thinking; Reply applies the display policy

package api

import "github.com/mauromedda/nimdeck/pkg/catalog"

// SwitchResult is the response of POST /v1/models/switch.
type SwitchResult struct {
	catalog.ActiveModel
	Message       string `json:"message,omitempty"`
	PreviousModel string `json:"previous_model,omitempty"`
}

// ChatMessage is one message of a messages request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessageRequest is the body of POST /v1/messages.
type MessageRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

// Content block types.
const (
	ContentText     = "text"
	ContentThinking = "thinking"
)

// ContentBlock is one element of a messages response's content list.
type ContentBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Thinking string `json:"thinking,omitempty"`
}

// MessageResponse is the body of a successful POST /v1/messages.
type MessageResponse struct {
	ID         string         `json:"id,omitempty"`
	Model      string         `json:"model,omitempty"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"`
}

// NoResponse is shown when the first content block has no displayable text.
const NoResponse = "No response"

// Reply selects the text to display: only the first content block is
// considered; text blocks show Text, thinking blocks show Thinking.
func (r *MessageResponse) Reply() string {
	if r == nil || len(r.Content) == 0 {
		return NoResponse
	}
	switch first := r.Content[0]; first.Type {
	case ContentText:
		return first.Text
	case ContentThinking:
		return first.Thinking
	default:
		return NoResponse
	}
}
