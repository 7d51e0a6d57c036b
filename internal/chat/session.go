// ABOUTME: Ephemeral chat transcript and the per-message send lifecycle
// ABOUTME: Begin appends user + loading entries; Complete swaps loading for reply or error

package chat

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	pilog "github.com/mauromedda/nimdeck/internal/log"
	"github.com/mauromedda/nimdeck/pkg/api"
)

// Role identifies the kind of transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleError     Role = "error"
	RoleSystem    Role = "system"
	RoleLoading   Role = "loading"
)

// Fixed transcript texts.
const (
	LoadingText = "Thinking..."
	ClearedText = "Chat cleared. Type your message below."
)

// Defaults for outbound requests.
const (
	DefaultModel     = "meta/llama-3.1-8b-instruct"
	DefaultMaxTokens = 1024
)

// Entry is one transcript line.
type Entry struct {
	ID   string
	Role Role
	Text string
}

// Sender delivers a messages request. *api.Client satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, req api.MessageRequest) (*api.MessageResponse, error)
}

// Pending is an in-flight send: the loading entry to remove and the request
// to deliver.
type Pending struct {
	LoadingID string
	Request   api.MessageRequest
}

// Options configures a Session.
type Options struct {
	// CurrentModel reports the active model ID; "" means unknown.
	CurrentModel func() string
	DefaultModel string
	MaxTokens    int
}

// Session holds the transcript. Only the latest user message is ever sent;
// no history travels with a request.
//
// Concurrent sends are not prevented: each gets its own loading entry and
// completes independently, in arrival order.
type Session struct {
	mu         sync.Mutex
	transcript []Entry
	opts       Options
}

// NewSession creates an empty session.
func NewSession(opts Options) *Session {
	if opts.DefaultModel == "" {
		opts.DefaultModel = DefaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.CurrentModel == nil {
		opts.CurrentModel = func() string { return "" }
	}
	return &Session{opts: opts}
}

// Begin starts a send for input. Whitespace-only input is rejected.
// The user entry and a loading entry are appended immediately.
func (s *Session) Begin(input string) (Pending, bool) {
	text := strings.TrimSpace(input)
	if text == "" {
		return Pending{}, false
	}

	model := s.opts.CurrentModel()
	if model == "" {
		model = s.opts.DefaultModel
	}

	p := Pending{
		LoadingID: uuid.NewString(),
		Request: api.MessageRequest{
			Model:     model,
			Messages:  []api.ChatMessage{{Role: string(RoleUser), Content: text}},
			MaxTokens: s.opts.MaxTokens,
		},
	}

	s.mu.Lock()
	s.transcript = append(s.transcript,
		Entry{ID: uuid.NewString(), Role: RoleUser, Text: text},
		Entry{ID: p.LoadingID, Role: RoleLoading, Text: LoadingText},
	)
	s.mu.Unlock()
	return p, true
}

// Complete finishes a send: the pending loading entry is removed (if still
// present) and exactly one assistant or error entry is appended.
func (s *Session) Complete(p Pending, resp *api.MessageResponse, err error) Entry {
	var e Entry
	if err != nil {
		msg := api.Message(err)
		if msg == "" {
			msg = api.MsgSend
		}
		pilog.Debug("chat: send to %s failed: %v", p.Request.Model, err)
		e = Entry{ID: uuid.NewString(), Role: RoleError, Text: msg}
	} else {
		e = Entry{ID: uuid.NewString(), Role: RoleAssistant, Text: resp.Reply()}
	}

	s.mu.Lock()
	s.transcript = slices.DeleteFunc(s.transcript, func(x Entry) bool { return x.ID == p.LoadingID })
	s.transcript = append(s.transcript, e)
	s.mu.Unlock()
	return e
}

// Send runs a whole exchange: Begin, deliver through sender, Complete.
// Returns false when input was empty and nothing was sent.
func (s *Session) Send(ctx context.Context, sender Sender, input string) (Entry, bool) {
	p, ok := s.Begin(input)
	if !ok {
		return Entry{}, false
	}
	resp, err := sender.SendMessage(ctx, p.Request)
	return s.Complete(p, resp, err), true
}

// Clear resets the transcript to a single system placeholder. In-flight
// sends still append their result when they complete.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = []Entry{{ID: uuid.NewString(), Role: RoleSystem, Text: ClearedText}}
}

// Transcript returns a copy of the transcript.
func (s *Session) Transcript() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transcript)
}

// Sending reports how many loading entries are in the transcript.
func (s *Session) Sending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.transcript {
		if e.Role == RoleLoading {
			n++
		}
	}
	return n
}
