// ABOUTME: Handler implementations for RPC methods (models, current, switch, chat, status)
// ABOUTME: Dispatches requests to handlers that share one display state and chat session

package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/nimdeck/internal/chat"
	pilog "github.com/mauromedda/nimdeck/internal/log"
	"github.com/mauromedda/nimdeck/internal/perf"
	"github.com/mauromedda/nimdeck/pkg/api"
	"github.com/mauromedda/nimdeck/pkg/catalog"
)

const maxSuggestions = 3

// HandlerFunc processes an RPC request's params and returns a Response.
type HandlerFunc func(ctx context.Context, params json.RawMessage) Response

// Router dispatches RPC requests to registered handlers by method name.
type Router struct {
	handlers map[string]HandlerFunc
}

// NewRouter creates a Router with an empty handler registry.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]HandlerFunc)}
}

// Register associates a method name with a handler function.
func (r *Router) Register(method string, handler HandlerFunc) {
	r.handlers[method] = handler
}

// Handle dispatches a request to the registered handler, or returns
// a method-not-found error if no handler is registered.
func (r *Router) Handle(ctx context.Context, req Request) Response {
	h, ok := r.handlers[req.Method]
	if !ok {
		return Response{
			ID:    req.ID,
			Error: NewMethodNotFoundError(req.Method),
		}
	}

	resp := h(ctx, req.Params)
	resp.ID = req.ID
	return resp
}

// decodeParams unmarshals raw into v; absent params leave v untouched.
func decodeParams(raw json.RawMessage, v any) *Error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return NewInvalidParamsError(fmt.Sprintf("invalid params: %v", err))
	}
	return nil
}

// Backend is the subset of *api.Client the handlers need.
type Backend interface {
	CurrentModel(ctx context.Context) (*catalog.ActiveModel, error)
	ListModels(ctx context.Context) ([]catalog.Model, error)
	SwitchModel(ctx context.Context, id string) (*api.SwitchResult, error)
	chat.Sender
}

// Deps holds what handlers call into. State and Session persist across
// requests for the life of the server.
type Deps struct {
	Backend Backend
	State   *catalog.State
	Session *chat.Session
	BaseURL string
}

// NewDeps builds Deps with a fresh state and a chat session that targets
// the state's current model.
func NewDeps(b Backend, baseURL string, q catalog.Query, opts chat.Options) *Deps {
	state := catalog.NewState()
	state.SetQuery(q)
	if opts.CurrentModel == nil {
		opts.CurrentModel = state.CurrentID
	}
	return &Deps{
		Backend: b,
		State:   state,
		Session: chat.NewSession(opts),
		BaseURL: baseURL,
	}
}

// RegisterHandlers wires all method handlers into the given router.
func RegisterHandlers(r *Router, d *Deps) {
	r.Register(MethodListModels, handleListModels(d))
	r.Register(MethodGetCurrent, handleGetCurrent(d))
	r.Register(MethodSwitchModel, handleSwitchModel(d))
	r.Register(MethodChat, handleChat(d))
	r.Register(MethodClearChat, handleClearChat(d))
	r.Register(MethodGetTranscript, handleGetTranscript(d))
	r.Register(MethodGetStatus, handleGetStatus(d))
}

func handleListModels(d *Deps) HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) Response {
		var p ListModelsParams
		if e := decodeParams(raw, &p); e != nil {
			return Response{Error: e}
		}

		q := d.State.Query()
		if p.Search != nil {
			q.Search = strings.TrimSpace(*p.Search)
		}
		if p.Sort != "" {
			k, err := catalog.ParseSortKey(p.Sort)
			if err != nil {
				return Response{Error: NewInvalidParamsError(err.Error())}
			}
			q.Sort = k
		}
		if p.Filter != "" {
			f, err := catalog.ParseSpeedFilter(p.Filter)
			if err != nil {
				return Response{Error: NewInvalidParamsError(err.Error())}
			}
			q.Filter = f
		}

		var (
			models  []catalog.Model
			current *catalog.ActiveModel
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			models, err = d.Backend.ListModels(gctx)
			return err
		})
		g.Go(func() error {
			cur, err := d.Backend.CurrentModel(gctx)
			if err != nil {
				pilog.Debug("rpc: current model unavailable: %v", err)
				return nil
			}
			current = cur
			return nil
		})
		if err := g.Wait(); err != nil {
			return Response{Error: NewBackendError(err)}
		}

		d.State.SetModels(models)
		if current != nil {
			d.State.SetCurrent(current)
		}
		d.State.SetQuery(q)

		items := d.State.DisplayList()
		out := make([]ModelInfo, len(items))
		for i, it := range items {
			out[i] = ModelInfo{ID: it.ID, OwnedBy: it.OwnedBy, Speed: it.Speed, Size: it.Size, Current: it.Selected}
		}
		return Response{Result: ModelListResult{
			Models:  out,
			Current: d.State.CurrentID(),
			Total:   len(models),
			Sort:    string(q.Sort),
			Filter:  string(q.Filter),
		}}
	}
}

func handleGetCurrent(d *Deps) HandlerFunc {
	return func(ctx context.Context, _ json.RawMessage) Response {
		cur, err := d.Backend.CurrentModel(ctx)
		if err != nil {
			return Response{Error: NewBackendError(err)}
		}
		d.State.SetCurrent(cur)
		settings := cur.SettingLines()
		if settings == nil {
			settings = []string{}
		}
		return Response{Result: CurrentResult{Model: cur, Settings: settings}}
	}
}

func handleSwitchModel(d *Deps) HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) Response {
		var p SwitchParams
		if e := decodeParams(raw, &p); e != nil {
			return Response{Error: e}
		}
		id := strings.TrimSpace(p.Model)
		if id == "" {
			return Response{Error: NewInvalidParamsError("model is required")}
		}

		var suggestions []string
		if models := d.State.Models(); len(models) > 0 && !catalog.Contains(models, id) {
			suggestions = catalog.Suggest(models, id, maxSuggestions)
		}

		res, err := d.Backend.SwitchModel(ctx, id)
		if err != nil {
			e := NewBackendError(err)
			if len(suggestions) > 0 {
				e.Message += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
			}
			return Response{Error: e}
		}

		active := res.ActiveModel
		if active.ID == "" {
			active.ID = id
		}
		d.State.SetCurrent(&active)
		return Response{Result: SwitchResult{
			ID:            active.ID,
			Message:       res.Message,
			PreviousModel: res.PreviousModel,
		}}
	}
}

func handleChat(d *Deps) HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) Response {
		var p ChatParams
		if e := decodeParams(raw, &p); e != nil {
			return Response{Error: e}
		}

		pending, ok := d.Session.Begin(p.Prompt)
		if !ok {
			return Response{Error: NewEmptyPromptError()}
		}
		resp, err := d.Backend.SendMessage(ctx, pending.Request)
		entry := d.Session.Complete(pending, resp, err)
		if err != nil {
			e := NewBackendError(err)
			e.Message = entry.Text
			return Response{Error: e}
		}
		return Response{Result: ChatResult{Text: entry.Text}}
	}
}

func handleClearChat(d *Deps) HandlerFunc {
	return func(_ context.Context, _ json.RawMessage) Response {
		d.Session.Clear()
		return Response{Result: transcript(d.Session)}
	}
}

func handleGetTranscript(d *Deps) HandlerFunc {
	return func(_ context.Context, _ json.RawMessage) Response {
		return Response{Result: transcript(d.Session)}
	}
}

func transcript(s *chat.Session) TranscriptResult {
	entries := s.Transcript()
	out := make([]TranscriptEntry, len(entries))
	for i, e := range entries {
		out[i] = TranscriptEntry{ID: e.ID, Role: e.Role, Text: e.Text}
	}
	return TranscriptResult{Entries: out}
}

// handleGetStatus fetches both endpoints concurrently. It fails only when
// neither answers.
func handleGetStatus(d *Deps) HandlerFunc {
	return func(ctx context.Context, _ json.RawMessage) Response {
		st := StatusResult{BaseURL: d.BaseURL, BySpeed: map[catalog.Speed]int{}}

		var (
			current            *catalog.ActiveModel
			models             []catalog.Model
			currentErr, getErr error
			g                  errgroup.Group
		)
		g.Go(func() error {
			probe := perf.Probe(ctx, func(ctx context.Context) error {
				var err error
				current, err = d.Backend.CurrentModel(ctx)
				return err
			})
			currentErr = probe.Err
			st.Latency, st.LatencyMS = probe.Latency, probe.Elapsed.Milliseconds()
			return nil
		})
		g.Go(func() error {
			models, getErr = d.Backend.ListModels(ctx)
			return nil
		})
		_ = g.Wait()

		if currentErr != nil && getErr != nil {
			e := NewBackendError(getErr)
			e.Message = fmt.Sprintf("backend unreachable at %s: %s", d.BaseURL, e.Message)
			return Response{Error: e}
		}
		if currentErr != nil {
			st.Errors = append(st.Errors, api.Message(currentErr))
		} else {
			d.State.SetCurrent(current)
			st.Current = current.ID
		}
		if getErr != nil {
			st.Errors = append(st.Errors, api.Message(getErr))
		} else {
			d.State.SetModels(models)
		}

		st.Total = len(models)
		for _, m := range models {
			st.BySpeed[catalog.ClassifySpeed(m.ID)]++
		}
		return Response{Result: st}
	}
}
