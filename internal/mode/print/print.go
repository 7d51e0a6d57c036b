// ABOUTME: Headless subcommands: models, current, switch, chat, status
// ABOUTME: Each command talks to the backend once and hands results to a text or JSON formatter

package print

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/nimdeck/internal/chat"
	pilog "github.com/mauromedda/nimdeck/internal/log"
	"github.com/mauromedda/nimdeck/internal/perf"
	"github.com/mauromedda/nimdeck/pkg/api"
	"github.com/mauromedda/nimdeck/pkg/catalog"
)

// maxSuggestions bounds the "did you mean" list for switch.
const maxSuggestions = 3

// Backend is the subset of *api.Client print mode needs.
type Backend interface {
	CurrentModel(ctx context.Context) (*catalog.ActiveModel, error)
	ListModels(ctx context.Context) ([]catalog.Model, error)
	SwitchModel(ctx context.Context, id string) (*api.SwitchResult, error)
	chat.Sender
}

// Config configures headless execution.
type Config struct {
	OutputFormat string // "text" (default), "json"
	Query        catalog.Query
	Model        string // chat: pinned model; "" uses the backend's current model
	DefaultModel string // chat: fallback when the current model is unknown
	MaxTokens    int
}

// Deps provides dependencies for print mode.
type Deps struct {
	Backend Backend
	Out     io.Writer
	In      io.Reader // chat prompt when no arguments are given
}

// StatusReport summarises the backend for the status command.
type StatusReport struct {
	BaseURL string                `json:"base_url,omitempty"`
	Current *catalog.ActiveModel  `json:"current,omitempty"`
	Total   int                   `json:"total"`
	BySpeed map[catalog.Speed]int `json:"by_speed"`
	Errors  []string              `json:"errors,omitempty"`

	Latency   perf.LatencyClass `json:"latency"`
	LatencyMS int64             `json:"latency_ms"`
}

// ErrEmptyPrompt is returned by Chat when there is nothing to send.
var ErrEmptyPrompt = errors.New("empty prompt")

// displayError carries the user-facing text of a failed backend call while
// keeping the typed cause reachable through errors.As.
type displayError struct {
	msg string
	err error
}

func (e *displayError) Error() string { return e.msg }
func (e *displayError) Unwrap() error { return e.err }

func failure(err error) *displayError {
	pilog.Debug("print: %v", err)
	return &displayError{msg: api.Message(err), err: err}
}

// Models prints the display list for cfg.Query. The current model is marked
// when it can be fetched; a failure to fetch it is not an error.
func Models(ctx context.Context, cfg Config, deps Deps) error {
	var (
		models  []catalog.Model
		current *catalog.ActiveModel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		models, err = deps.Backend.ListModels(gctx)
		return err
	})
	g.Go(func() error {
		cur, err := deps.Backend.CurrentModel(gctx)
		if err != nil {
			pilog.Debug("print: current model unavailable: %v", err)
			return nil
		}
		current = cur
		return nil
	})
	if err := g.Wait(); err != nil {
		return failure(err)
	}

	state := catalog.NewState()
	state.SetModels(models)
	state.SetCurrent(current)
	state.SetQuery(cfg.Query)

	return newFormatter(cfg.OutputFormat, deps.Out).models(state.DisplayList())
}

// Current prints the backend's active model.
func Current(ctx context.Context, cfg Config, deps Deps) error {
	cur, err := deps.Backend.CurrentModel(ctx)
	if err != nil {
		return failure(err)
	}
	return newFormatter(cfg.OutputFormat, deps.Out).current(cur)
}

// Switch makes id the backend's active model. When the listing is reachable
// and does not contain id, close matches are reported; the switch is still
// attempted since the backend decides.
func Switch(ctx context.Context, cfg Config, deps Deps, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("switch: model id required")
	}

	var suggestions []string
	if models, err := deps.Backend.ListModels(ctx); err != nil {
		pilog.Debug("print: listing unavailable for suggestions: %v", err)
	} else if !catalog.Contains(models, id) {
		suggestions = catalog.Suggest(models, id, maxSuggestions)
	}

	res, err := deps.Backend.SwitchModel(ctx, id)
	if err != nil {
		fe := failure(err)
		if len(suggestions) > 0 {
			fe.msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
		}
		return fe
	}
	return newFormatter(cfg.OutputFormat, deps.Out).switched(res)
}

// Chat sends one prompt and prints the reply. args are joined with spaces;
// with no args the prompt is read from deps.In.
func Chat(ctx context.Context, cfg Config, deps Deps, args []string) error {
	prompt := strings.Join(args, " ")
	if strings.TrimSpace(prompt) == "" && deps.In != nil {
		data, err := io.ReadAll(deps.In)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		prompt = string(data)
	}

	model := cfg.Model
	if model == "" {
		if cur, err := deps.Backend.CurrentModel(ctx); err == nil {
			model = cur.ID
		} else {
			pilog.Debug("print: current model unavailable, using default: %v", err)
		}
	}

	s := chat.NewSession(chat.Options{
		CurrentModel: func() string { return model },
		DefaultModel: cfg.DefaultModel,
		MaxTokens:    cfg.MaxTokens,
	})
	entry, ok := s.Send(ctx, deps.Backend, prompt)
	if !ok {
		return ErrEmptyPrompt
	}
	if entry.Role == chat.RoleError {
		return errors.New(entry.Text)
	}
	return newFormatter(cfg.OutputFormat, deps.Out).reply(entry.Text)
}

// Status fetches the current model and the listing concurrently and prints
// a summary including how long the current-model call took. It fails only
// when both fetches fail.
func Status(ctx context.Context, cfg Config, deps Deps, baseURL string) error {
	st := StatusReport{BaseURL: baseURL, BySpeed: map[catalog.Speed]int{}}

	var (
		models             []catalog.Model
		currentErr, getErr error
		g                  errgroup.Group
	)
	g.Go(func() error {
		probe := perf.Probe(ctx, func(ctx context.Context) error {
			var err error
			st.Current, err = deps.Backend.CurrentModel(ctx)
			return err
		})
		currentErr = probe.Err
		st.Latency, st.LatencyMS = probe.Latency, probe.Elapsed.Milliseconds()
		return nil
	})
	g.Go(func() error {
		models, getErr = deps.Backend.ListModels(ctx)
		return nil
	})
	_ = g.Wait()

	if currentErr != nil {
		st.Errors = append(st.Errors, api.Message(currentErr))
	}
	if getErr != nil {
		st.Errors = append(st.Errors, api.Message(getErr))
	}
	if currentErr != nil && getErr != nil {
		return &displayError{
			msg: fmt.Sprintf("backend unreachable at %s: %s", baseURL, api.Message(getErr)),
			err: errors.Join(currentErr, getErr),
		}
	}

	st.Total = len(models)
	for _, m := range models {
		st.BySpeed[catalog.ClassifySpeed(m.ID)]++
	}
	return newFormatter(cfg.OutputFormat, deps.Out).status(st)
}
