// ABOUTME: Dependency injection struct for the dashboard
// ABOUTME: Backend abstracts the API client so tests can point at a fake server

package btea

import (
	"context"

	"github.com/mauromedda/nimdeck/internal/chat"
	"github.com/mauromedda/nimdeck/pkg/api"
	"github.com/mauromedda/nimdeck/pkg/catalog"
	"github.com/mauromedda/nimdeck/pkg/tui/clipboard"
)

// Backend is the subset of *api.Client the dashboard needs.
type Backend interface {
	CurrentModel(ctx context.Context) (*catalog.ActiveModel, error)
	ListModels(ctx context.Context) ([]catalog.Model, error)
	SwitchModel(ctx context.Context, id string) (*api.SwitchResult, error)
	chat.Sender
}

// AppDeps bundles all dependencies for the dashboard.
type AppDeps struct {
	Backend Backend
	// State is shared with the caller; a fresh one is created when nil.
	State   *catalog.State
	Chat    chat.Options
	BaseURL string
	Version string
	// Copy writes to the clipboard; nil uses the system clipboard.
	Copy clipboard.Writer
}
