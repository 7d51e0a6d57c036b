// ABOUTME: CLI entry point for nimdeck
// ABOUTME: Parses flags, loads settings, builds the backend client, dispatches to TUI, print, or RPC mode

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	// termfix pins the lipgloss background; it only takes effect before the
	// first renderer queries the terminal, not before bubbletea's own init.
	_ "github.com/mauromedda/nimdeck/internal/termfix"

	"golang.org/x/term"

	"github.com/mauromedda/nimdeck/internal/chat"
	"github.com/mauromedda/nimdeck/internal/config"
	pilog "github.com/mauromedda/nimdeck/internal/log"
	"github.com/mauromedda/nimdeck/internal/mode/interactive/btea"
	"github.com/mauromedda/nimdeck/internal/mode/print"
	"github.com/mauromedda/nimdeck/internal/mode/rpc"
	"github.com/mauromedda/nimdeck/pkg/api"
	"github.com/mauromedda/nimdeck/pkg/catalog"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// env is the process surface run needs; tests substitute their own.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cwd    string
	isTTY  bool
	runTUI func(btea.AppDeps) error
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: getting working directory: %v\n", err)
		os.Exit(1)
	}

	e := env{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		cwd:    cwd,
		isTTY:  term.IsTerminal(int(os.Stdout.Fd())),
		runTUI: btea.Run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], e); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run performs the initialization sequence and dispatches to the selected mode.
func run(ctx context.Context, argv []string, e env) error {
	args, err := parseFlags(argv, e.stderr)
	if err != nil {
		return err
	}

	if args.version {
		fmt.Fprintf(e.stdout, "nimdeck %s (%s) built %s\n", version, commit, date)
		return nil
	}
	if args.verbose {
		pilog.SetLevel(pilog.LevelDebug)
	}

	settings, err := config.Load(e.cwd, config.Overrides{
		BaseURL: args.baseURL,
		APIKey:  args.apiKey,
		Model:   args.model,
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	query, err := settings.Query()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client := api.New(api.Options{
		BaseURL:          settings.BaseURL,
		APIKey:           settings.APIKey,
		AnthropicVersion: settings.AnthropicVersion,
	})
	pilog.Debug("backend %s", client.BaseURL())

	command := args.command
	if command == "" {
		command = cmdModels
		if e.isTTY {
			command = cmdTUI
		}
	}

	if command == cmdTUI {
		state := catalog.NewState()
		state.SetQuery(query)
		return e.runTUI(btea.AppDeps{
			Backend: client,
			State:   state,
			Chat: chat.Options{
				DefaultModel: settings.DefaultModel,
				MaxTokens:    settings.MaxTokens,
			},
			BaseURL: client.BaseURL(),
			Version: version,
		})
	}

	if command == cmdRPC {
		deps := rpc.NewDeps(client, client.BaseURL(), query, chat.Options{
			DefaultModel: settings.DefaultModel,
			MaxTokens:    settings.MaxTokens,
		})
		router := rpc.NewRouter()
		rpc.RegisterHandlers(router, deps)
		return rpc.NewServer(e.stdin, e.stdout, router.Handle).Run(ctx)
	}

	cfg := print.Config{
		Query:        query,
		Model:        args.chatModel,
		DefaultModel: settings.DefaultModel,
		MaxTokens:    settings.MaxTokens,
	}
	if args.json {
		cfg.OutputFormat = "json"
	}
	if err := applyModelsFlags(&cfg.Query, args); err != nil {
		return err
	}
	deps := print.Deps{Backend: client, Out: e.stdout, In: e.stdin}

	switch command {
	case cmdModels:
		return print.Models(ctx, cfg, deps)
	case cmdCurrent:
		return print.Current(ctx, cfg, deps)
	case cmdSwitch:
		return print.Switch(ctx, cfg, deps, args.rest[0])
	case cmdChat:
		return print.Chat(ctx, cfg, deps, args.rest)
	case cmdStatus:
		return print.Status(ctx, cfg, deps, client.BaseURL())
	}
	return fmt.Errorf("unknown command %q", command)
}

// applyModelsFlags overlays the models subcommand flags on the configured query.
func applyModelsFlags(q *catalog.Query, args cliArgs) error {
	if args.search != "" {
		q.Search = args.search
	}
	if args.sort != "" {
		k, err := catalog.ParseSortKey(args.sort)
		if err != nil {
			return err
		}
		q.Sort = k
	}
	if args.filter != "" {
		f, err := catalog.ParseSpeedFilter(args.filter)
		if err != nil {
			return err
		}
		q.Filter = f
	}
	return nil
}
