// ABOUTME: CLI flag parsing using stdlib flag package with per-subcommand flag sets
// ABOUTME: Global flags precede the subcommand; models and chat take their own flags

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Subcommands.
const (
	cmdTUI     = "tui"
	cmdModels  = "models"
	cmdCurrent = "current"
	cmdSwitch  = "switch"
	cmdChat    = "chat"
	cmdStatus  = "status"
	cmdRPC     = "rpc"
)

var subcommands = []string{cmdTUI, cmdModels, cmdCurrent, cmdSwitch, cmdChat, cmdStatus, cmdRPC}

type cliArgs struct {
	baseURL string
	apiKey  string
	model   string
	verbose bool
	json    bool
	version bool

	command string
	rest    []string

	// models
	search string
	sort   string
	filter string

	// chat
	chatModel string
}

const usageHeader = `Usage: nimdeck [flags] [command] [args]

Commands:
  tui               interactive dashboard (default on a terminal)
  models            list models (default when output is not a terminal)
  current           show the active model
  switch <id>       make <id> the active model
  chat <message>    send one message (reads stdin when no message is given)
  status            backend summary
  rpc               JSONL request/response loop on stdin/stdout

Flags:
`

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("nimdeck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageHeader)
		fs.PrintDefaults()
	}
	fs.StringVar(&args.baseURL, "base-url", "", "Backend base URL (default http://localhost:8089)")
	fs.StringVar(&args.apiKey, "api-key", "", "Value sent as x-api-key")
	fs.StringVar(&args.model, "model", "", "Fallback model for chat when the current model is unknown")
	fs.BoolVar(&args.verbose, "verbose", false, "Debug logging to stderr")
	fs.BoolVar(&args.json, "json", false, "JSON output for non-interactive commands")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	if args.version {
		return args, nil
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return args, nil
	}
	args.command = strings.ToLower(rest[0])
	rest = rest[1:]

	sub := flag.NewFlagSet("nimdeck "+args.command, flag.ContinueOnError)
	sub.SetOutput(stderr)
	sub.BoolVar(&args.json, "json", args.json, "JSON output")

	switch args.command {
	case cmdModels:
		sub.StringVar(&args.search, "search", "", "Case-insensitive substring of id or owner")
		sub.StringVar(&args.sort, "sort", "", "name, speed, size or provider")
		sub.StringVar(&args.filter, "filter", "", "all, fast, medium or slow")
	case cmdChat:
		sub.StringVar(&args.chatModel, "m", "", "Send to this model instead of the current one")
	case cmdTUI, cmdCurrent, cmdSwitch, cmdStatus, cmdRPC:
	default:
		return args, fmt.Errorf("unknown command %q (want one of %s)", args.command, strings.Join(subcommands, ", "))
	}

	if err := sub.Parse(rest); err != nil {
		return args, err
	}
	args.rest = sub.Args()

	if args.command == cmdSwitch && len(args.rest) != 1 {
		return args, fmt.Errorf("switch: expected exactly one model id")
	}
	return args, nil
}
