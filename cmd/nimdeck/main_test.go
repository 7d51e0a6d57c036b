// ABOUTME: Tests for CLI flag parsing and command dispatch
// ABOUTME: Runs subcommands end to end against the fake backend with an isolated HOME

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/mauromedda/nimdeck/internal/backendtest"
	"github.com/mauromedda/nimdeck/internal/config"
	"github.com/mauromedda/nimdeck/internal/mode/interactive/btea"
	"github.com/mauromedda/nimdeck/pkg/catalog"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		argv    []string
		check   func(t *testing.T, a cliArgs)
		wantErr bool
	}{
		{
			name: "no command",
			argv: []string{"--base-url", "http://x:1"},
			check: func(t *testing.T, a cliArgs) {
				if a.command != "" || a.baseURL != "http://x:1" {
					t.Errorf("args = %+v", a)
				}
			},
		},
		{
			name: "models flags",
			argv: []string{"--json", "models", "--search", "meta", "--sort", "speed", "--filter", "fast"},
			check: func(t *testing.T, a cliArgs) {
				if a.command != cmdModels || !a.json || a.search != "meta" || a.sort != "speed" || a.filter != "fast" {
					t.Errorf("args = %+v", a)
				}
			},
		},
		{
			name: "json after command",
			argv: []string{"current", "--json"},
			check: func(t *testing.T, a cliArgs) {
				if a.command != cmdCurrent || !a.json {
					t.Errorf("args = %+v", a)
				}
			},
		},
		{
			name: "chat words",
			argv: []string{"chat", "-m", "x/y", "hello", "world"},
			check: func(t *testing.T, a cliArgs) {
				if a.chatModel != "x/y" || strings.Join(a.rest, " ") != "hello world" {
					t.Errorf("args = %+v", a)
				}
			},
		},
		{
			name: "switch id",
			argv: []string{"switch", "meta/llama-3.1-8b-instruct"},
			check: func(t *testing.T, a cliArgs) {
				if a.rest[0] != "meta/llama-3.1-8b-instruct" {
					t.Errorf("args = %+v", a)
				}
			},
		},
		{name: "switch without id", argv: []string{"switch"}, wantErr: true},
		{name: "unknown command", argv: []string{"deploy"}, wantErr: true},
		{name: "unknown flag", argv: []string{"--nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := parseFlags(tt.argv, io.Discard)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseFlags(%v) = %+v; want error", tt.argv, a)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFlags: %v", err)
			}
			tt.check(t, a)
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v; want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "Commands:") {
		t.Errorf("usage missing command list:\n%s", stderr.String())
	}
}

// testEnv isolates settings resolution and returns an env writing to a buffer.
func testEnv(t *testing.T) (env, *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{config.EnvBaseURL, config.EnvAPIKey, config.EnvModel, config.EnvMaxTokens} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	var out bytes.Buffer
	return env{
		stdin:  strings.NewReader(""),
		stdout: &out,
		stderr: io.Discard,
		cwd:    t.TempDir(),
		runTUI: func(btea.AppDeps) error {
			t.Fatal("TUI started")
			return nil
		},
	}, &out
}

func twoModels(t *testing.T) *backendtest.Backend {
	return backendtest.New(t, backendtest.WithModels(
		catalog.Model{ID: "meta/llama-3.1-8b-instruct", OwnedBy: "meta"},
		catalog.Model{ID: "deepseek-ai/deepseek-v3", OwnedBy: "deepseek-ai"},
	))
}

func TestRunVersion(t *testing.T) {
	e, out := testEnv(t)
	if err := run(context.Background(), []string{"--version"}, e); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "nimdeck dev") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunDefaultsToModelsWithoutTTY(t *testing.T) {
	b := twoModels(t)
	e, out := testEnv(t)

	if err := run(context.Background(), []string{"--base-url", b.URL()}, e); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "deepseek-ai/deepseek-v3") || !strings.Contains(out.String(), "* ") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestRunDefaultsToTUIOnTerminal(t *testing.T) {
	b := twoModels(t)
	e, _ := testEnv(t)
	e.isTTY = true

	var got btea.AppDeps
	e.runTUI = func(d btea.AppDeps) error {
		got = d
		return nil
	}
	t.Setenv(config.EnvModel, "fallback/model")

	if err := run(context.Background(), []string{"--base-url", b.URL()}, e); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.Backend == nil || got.State == nil || got.BaseURL != b.URL() {
		t.Fatalf("deps = %+v", got)
	}
	if got.Chat.DefaultModel != "fallback/model" || got.Chat.MaxTokens != config.DefaultMaxTokens {
		t.Errorf("chat options = %+v", got.Chat)
	}
	if q := got.State.Query(); q.Sort != catalog.SortName || q.Filter != catalog.FilterAll {
		t.Errorf("initial query = %+v", q)
	}
}

func TestRunSubcommands(t *testing.T) {
	b := twoModels(t)

	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"models sorted by speed", []string{"models", "--sort", "speed"}, "meta/llama-3.1-8b-instruct"},
		{"current", []string{"current"}, "owner: meta"},
		{"chat", []string{"chat", "ping"}, "echo: ping"},
		{"status", []string{"status"}, "models:  2"},
		{"switch", []string{"switch", "deepseek-ai/deepseek-v3"}, "Successfully switched"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, out := testEnv(t)
			argv := append([]string{"--base-url", b.URL()}, tt.argv...)
			if err := run(context.Background(), argv, e); err != nil {
				t.Fatalf("run %v: %v", tt.argv, err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestRunRPC(t *testing.T) {
	b := twoModels(t)
	e, out := testEnv(t)
	e.stdin = strings.NewReader(`{"id":"1","method":"switch_model","params":{"model":"deepseek-ai/deepseek-v3"}}` + "\n" +
		`{"id":"2","method":"chat","params":{"prompt":"ping"}}` + "\n")

	if err := run(context.Background(), []string{"--base-url", b.URL(), "rpc"}, e); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d response lines:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], `"id":"1"`) || !strings.Contains(lines[1], `"text":"echo: ping"`) {
		t.Errorf("responses:\n%s", out.String())
	}
	if reqs := b.Requests(); len(reqs) != 1 || reqs[0].Model != "deepseek-ai/deepseek-v3" {
		t.Errorf("chat went to %+v; want the switched model", reqs)
	}
}

func TestRunBadSettings(t *testing.T) {
	b := twoModels(t)
	e, _ := testEnv(t)

	err := run(context.Background(), []string{"--base-url", b.URL(), "models", "--sort", "price"}, e)
	if err == nil || !strings.Contains(err.Error(), "unknown sort key") {
		t.Errorf("err = %v", err)
	}
}

func TestRunBackendError(t *testing.T) {
	b := twoModels(t)
	e, _ := testEnv(t)

	err := run(context.Background(), []string{"--base-url", b.URL(), "switch", "nope/missing"}, e)
	if err == nil || !strings.Contains(err.Error(), "Model 'nope/missing' not found") {
		t.Errorf("err = %v", err)
	}
}
