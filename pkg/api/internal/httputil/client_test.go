// ABOUTME: Tests for the backend HTTP client: headers, JSON bodies, single attempt, context
// ABOUTME: Uses httptest.NewServer for deterministic, isolated scenarios

package httputil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestClientDoSendsHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Default") != "d" {
			t.Errorf("X-Default = %q; want d", r.Header.Get("X-Default"))
		}
		if r.Header.Get("X-Extra") != "e" {
			t.Errorf("X-Extra = %q; want e", r.Header.Get("X-Extra"))
		}
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, map[string]string{"X-Default": "d"})
	resp, err := client.Do(context.Background(), http.MethodPost, "/echo", strings.NewReader("hello"), map[string]string{"X-Extra": "e"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.OK() || string(resp.Body) != "hello" {
		t.Errorf("got %d %q; want 200 hello", resp.StatusCode, resp.Body)
	}
}

func TestClientDoJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var in map[string]string
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if in["model"] != "m" {
			t.Errorf("model = %q; want m", in["model"])
		}
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, nil)
	resp, err := client.DoJSON(context.Background(), http.MethodPost, "/switch", map[string]string{"model": "m"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated || !resp.OK() {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestClientDoDoesNotRetry(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, nil)
	resp, err := client.Do(context.Background(), http.MethodGet, "/flaky", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.OK() {
		t.Error("503 reported as OK")
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("got %d attempts; want 1", got)
	}
}

func TestClientNormalizesBaseURL(t *testing.T) {
	t.Parallel()

	client := NewClient("http://localhost:8089/v1/", nil)
	if client.BaseURL() != "http://localhost:8089" {
		t.Errorf("BaseURL() = %q", client.BaseURL())
	}
}

func TestClientHasNoOverallTimeout(t *testing.T) {
	t.Parallel()

	client := NewClient("http://example.com", nil)
	if client.httpClient.Timeout != 0 {
		t.Errorf("Timeout = %s; want none", client.httpClient.Timeout)
	}
	transport, ok := client.httpClient.Transport.(*http.Transport)
	if !ok {
		t.Fatal("Transport is not *http.Transport")
	}
	if transport.TLSHandshakeTimeout == 0 {
		t.Error("TLSHandshakeTimeout is zero")
	}
}

func TestClientDoRespectsContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, nil)
	if _, err := client.Do(ctx, http.MethodGet, "/cancelled", nil, nil); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestClientDoTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, nil)
	if _, err := client.Do(context.Background(), http.MethodGet, "/gone", nil, nil); err == nil {
		t.Fatal("expected error from closed server")
	}
}
