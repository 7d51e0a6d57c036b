// ABOUTME: RPC mode for editor and script integrations
// ABOUTME: JSONL protocol over stdin/stdout, one response line per request line

package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	pilog "github.com/mauromedda/nimdeck/internal/log"
)

// Server handles RPC requests from an external client. Requests are served
// one at a time in arrival order.
type Server struct {
	reader  *bufio.Scanner
	writer  io.Writer
	handler func(context.Context, Request) Response
}

// NewServer creates an RPC server reading requests from in and writing
// responses to out.
func NewServer(in io.Reader, out io.Writer, handler func(context.Context, Request) Response) *Server {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)
	return &Server{
		reader:  scanner,
		writer:  out,
		handler: handler,
	}
}

// Run serves requests until the input ends or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	for s.reader.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := s.reader.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.sendError("", NewParseError(fmt.Sprintf("parse error: %v", err)))
			continue
		}
		if req.Method == "" {
			s.sendError(req.ID, NewInvalidRequestError("missing method"))
			continue
		}

		pilog.Debug("rpc: %s (id=%s)", req.Method, req.ID)
		resp := s.handler(ctx, req)
		resp.ID = req.ID

		data, err := json.Marshal(resp)
		if err != nil {
			s.sendError(req.ID, NewInternalError(fmt.Sprintf("internal error: %v", err)))
			continue
		}

		data = append(data, '\n')
		if _, err := s.writer.Write(data); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}

	return s.reader.Err()
}

func (s *Server) sendError(id string, e *Error) {
	resp := Response{ID: id, Error: e}
	data, _ := json.Marshal(resp)
	data = append(data, '\n')
	_, _ = s.writer.Write(data)
}
