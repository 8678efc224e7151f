package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/suppserve/suppserve/pkg/autocomplete"
	"github.com/suppserve/suppserve/pkg/config"
)

// Server handles the IPC for autocomplete queries.
type Server struct {
	svc *autocomplete.Service
	cfg *config.Config
	dec *msgpack.Decoder
	enc *msgpack.Encoder
}

// NewServer creates a server using stdin/stdout for IPC. Logs go to stderr,
// stdout carries msgpack frames only.
func NewServer(svc *autocomplete.Service, cfg *config.Config) *Server {
	return NewServerIO(svc, cfg, os.Stdin, os.Stdout)
}

// NewServerIO creates a server on explicit streams, mainly for tests.
func NewServerIO(svc *autocomplete.Service, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		svc: svc,
		cfg: cfg,
		dec: msgpack.NewDecoder(r),
		enc: msgpack.NewEncoder(w),
	}
}

// Start signals readiness, then processes requests until the input stream
// ends. A decode failure on one message does not end the session.
func (s *Server) Start() error {
	log.Debug("starting IPC server")
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("decoding request: %v", err)
			s.send(ErrorResponse{Error: "invalid msgpack request", Status: 400})
			continue
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch req.Command {
	case "complete":
		s.handleComplete(req)
	case "add":
		s.handleAdd(req)
	case "reload":
		s.handleReload(req)
	case "stats":
		s.handleStats(req)
	case "health":
		s.send(StatusResponse{Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown command: %s", req.Command), 400)
	}
}

// handleComplete validates the request against the configured prefix bounds,
// applies the default limit when unset, and queries the service. The service
// itself never errors; only malformed requests are rejected here.
func (s *Server) handleComplete(req Request) {
	if req.Prefix == "" {
		s.sendError(req.ID, "missing 'p' parameter", 400)
		return
	}
	if len(req.Prefix) < s.cfg.Server.MinPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix shorter than %d characters", s.cfg.Server.MinPrefix), 400)
		return
	}
	if len(req.Prefix) > s.cfg.Server.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", s.cfg.Server.MaxPrefix), 400)
		return
	}

	start := time.Now()
	words := s.svc.Search(req.Category, req.Prefix, req.Limit)
	elapsed := time.Since(start)

	suggestions := make([]Suggestion, len(words))
	for i, w := range words {
		suggestions[i] = Suggestion{Word: w}
	}
	s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleAdd(req Request) {
	if len(req.Words) == 0 {
		s.sendError(req.ID, "missing 'words' parameter", 400)
		return
	}
	s.svc.InsertBatch(req.Category, req.Words)
	s.send(AckResponse{ID: req.ID, OK: true})
}

func (s *Server) handleReload(req Request) {
	accepted := s.svc.StartReload(req.Category, req.Words)
	s.send(ReloadResponse{ID: req.ID, Accepted: accepted})
}

func (s *Server) handleStats(req Request) {
	st, ok := s.svc.Stats(req.Category)
	if !ok {
		s.sendError(req.ID, fmt.Sprintf("unknown category: %s", req.Category), 404)
		return
	}
	s.send(StatsResponse{
		ID:        req.ID,
		Entries:   st.Entries,
		DataDir:   st.DataDir,
		Reloading: st.Reloading,
	})
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	log.Debugf("rejecting request %q: %s", id, message)
	s.send(ErrorResponse{ID: id, Error: message, Status: code})
}
