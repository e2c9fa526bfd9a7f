// Package hookd implements the webhook receiver: it accepts the watcher's
// POST and spools the payload into the summarizer's inbox directory.
package hookd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"podflow/internal/episode"
	"podflow/internal/logger"
)

// maxPayloadBytes caps a webhook body; real payloads are under a kilobyte.
const maxPayloadBytes = 1 << 20

// Server is the webhook receiver.
type Server struct {
	router   chi.Router
	spoolDir string
	log      logger.Logger
	now      func() time.Time
}

// New creates a receiver spooling into spoolDir.
func New(spoolDir string, log logger.Logger) *Server {
	s := &Server{
		spoolDir: spoolDir,
		log:      log,
		now:      time.Now,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/hooks/podcast", s.handlePodcast)
	r.Get("/healthz", s.handleHealth)

	s.router = r
}

// ServeHTTP makes the server usable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start runs the receiver until the listener fails.
func (s *Server) Start(addr string) error {
	if err := os.MkdirAll(s.spoolDir, 0755); err != nil {
		return fmt.Errorf("create spool dir: %w", err)
	}
	s.log.Info(context.Background(), "Webhook receiver listening on %s, spooling to %s", addr, s.spoolDir)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handlePodcast(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	payload, err := episode.Parse(body)
	if err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if payload.TaskType != episode.TaskTypeSummary {
		http.Error(w, fmt.Sprintf("unsupported taskType %q", payload.TaskType), http.StatusBadRequest)
		return
	}

	name, err := s.spool(payload)
	if err != nil {
		s.log.Error(r.Context(), "Failed to spool payload: %v", err)
		http.Error(w, "spool payload", http.StatusInternalServerError)
		return
	}

	s.log.Info(r.Context(), "Spooled payload for %q as %s", payload.Title, name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "queued",
		"file":   name,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// spool writes the payload as a JSON file in the inbox. The file is
// written under a dot-prefixed name first and renamed into place, so the
// spool watcher only ever sees complete files.
func (s *Server) spool(payload *episode.Payload) (string, error) {
	if err := os.MkdirAll(s.spoolDir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("payload-%d.json", s.now().UnixNano())
	tmpPath := filepath.Join(s.spoolDir, "."+name)
	finalPath := filepath.Join(s.spoolDir, name)

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return name, nil
}
