// Package httpapi serves the solver over HTTP: one-shot solves and stepping
// sessions that expose the search one pop at a time.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/internal/driver"
	"github.com/pdrpinto/bestfirst/internal/metrics"
	"github.com/pdrpinto/bestfirst/internal/parse"
	"github.com/pdrpinto/bestfirst/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

// maxSteps bounds the steps a single next request may take.
const maxSteps = 10000

const (
	DefaultSessionTTL  = 10 * time.Minute
	DefaultMaxSessions = 1000
)

// ErrTooManySessions is returned when MaxSessions sessions are live.
var ErrTooManySessions = errors.New("too many live sessions")

// Options configures the handler. Nil fields are disabled.
type Options struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Store    store.Store

	// SessionTTL drops a session that has not been used for this long.
	// Zero means DefaultSessionTTL.
	SessionTTL  time.Duration
	// MaxSessions caps live sessions. Zero means DefaultMaxSessions.
	MaxSessions int
}

// Server holds the stepping sessions.
type Server struct {
	options Options

	mu       sync.Mutex
	sessions map[string]*session
	nextID   int
}

type session struct {
	mu      sync.Mutex
	domain  string
	stepper driver.Stepper

	lastUsed time.Time // guarded by Server.mu
}

// NewHandler creates the HTTP handler.
func NewHandler(options Options) http.Handler {
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	if options.SessionTTL <= 0 {
		options.SessionTTL = DefaultSessionTTL
	}
	if options.MaxSessions <= 0 {
		options.MaxSessions = DefaultMaxSessions
	}
	server := &Server{
		options:  options,
		sessions: make(map[string]*session),
	}

	r := chi.NewRouter()
	r.Get("/domains", server.handleDomains)
	r.Post("/solve", server.handleSolve)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", server.handleCreateSession)
		r.Get("/{id}", server.handleSnapshot)
		r.Post("/{id}/next", server.handleNext)
		r.Delete("/{id}", server.handleDeleteSession)
	})
	if options.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(options.Gatherer))
	}
	return r
}

// PuzzleRequest names a domain and carries the puzzle text.
type PuzzleRequest struct {
	Domain string `json:"domain"`
	Puzzle string `json:"puzzle"`
}

// SolveResponse is the body of a successful solve.
type SolveResponse struct {
	Found   bool            `json:"found"`
	Actions []string        `json:"actions"`
	Stats   bestfirst.Stats `json:"stats"`
	Cached  bool            `json:"cached"`
}

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	ID       string          `json:"id"`
	Snapshot driver.Snapshot `json:"snapshot"`
}

// ErrorResponse describes a failed request. Line and Column locate parse
// errors.
type ErrorResponse struct {
	Error  string `json:"error"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"domains": driver.Names()})
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (driver.Instance, string, bool) {
	var req PuzzleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return nil, "", false
	}
	d, err := driver.Lookup(req.Domain)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, "", false
	}
	instance, err := d.Load(req.Puzzle)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return nil, "", false
	}
	return instance, req.Puzzle, true
}

func (s *Server) searchOptions(domain string) []bestfirst.Option {
	options := []bestfirst.Option{bestfirst.WithLogger(s.options.Logger)}
	if s.options.Metrics != nil {
		options = append(options, bestfirst.WithHooks(s.options.Metrics.Hooks(domain)))
	}
	return options
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	instance, text, ok := s.load(w, r)
	if !ok {
		return
	}
	solution, cached, err := store.Solve(r.Context(), s.options.Store, instance, text, s.searchOptions(instance.Domain())...)
	if err != nil {
		s.options.Logger.Warn("solution cache unavailable", "error", err)
	}
	s.options.Logger.Info("solved",
		"domain", instance.Domain(),
		"found", solution.Found,
		"length", len(solution.Actions),
		"cached", cached,
	)
	actions := solution.Actions
	if actions == nil {
		actions = []string{}
	}
	writeJSON(w, http.StatusOK, SolveResponse{
		Found:   solution.Found,
		Actions: actions,
		Stats:   solution.Stats,
		Cached:  cached,
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	instance, _, ok := s.load(w, r)
	if !ok {
		return
	}
	now := time.Now()

	s.mu.Lock()
	s.expireLocked(now)
	if len(s.sessions) >= s.options.MaxSessions {
		s.mu.Unlock()
		writeError(w, http.StatusServiceUnavailable, ErrTooManySessions)
		return
	}
	sess := &session{
		domain:   instance.Domain(),
		stepper:  instance.NewStepper(s.searchOptions(instance.Domain())...),
		lastUsed: now,
	}
	s.nextID++
	id := "s" + strconv.Itoa(s.nextID)
	s.sessions[id] = sess
	s.mu.Unlock()

	s.options.Logger.Debug("session created", "id", id, "domain", sess.domain)
	writeJSON(w, http.StatusCreated, SessionResponse{ID: id, Snapshot: sess.stepper.Snapshot()})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := chi.URLParam(r, "id")
	now := time.Now()
	s.mu.Lock()
	s.expireLocked(now)
	sess, ok := s.sessions[id]
	if ok {
		sess.lastUsed = now
	}
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("session %q not found", id))
	}
	return sess, ok
}

// expireLocked drops sessions idle for longer than SessionTTL.
func (s *Server) expireLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > s.options.SessionTTL {
			delete(s.sessions, id)
			s.options.Logger.Debug("session expired", "id", id, "domain", sess.domain)
		}
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	snapshot := sess.stepper.Snapshot()
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, snapshot)
}

// handleNext advances the session by ?steps=N pops (default 1), stopping
// early when the search is done.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	steps := 1
	if v := r.URL.Query().Get("steps"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxSteps {
			writeError(w, http.StatusBadRequest, fmt.Errorf("steps must be between 1 and %d", maxSteps))
			return
		}
		steps = n
	}

	sess.mu.Lock()
	snapshot := sess.stepper.Snapshot()
	for i := 0; i < steps && !sess.stepper.Done(); i++ {
		snapshot = sess.stepper.Step()
	}
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	s.expireLocked(time.Now())
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("session %q not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var parseErr *parse.Error
	if errors.As(err, &parseErr) {
		resp.Line = parseErr.Line
		resp.Column = parseErr.Column
	}
	writeJSON(w, status, resp)
}
