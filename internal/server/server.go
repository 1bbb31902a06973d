// Package server exposes the engine over HTTP: analysis jobs with a live
// WebSocket progress feed, position queries, and the puzzle library.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Zoidburgh/hexuki/internal/board"
	"github.com/Zoidburgh/hexuki/internal/engine"
	"github.com/Zoidburgh/hexuki/internal/puzzle"
)

// Server binds the engine, the puzzle library and the progress hub.
type Server struct {
	log     zerolog.Logger
	puzzles *puzzle.Store // may be nil
	hub     *Hub
	base    engine.Config

	mu   sync.Mutex
	jobs map[string]*analysisJob
}

type analysisJob struct {
	ID        string    `json:"id"`
	Position  string    `json:"position"`
	MaxDepth  int       `json:"max_depth"`
	StartedAt time.Time `json:"started_at"`
	Done      bool      `json:"done"`
	Result    *resultDTO `json:"result,omitempty"`
}

type resultDTO struct {
	BestMove string `json:"best_move"`
	Score    int    `json:"score"`
	Depth    int    `json:"depth"`
	Nodes    uint64 `json:"nodes"`
	TimeMs   int64  `json:"time_ms"`
	Timeout  bool   `json:"timeout"`
	TTHits   uint64 `json:"tt_hits"`
	TTMisses uint64 `json:"tt_misses"`
}

type analyzeRequest struct {
	Position    string `json:"position"`
	MaxDepth    int    `json:"max_depth"`
	TimeLimitMs int    `json:"time_limit_ms"`
}

// New creates a server. puzzles may be nil to disable the library routes.
func New(log zerolog.Logger, puzzles *puzzle.Store, base engine.Config) *Server {
	return &Server{
		log:     log,
		puzzles: puzzles,
		hub:     NewHub(log),
		base:    base,
		jobs:    make(map[string]*analysisJob),
	}
}

// Hub returns the progress hub; callers run it alongside the HTTP server.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler builds the HTTP route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/api/analyze", s.handleAnalyze)
	r.Get("/api/jobs/{id}", s.handleJob)
	r.Get("/api/moves", s.handleMoves)
	r.Get("/api/eval", s.handleEval)
	if s.puzzles != nil {
		r.Get("/api/puzzles", s.handleListPuzzles)
		r.Post("/api/puzzles", s.handleAddPuzzle)
	}
	r.Get("/ws", s.hub.ServeWS)

	return r
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Position == "" {
		httpError(w, http.StatusBadRequest, "position is required")
		return
	}

	cfg := s.base
	if req.MaxDepth > 0 {
		cfg.MaxDepth = req.MaxDepth
	}
	if req.TimeLimitMs > 0 {
		cfg.TimeLimit = time.Duration(req.TimeLimitMs) * time.Millisecond
	}

	job := &analysisJob{
		ID:        uuid.NewString(),
		Position:  req.Position,
		MaxDepth:  cfg.MaxDepth,
		StartedAt: time.Now(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	go s.runJob(job, cfg)

	s.log.Info().Str("job", job.ID).Int("depth", cfg.MaxDepth).Msg("analysis started")
	writeJSON(w, http.StatusAccepted, map[string]string{"id": job.ID})
}

func (s *Server) runJob(job *analysisJob, cfg engine.Config) {
	pos := board.ParsePosition(job.Position)

	cfg.OnDepth = func(info engine.DepthInfo) {
		s.hub.Publish(ProgressEvent{
			Event:    "depth",
			JobID:    job.ID,
			Depth:    info.Depth,
			Score:    info.Score,
			BestMove: info.BestMove.String(),
			Nodes:    info.Nodes,
			TimeMs:   info.Elapsed.Milliseconds(),
		})
	}

	result := engine.FindBestMove(pos, cfg)

	dto := &resultDTO{
		BestMove: result.BestMove.String(),
		Score:    result.Score,
		Depth:    result.Depth,
		Nodes:    result.Nodes,
		TimeMs:   result.Time.Milliseconds(),
		Timeout:  result.Timeout,
		TTHits:   result.TTHits,
		TTMisses: result.TTMisses,
	}
	s.mu.Lock()
	job.Done = true
	job.Result = dto
	s.mu.Unlock()

	s.hub.Publish(ProgressEvent{
		Event:    "done",
		JobID:    job.ID,
		Depth:    result.Depth,
		Score:    result.Score,
		BestMove: result.BestMove.String(),
		Nodes:    result.Nodes,
		TimeMs:   result.Time.Milliseconds(),
	})
	s.log.Info().
		Str("job", job.ID).
		Str("move", result.BestMove.String()).
		Int("score", result.Score).
		Int("depth", result.Depth).
		Uint64("nodes", result.Nodes).
		Msg("analysis finished")
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	job, ok := s.jobs[id]
	var snapshot analysisJob
	if ok {
		snapshot = *job
	}
	s.mu.Unlock()

	if !ok {
		httpError(w, http.StatusNotFound, "unknown job")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	pos := board.ParsePosition(r.URL.Query().Get("position"))
	moves := pos.ValidMoves()
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"moves":     strs,
		"game_over": pos.IsGameOver(),
	})
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	pos := board.ParsePosition(r.URL.Query().Get("position"))
	writeJSON(w, http.StatusOK, map[string]int{
		"eval":     engine.Evaluate(pos),
		"p1_score": pos.Score(board.P1),
		"p2_score": pos.Score(board.P2),
	})
}

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}
	puzzles, err := s.puzzles.List(limit)
	if err != nil {
		s.log.Error().Err(err).Msg("list puzzles")
		httpError(w, http.StatusInternalServerError, "list failed")
		return
	}
	writeJSON(w, http.StatusOK, puzzles)
}

func (s *Server) handleAddPuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Position string `json:"position"`
		BestMove string `json:"best_move"`
		Depth    int    `json:"depth"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := s.puzzles.Add(req.Name, req.Position, req.BestMove, req.Depth)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
