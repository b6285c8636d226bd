package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/portfolio"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/priority"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/todowatch"
)

// Services bundles the domain services the HTTP surface exposes.
type Services struct {
	Portfolio *portfolio.Service
	Priority  *priority.Service
	Roadmap   *roadmap.Service
	Watcher   *todowatch.Watcher
}

// Server wires HTTP handlers.
type Server struct {
	svcs   Services
	logger *slog.Logger
}

// availableEndpoints is returned on unknown routes.
var availableEndpoints = []string{
	"GET /health",
	"GET /status",
	"GET /whats-next",
	"POST /complete",
	"POST /focus",
	"POST /roadmap/phase",
	"PATCH /roadmap/phase/{id}/reorder",
	"PATCH /roadmap/phase/{id}/status",
	"POST /roadmap/phase/{id}/revisit",
	"POST /roadmap/dependency",
	"DELETE /roadmap/dependency",
	"POST /roadmap/from-todo",
	"GET /todos/status",
	"POST /todos/check",
}

// NewServer creates the HTTP router.
func NewServer(svcs Services, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{svcs: svcs, logger: logger}

	r := chi.NewRouter()

	r.Get("/health", srv.handleHealth)
	r.Get("/status", srv.handleStatus)
	r.Get("/whats-next", srv.handleWhatsNext)
	r.Post("/complete", srv.handleComplete)
	r.Post("/focus", srv.handleFocus)

	r.Route("/roadmap", func(r chi.Router) {
		r.Post("/phase", srv.handleInsertPhase)
		r.Patch("/phase/{id}/reorder", srv.handleReorderPhase)
		r.Patch("/phase/{id}/status", srv.handleUpdatePhaseStatus)
		r.Post("/phase/{id}/revisit", srv.handleRevisitPhase)
		r.Post("/dependency", srv.handleAddDependency)
		r.Delete("/dependency", srv.handleRemoveDependency)
		r.Post("/from-todo", srv.handlePhaseFromTodo)
	})

	r.Get("/todos/status", srv.handleWatcherStatus)
	r.Post("/todos/check", srv.handleWatcherCheck)

	r.NotFound(srv.handleNotFound)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success":             false,
		"error":               "Not found",
		"available_endpoints": availableEndpoints,
	})
}

type statusResponse struct {
	Success bool `json:"success"`
	*portfolio.Report
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	report, err := s.svcs.Portfolio.Report(r.Context(), r.URL.Query().Get("client_id"))
	if err != nil {
		s.logger.Error("status failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Report: report})
}

type whatsNextResponse struct {
	Success bool `json:"success"`
	*priority.Result
}

func (s *Server) handleWhatsNext(w http.ResponseWriter, r *http.Request) {
	result, err := s.svcs.Priority.WhatsNext(r.Context())
	if err != nil {
		s.logger.Error("whats-next failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, whatsNextResponse{Success: true, Result: result})
}

// handleComplete marks a phase complete and responds with a fresh
// recommendation, standing in for a redirect to /whats-next.
func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhaseID string `json:"phase_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.svcs.Priority.Complete(r.Context(), req.PhaseID); err != nil {
		s.logger.Error("complete failed", "phase_id", req.PhaseID, "error", err)
		writeError(w, err)
		return
	}

	s.handleWhatsNext(w, r)
}

func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhaseID   string `json:"phase_id"`
		Rationale string `json:"rationale"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PhaseID == "" {
		writeBadRequest(w, "phase_id required")
		return
	}

	focus, phase, err := s.svcs.Priority.SetFocus(r.Context(), req.PhaseID, req.Rationale)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"focus": focus, "phase": phase})
}
