package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
)

func (s *Server) handleInsertPhase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID     string `json:"project_id"`
		Name          string `json:"name"`
		Description   string `json:"description"`
		Status        string `json:"status"`
		AfterPhaseID  string `json:"after_phase_id"`
		BeforePhaseID string `json:"before_phase_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProjectID == "" {
		writeBadRequest(w, "project_id required")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name required")
		return
	}

	phase, err := s.svcs.Roadmap.InsertPhase(r.Context(), req.ProjectID, roadmap.InsertRequest{
		Name:          req.Name,
		Description:   req.Description,
		Status:        roadmap.PhaseStatus(req.Status),
		AfterPhaseID:  req.AfterPhaseID,
		BeforePhaseID: req.BeforePhaseID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"phase": phase})
}

func (s *Server) handleReorderPhase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewOrder int `json:"newOrder"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.svcs.Roadmap.ReorderPhase(r.Context(), chi.URLParam(r, "id"), req.NewOrder)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"oldOrder": result.OldOrder, "newOrder": result.NewOrder})
}

func (s *Server) handleUpdatePhaseStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Status == "" {
		writeBadRequest(w, "status required")
		return
	}

	phase, err := s.svcs.Roadmap.UpdatePhaseStatus(r.Context(), chi.URLParam(r, "id"), roadmap.PhaseStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"phase": phase})
}

func (s *Server) handleRevisitPhase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Reason == "" {
		writeBadRequest(w, "reason required")
		return
	}

	phase, err := s.svcs.Roadmap.MarkForRevisit(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"phase": phase})
}

type dependencyRequest struct {
	PhaseID          string `json:"phaseId"`
	DependsOnPhaseID string `json:"dependsOnPhaseId"`
	Notes            string `json:"notes"`
}

func (s *Server) handleAddDependency(w http.ResponseWriter, r *http.Request) {
	var req dependencyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	dep, err := s.svcs.Roadmap.AddDependency(r.Context(), req.PhaseID, req.DependsOnPhaseID, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"dependency": dep})
}

func (s *Server) handleRemoveDependency(w http.ResponseWriter, r *http.Request) {
	var req dependencyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PhaseID == "" || req.DependsOnPhaseID == "" {
		writeBadRequest(w, "phaseId and dependsOnPhaseId required")
		return
	}

	if err := s.svcs.Roadmap.RemoveDependency(r.Context(), req.PhaseID, req.DependsOnPhaseID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"removed": true})
}

func (s *Server) handlePhaseFromTodo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID string `json:"projectId"`
		Todo      struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Priority    string `json:"priority"`
		} `json:"todo"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProjectID == "" {
		writeBadRequest(w, "projectId required")
		return
	}
	if req.Todo.Title == "" {
		writeBadRequest(w, "todo.title required")
		return
	}

	phase, err := s.svcs.Roadmap.CreatePhaseFromTodo(r.Context(), req.ProjectID, roadmap.TodoSpec{
		Title:       req.Todo.Title,
		Description: req.Todo.Description,
		Priority:    req.Todo.Priority,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"phase": phase})
}
