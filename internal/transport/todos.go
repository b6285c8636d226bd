package transport

import "net/http"

func (s *Server) handleWatcherStatus(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, map[string]any{"watcher": s.svcs.Watcher.Status()})
}

func (s *Server) handleWatcherCheck(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.svcs.Watcher.CheckNow(r.Context())
	if err != nil {
		s.logger.Error("todo check failed", "error", err)
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{
		"analysis": analysis,
		"summary":  analysis.Summary(),
	})
}
