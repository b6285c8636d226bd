package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Kodiack54/ai-ryan-5407/internal/domain/roadmap"
	"github.com/Kodiack54/ai-ryan-5407/internal/domain/todowatch"
	"github.com/Kodiack54/ai-ryan-5407/internal/repository"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSuccess writes a {success: true, ...fields} envelope.
func writeSuccess(w http.ResponseWriter, fields map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

// writeError maps domain errors onto the HTTP taxonomy: invalid input is a
// 400, missing entities are a 404, anything else is a 500 with the message
// passed through.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, roadmap.ErrInvalidInput), errors.Is(err, repository.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, todowatch.ErrNotInitialized):
		status = http.StatusConflict
	case errors.Is(err, roadmap.ErrPhaseNotFound),
		errors.Is(err, roadmap.ErrProjectNotFound),
		errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}
