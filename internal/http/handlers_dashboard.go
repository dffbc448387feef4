package http

import (
	"log/slog"
	"net/http"
)

// handleDashboard serves the per-user summary through a short-TTL LRU cache.
// Mutating handlers invalidate the user's entry, so the TTL only bounds
// staleness across instances.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := requestUser(r)

	if summary, ok := s.dashCache.Get(userID); ok {
		slog.DebugContext(r.Context(), "Dashboard cache hit", "user_id", userID)
		writeData(w, http.StatusOK, toDashboardResponse(summary))
		return
	}

	summary, err := s.entities.GetDashboardSummary(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Set(userID, summary)
	writeData(w, http.StatusOK, toDashboardResponse(summary))
}
