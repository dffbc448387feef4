package http

import (
	"net/http"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	items, err := s.entities.ListNotifications(r.Context(), requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toNotificationResponses(items))
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := s.entities.MarkNotificationRead(r.Context(), requestUser(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusOK, map[string]string{"status": "read"})
}

func (s *Server) handleGenerateNotifications(w http.ResponseWriter, r *http.Request) {
	result, err := s.notifier.GenerateDueDateNotifications(r.Context(), requestUser(r))
	if err != nil {
		// Partial results still count: report what was generated if anything
		// was, otherwise surface the failure.
		if result.TotalGenerated == 0 {
			writeServiceError(w, r, err)
			return
		}
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusOK, result)
}

func (s *Server) handleCleanupNotifications(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.notifier.CleanupOldNotifications(r.Context(), requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
