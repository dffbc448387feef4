package http

import (
	"net/http"
)

func (s *Server) handleCreateScheduled(w http.ResponseWriter, r *http.Request) {
	var req scheduledRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	st, err := req.toDomain(requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	created, err := s.entities.CreateScheduledTransaction(r.Context(), st)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusCreated, toScheduledResponse(created))
}

func (s *Server) handleListScheduled(w http.ResponseWriter, r *http.Request) {
	items, err := s.entities.ListScheduledTransactions(r.Context(), requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toScheduledResponses(items))
}

func (s *Server) handleGetScheduled(w http.ResponseWriter, r *http.Request) {
	st, err := s.entities.GetScheduledTransaction(r.Context(), requestUser(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toScheduledResponse(st))
}

// scheduledActionRequest drives PUT on a scheduled transaction. With an
// action set it executes or undoes; without one it is a plain record update.
type scheduledActionRequest struct {
	Action string `json:"action"`
	scheduledRequest
}

func (s *Server) handleScheduledAction(w http.ResponseWriter, r *http.Request) {
	userID := requestUser(r)
	id := r.PathValue("id")

	var req scheduledActionRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	switch req.Action {
	case "execute":
		st, err := s.ledger.ExecuteScheduledTransaction(r.Context(), userID, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		s.dashCache.Delete(userID)
		writeData(w, http.StatusOK, toScheduledResponse(st))
	case "undo":
		st, err := s.ledger.UndoScheduledTransaction(r.Context(), userID, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		s.dashCache.Delete(userID)
		writeData(w, http.StatusOK, toScheduledResponse(st))
	case "":
		st, err := req.scheduledRequest.toDomain(userID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		st.ID = id
		updated, err := s.entities.UpdateScheduledTransaction(r.Context(), st)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, toScheduledResponse(updated))
	default:
		writeError(w, http.StatusBadRequest, "action must be \"execute\" or \"undo\"")
	}
}

func (s *Server) handleDeleteScheduled(w http.ResponseWriter, r *http.Request) {
	if err := s.entities.DeleteScheduledTransaction(r.Context(), requestUser(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}
