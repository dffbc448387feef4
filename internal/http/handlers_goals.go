package http

import (
	"net/http"
)

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	g, err := req.toDomain(requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	created, err := s.entities.CreateGoal(r.Context(), g)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, toGoalResponse(created))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.entities.ListGoals(r.Context(), requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toGoalResponses(goals))
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	g, err := s.entities.GetGoal(r.Context(), requestUser(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	g, err := req.toDomain(requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	g.ID = r.PathValue("id")
	updated, err := s.entities.UpdateGoal(r.Context(), g)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toGoalResponse(updated))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.entities.DeleteGoal(r.Context(), requestUser(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}
