package http

import (
	"net/http"

	"finbook/internal/core"
)

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	created, err := s.entities.CreateAccount(r.Context(), req.toDomain(requestUser(r)))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusCreated, toAccountResponse(created))
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.entities.ListAccounts(r.Context(), requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toAccountResponses(accounts))
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.entities.GetAccount(r.Context(), requestUser(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toAccountResponse(a))
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	a := req.toDomain(requestUser(r))
	a.ID = r.PathValue("id")
	updated, err := s.entities.UpdateAccount(r.Context(), a)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusOK, toAccountResponse(updated))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.entities.DeleteAccount(r.Context(), requestUser(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type balanceCorrectionRequest struct {
	Balance string `json:"balance"`
}

// handleCorrectBalance is the one write path that sets a balance directly
// instead of going through the ledger.
func (s *Server) handleCorrectBalance(w http.ResponseWriter, r *http.Request) {
	var req balanceCorrectionRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	balance, err := core.ParseSignedAmount(req.Balance)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	a, err := s.entities.CorrectAccountBalance(r.Context(), requestUser(r), r.PathValue("id"), balance)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusOK, toAccountResponse(a))
}
