package http

import (
	"net/http"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	t, err := req.toDomain(requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	created, err := s.ledger.CreateTransaction(r.Context(), t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusCreated, toTransactionResponse(created))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ts, err := s.ledger.ListTransactions(r.Context(), requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toTransactionResponses(ts))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := s.ledger.GetTransaction(r.Context(), requestUser(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toTransactionResponse(t))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	t, err := req.toDomain(requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	t.ID = r.PathValue("id")
	updated, err := s.ledger.UpdateTransaction(r.Context(), t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusOK, toTransactionResponse(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteTransaction(r.Context(), requestUser(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}
