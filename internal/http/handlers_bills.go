package http

import (
	"net/http"
)

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	b, err := req.toDomain(requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	created, err := s.entities.CreateBill(r.Context(), b)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusCreated, toBillResponse(created))
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.entities.ListBills(r.Context(), requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toBillResponses(bills))
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	b, err := s.entities.GetBill(r.Context(), requestUser(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toBillResponse(b))
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	b, err := req.toDomain(requestUser(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	b.ID = r.PathValue("id")
	updated, err := s.entities.UpdateBill(r.Context(), b)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toBillResponse(updated))
}

func (s *Server) handlePayBill(w http.ResponseWriter, r *http.Request) {
	b, err := s.entities.PayBill(r.Context(), requestUser(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusOK, toBillResponse(b))
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := s.entities.DeleteBill(r.Context(), requestUser(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.dashCache.Delete(requestUser(r))
	writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}
